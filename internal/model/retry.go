package model

import "time"

// RetryConfig defines retry behavior for row reads
type RetryConfig struct {
	MaxAttempts       int           `json:"max_attempts" mapstructure:"maxAttempts"`
	InitialDelay      time.Duration `json:"initial_delay" mapstructure:"initialDelay"`
	MaxDelay          time.Duration `json:"max_delay" mapstructure:"maxDelay"`
	BackoffMultiplier float64       `json:"backoff_multiplier" mapstructure:"backoffMultiplier"`
}

// DefaultRetryConfig mirrors the ingestion defaults used for remote sources.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		InitialDelay:      1 * time.Second,
		MaxDelay:          30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}
