package config

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"

	"go-review-pipeline/internal/errors"
	"go-review-pipeline/internal/model"
	"go-review-pipeline/internal/pipeline"
	"go-review-pipeline/pkg/utils"
)

// Datastore modes.
const (
	ModeSheets = "sheets"
	ModeXLSX   = "xlsx"
	ModeCSV    = "csv"
	ModeAPI    = "api"
)

// EnvPrefix prefixes every environment override, e.g. REVIEWS_DATASTORE_SHEETNAME.
const EnvPrefix = "REVIEWS"

// Config aggregates configuration for the review pipeline.
type Config struct {
	OutputDir string            `mapstructure:"outputDir"`
	Datastore DatastoreConfig   `mapstructure:"datastore"`
	API       APIConfig         `mapstructure:"api"`
	Auth      AuthConfig        `mapstructure:"auth"`
	Filter    FilterConfig      `mapstructure:"filter"`
	Workers   int               `mapstructure:"workers"`
	Retry     model.RetryConfig `mapstructure:"retry"`
	Store     StoreConfig       `mapstructure:"store"`
	Server    ServerConfig      `mapstructure:"server"`
	Log       LogConfig         `mapstructure:"log"`
}

// DatastoreConfig locates the review rows.
type DatastoreConfig struct {
	Mode          string       `mapstructure:"mode"`
	SpreadsheetID string       `mapstructure:"spreadsheetId"`
	SheetName     string       `mapstructure:"sheetName"`
	RowSkip       int          `mapstructure:"rowSkip"`
	File          string       `mapstructure:"file"`
	Schema        model.Schema `mapstructure:"schema"`
}

type APIConfig struct {
	URL string `mapstructure:"url"`
	Key string `mapstructure:"key"`
}

type AuthConfig struct {
	CredentialsFile string `mapstructure:"credentialsFile"`
}

// FilterConfig holds the default fetch options. Approved is "", "true" or
// "false"; empty matches every review.
type FilterConfig struct {
	Approved string `mapstructure:"approved"`
	Page     int    `mapstructure:"page"`
	Length   *int   `mapstructure:"length"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type ServerConfig struct {
	Addr       string `mapstructure:"addr"`
	JobTimeout string `mapstructure:"jobTimeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: "./products",
		Datastore: DatastoreConfig{
			Mode:      ModeSheets,
			SheetName: "Sheet1",
			RowSkip:   1,
			Schema:    model.DefaultSchema(),
		},
		Auth:    AuthConfig{CredentialsFile: "client_secret.json"},
		Workers: 4,
		Retry:   model.DefaultRetryConfig(),
		Store:   StoreConfig{Path: "reviews.db"},
		Server:  ServerConfig{Addr: ":8080", JobTimeout: "5m"},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads configuration from a file and environment variables.
// Without an explicit path, config.yaml in the working directory is used
// when present. Environment variables use the prefix "REVIEWS" with dots
// replaced by underscores, so "datastore.sheetName" becomes
// "REVIEWS_DATASTORE_SHEETNAME".
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !stderrors.As(err, &notFound) {
			return nil, &errors.AppError{Code: errors.CodeConfigInvalid, Message: "read config", Cause: err}
		}
	}

	// a configured schema replaces the default one instead of merging into it
	if v.IsSet("datastore.schema") {
		cfg.Datastore.Schema = nil
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, &errors.AppError{Code: errors.CodeConfigInvalid, Message: "decode config", Cause: err}
	}
	return cfg, nil
}

// bindEnvs registers all keys within cfg so that viper will look up
// corresponding environment variables when unmarshalling.
func bindEnvs(v *viper.Viper, cfg any, parts ...string) {
	val := reflect.ValueOf(cfg)
	typ := reflect.TypeOf(cfg)
	if typ.Kind() == reflect.Ptr {
		val = val.Elem()
		typ = typ.Elem()
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag := f.Tag.Get("mapstructure")
		if tag == "" {
			tag = strings.ToLower(f.Name)
		}
		key := append(parts[:len(parts):len(parts)], tag)
		switch {
		case f.Type.Kind() == reflect.Struct:
			bindEnvs(v, val.Field(i).Interface(), key...)
			continue
		case f.Type.Kind() == reflect.Slice:
			// the schema only comes from the config file
			continue
		}
		_ = v.BindEnv(strings.Join(key, "."))
	}
}

// Validate reports every invalid or missing setting for the selected mode.
func (c *Config) Validate() error {
	var errs *multierror.Error
	invalid := func(format string, args ...any) {
		errs = multierror.Append(errs, errors.ConfigInvalid(fmt.Sprintf(format, args...)))
	}

	if strings.TrimSpace(c.OutputDir) == "" {
		invalid("outputDir is required")
	}

	ds := c.Datastore
	switch ds.Mode {
	case ModeSheets:
		if ds.SpreadsheetID == "" {
			invalid("datastore.spreadsheetId is required in %s mode", ds.Mode)
		}
		if c.Auth.CredentialsFile == "" {
			invalid("auth.credentialsFile is required in %s mode", ds.Mode)
		}
	case ModeXLSX, ModeCSV:
		if ds.File == "" {
			invalid("datastore.file is required in %s mode", ds.Mode)
		}
	case ModeAPI:
		if c.API.URL == "" {
			invalid("api.url is required in %s mode", ds.Mode)
		}
		if c.API.Key == "" {
			invalid("api.key is required in %s mode", ds.Mode)
		}
	default:
		invalid("unknown datastore.mode %q", ds.Mode)
	}
	if ds.SheetName == "" {
		invalid("datastore.sheetName is required")
	}
	if ds.RowSkip < 0 {
		invalid("datastore.rowSkip must not be negative")
	}
	if len(ds.Schema) == 0 {
		invalid("datastore.schema must have at least one column")
	}
	for i, entry := range ds.Schema {
		if entry.Column == "" || entry.Field == "" {
			invalid("datastore.schema[%d] needs col and field", i)
		}
	}

	if c.Workers <= 0 {
		invalid("workers must be positive")
	}
	if c.Retry.MaxAttempts <= 0 {
		invalid("retry.maxAttempts must be positive")
	}
	if _, err := c.FetchOptions(); err != nil {
		errs = multierror.Append(errs, err)
	}
	if c.Server.JobTimeout != "" {
		if _, err := time.ParseDuration(c.Server.JobTimeout); err != nil {
			invalid("server.jobTimeout %q is not a duration", c.Server.JobTimeout)
		}
	}
	return errs.ErrorOrNil()
}

// FetchOptions converts the filter section into pipeline options.
func (c *Config) FetchOptions() (model.FetchOptions, error) {
	approved, err := ParseApproved(c.Filter.Approved)
	if err != nil {
		return model.FetchOptions{}, err
	}
	opts := model.FetchOptions{Approved: approved, Page: c.Filter.Page, Length: c.Filter.Length}
	if err := pipeline.ValidateFetchOptions(opts); err != nil {
		return model.FetchOptions{}, errors.WithCode(errors.CodeConfigInvalid, err)
	}
	return opts, nil
}

// ParseApproved reads the tri-state approval filter.
func ParseApproved(s string) (*bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, errors.Newf(errors.CodeConfigInvalid, "filter.approved %q is not true or false", s)
	}
	return &b, nil
}

// Settings returns the pipeline settings derived from the datastore section.
func (c *Config) Settings() pipeline.Settings {
	return pipeline.Settings{
		SheetName: c.Datastore.SheetName,
		RowSkip:   c.Datastore.RowSkip,
		Schema:    c.Datastore.Schema,
		Workers:   c.Workers,
	}
}

// JobTimeout is the deadline for one API job.
func (c *Config) JobTimeout() time.Duration {
	return utils.ParseDuration(c.Server.JobTimeout)
}
