package pipeline

import (
	"strings"

	"go-review-pipeline/internal/errors"
	"go-review-pipeline/internal/model"
)

// ValidateSKUs checks the SKU list of a product fetch.
func ValidateSKUs(skus []string) error {
	if len(skus) == 0 {
		return errors.InvalidInput("at least one SKU is required")
	}
	for i, sku := range skus {
		if strings.TrimSpace(sku) == "" {
			return errors.Newf(errors.CodeInvalidInput, "sku %d is empty", i)
		}
	}
	return nil
}

// ValidateFetchOptions checks approval and pagination options.
func ValidateFetchOptions(opts model.FetchOptions) error {
	return validatePageOptions(opts.PageOptions())
}

// ValidateJobSpec checks a job request before it is persisted.
func ValidateJobSpec(spec model.JobSpec) error {
	switch spec.Mode {
	case model.JobModeProducts:
		if err := ValidateSKUs(spec.SKUs); err != nil {
			return err
		}
	case model.JobModeAll:
		if len(spec.SKUs) > 0 {
			return errors.InvalidInput("skus are not accepted when mode is all")
		}
	default:
		return errors.Newf(errors.CodeInvalidInput, "unknown job mode %q", spec.Mode)
	}
	return ValidateFetchOptions(spec.FetchOptions())
}

// uniqueSKUs drops SKUs that map to the same output file as an earlier one.
func uniqueSKUs(skus []string) []string {
	seen := make(map[string]bool, len(skus))
	out := make([]string, 0, len(skus))
	for _, sku := range skus {
		sku = strings.TrimSpace(sku)
		key := model.SKUFor(sku)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, sku)
	}
	return out
}
