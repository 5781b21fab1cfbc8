package validation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	MinThreads = 1
	MaxThreads = 20

	MaxNameLength = 255
)

func ValidateThreadCount(threads int) error {
	if threads < MinThreads || threads > MaxThreads {
		return fmt.Errorf("thread count must be between %d and %d, got %d", MinThreads, MaxThreads, threads)
	}
	return nil
}

func ValidateProductID(id int) error {
	if id <= 0 {
		return fmt.Errorf("product ID must be a positive integer, got %d", id)
	}
	return nil
}

func ValidateNonEmptyString(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

// ValidateProductName requires a non-blank name of bounded length.
func ValidateProductName(name string) error {
	if err := ValidateNonEmptyString("name", name); err != nil {
		return err
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("name must be at most %d bytes, got %d", MaxNameLength, len(name))
	}
	return nil
}

func ValidatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("price must be >= 0, got %s", price.String())
	}
	return nil
}

func ValidateQuantity(quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("quantity must be >= 0, got %d", quantity)
	}
	return nil
}

func ValidateExportFormat(format string) error {
	switch format {
	case "json", "csv":
		return nil
	default:
		return fmt.Errorf("invalid export format: %s (must be one of: json, csv)", format)
	}
}
