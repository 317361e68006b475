package common

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var Validate = validator.New()

const (
	REQUEST_TIMEOUT_SECS = 2 * 60 * time.Second

	// Redis key prefix for persisted carts. One key per cart owner.
	CART_KEY_PREFIX = "torget:cart:"

	ORDER_COLLECTION = "Order"

	MAX_CART_QUANTITY = 999
)

// Utility Functions

// IsEmptyString checks if a string is empty
func IsEmptyString(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ConvertMapToStruct converts a map to a struct using JSON marshaling
func ConvertMapToStruct(m map[string]any, v any) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal map: %w", err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal to struct: %w", err)
	}

	return nil
}
