package httpapi

import (
	"fmt"
	"strconv"
)

// parseExponent parses the ?exponent= query parameter. A malformed value
// maps to the same 400 an out-of-range exponent would (spec.md §6); the
// registry itself still re-validates the numeric range.
func parseExponent(raw string) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("exponent is required")
	}
	e, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("exponent must be an integer")
	}
	return e, nil
}
