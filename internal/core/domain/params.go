package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func DefaultParams() UnsharpParams {
	return UnsharpParams{Radius: DefaultRadius, Strength: DefaultStrength}
}

// Validate reports whether the parameters satisfy radius > 0 and strength >= 0.
func (p UnsharpParams) Validate() error {
	if math.IsNaN(p.Radius) || math.IsInf(p.Radius, 0) || p.Radius <= 0 {
		return fmt.Errorf("%w, got %v", ErrInvalidRadius, p.Radius)
	}

	if math.IsNaN(p.Strength) || math.IsInf(p.Strength, 0) || p.Strength < 0 {
		return fmt.Errorf("%w, got %v", ErrInvalidStrength, p.Strength)
	}

	return nil
}

// ParseUnsharpParams reads "[radius] [strength]" from whitespace separated args. Values that are left out fall
// back to defaults. Range checks are left to Validate.
func ParseUnsharpParams(args string, defaults UnsharpParams) (UnsharpParams, error) {
	fields := strings.Fields(args)
	if len(fields) > 2 {
		return UnsharpParams{}, ErrUsage
	}

	params := defaults
	values := []*float64{&params.Radius, &params.Strength}

	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return UnsharpParams{}, fmt.Errorf("%w: %q is not a number", ErrUsage, field)
		}
		*values[i] = v
	}

	return params, nil
}
