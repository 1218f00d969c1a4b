package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnsharpParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  UnsharpParams
		wantErr error
	}{
		{
			name:   "defaults are valid",
			params: DefaultParams(),
		},
		{
			name:   "zero strength is a no-op, not an error",
			params: UnsharpParams{Radius: 0.5, Strength: 0},
		},
		{
			name:   "over-sharpening is allowed",
			params: UnsharpParams{Radius: 3, Strength: 400},
		},
		{
			name:    "zero radius",
			params:  UnsharpParams{Radius: 0, Strength: 50},
			wantErr: ErrInvalidRadius,
		},
		{
			name:    "negative radius",
			params:  UnsharpParams{Radius: -1, Strength: 50},
			wantErr: ErrInvalidRadius,
		},
		{
			name:    "NaN radius",
			params:  UnsharpParams{Radius: math.NaN(), Strength: 50},
			wantErr: ErrInvalidRadius,
		},
		{
			name:    "negative strength",
			params:  UnsharpParams{Radius: 2, Strength: -0.1},
			wantErr: ErrInvalidStrength,
		},
		{
			name:    "infinite strength",
			params:  UnsharpParams{Radius: 2, Strength: math.Inf(1)},
			wantErr: ErrInvalidStrength,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.params.Validate()
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestParseUnsharpParams(t *testing.T) {
	defaults := DefaultParams()

	tests := []struct {
		description string
		args        string
		want        UnsharpParams
		wantErr     bool
	}{
		{
			description: "defaults on empty args",
			args:        "",
			want:        UnsharpParams{Radius: 2, Strength: 50},
		},
		{
			description: "radius only",
			args:        "3.5",
			want:        UnsharpParams{Radius: 3.5, Strength: 50},
		},
		{
			description: "radius and strength",
			args:        "1 150",
			want:        UnsharpParams{Radius: 1, Strength: 150},
		},
		{
			description: "extra whitespace is ignored",
			args:        "  4   20 ",
			want:        UnsharpParams{Radius: 4, Strength: 20},
		},
		{
			description: "out of range values are parsed, not validated",
			args:        "-1 -5",
			want:        UnsharpParams{Radius: -1, Strength: -5},
		},
		{
			description: "non numeric radius",
			args:        "big",
			wantErr:     true,
		},
		{
			description: "non numeric strength",
			args:        "2 lots",
			wantErr:     true,
		},
		{
			description: "too many args",
			args:        "1 2 3",
			wantErr:     true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.description, func(t *testing.T) {
			got, err := ParseUnsharpParams(testCase.args, defaults)
			if testCase.wantErr {
				require.ErrorIs(t, err, ErrUsage)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}
