package handler

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidatorDecimalTags(t *testing.T) {
	type payload struct {
		Amount    decimal.Decimal     `validate:"decimal_gt=0"`
		Rate      decimal.Decimal     `validate:"decimal_gte=0,decimal_lte=100"`
		Threshold decimal.NullDecimal `validate:"omitempty,decimal_gte=0,decimal_lte=100"`
	}

	tests := []struct {
		name    string
		payload payload
		valid   bool
	}{
		{name: "valid", payload: payload{Amount: decimal.NewFromInt(1), Rate: decimal.NewFromInt(4)}, valid: true},
		{name: "zero rate", payload: payload{Amount: decimal.RequireFromString("0.01"), Rate: decimal.Zero}, valid: true},
		{name: "zero amount", payload: payload{Amount: decimal.Zero, Rate: decimal.NewFromInt(4)}},
		{name: "rate above 100", payload: payload{Amount: decimal.NewFromInt(1), Rate: decimal.NewFromInt(101)}},
		{name: "null threshold skipped", payload: payload{Amount: decimal.NewFromInt(1), Threshold: decimal.NullDecimal{}}, valid: true},
		{
			name:    "threshold out of range",
			payload: payload{Amount: decimal.NewFromInt(1), Threshold: decimal.NewNullDecimal(decimal.NewFromInt(150))},
		},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.payload)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNewValidator_RegistersDecimalTags(t *testing.T) {
	assert.NotPanics(t, func() { NewValidator() })

	// an unregistered tag panics inside go-playground, so a passing Var proves registration
	v := NewValidator()
	assert.NoError(t, v.Var(decimal.NewFromInt(5), "decimal_gt=1"))
	assert.Error(t, v.Var(decimal.NewFromInt(5), "decimal_lte=1"))
	assert.NoError(t, v.Var(decimal.NewFromInt(1), "decimal_gte=1"))
}
