package handler

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// NewValidator returns a validator that understands decimal amounts.
// decimal_gt, decimal_gte and decimal_lte compare a decimal field against the tag parameter.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})

	comparisons := []struct {
		tag     string
		compare func(decimal.Decimal, decimal.Decimal) bool
	}{
		{tag: "decimal_gt", compare: decimal.Decimal.GreaterThan},
		{tag: "decimal_gte", compare: decimal.Decimal.GreaterThanOrEqual},
		{tag: "decimal_lte", compare: decimal.Decimal.LessThanOrEqual},
	}
	for _, c := range comparisons {
		if err := v.RegisterValidation(c.tag, decimalComparison(c.compare)); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", c.tag, err))
		}
	}

	return v
}

// decimalValue exposes decimals to the validator as strings; a null decimal has no value
func decimalValue(field reflect.Value) any {
	switch value := field.Interface().(type) {
	case decimal.Decimal:
		return value.String()
	case decimal.NullDecimal:
		if !value.Valid {
			return nil
		}
		return value.Decimal.String()
	}
	return nil
}

func decimalComparison(compare func(decimal.Decimal, decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		bound, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return compare(value, bound)
	}
}
