package clidelivery

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ValidAmount validates whether the field is a decimal number.
var ValidAmount validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		_, err := decimal.NewFromString(s)
		return err == nil
	}
	return false
}

// ValidCents validates whether the decimal field has at most two decimal places.
var ValidCents validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		d, err := decimal.NewFromString(s)
		return err == nil && d.Equal(d.Round(2))
	}
	return false
}

func newValidator() *validator.Validate {
	v := validator.New()

	if err := v.RegisterValidation("amount", ValidAmount); err != nil {
		panic(err)
	}

	if err := v.RegisterValidation("cents", ValidCents); err != nil {
		panic(err)
	}

	return v
}
