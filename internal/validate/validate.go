// Package validate holds the shared validator with the decimal price rule
// registered.
package validate

import (
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const TAG_PRICE = "price"

// ValidatePrice accepts any decimal that is not negative.
func ValidatePrice(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return false
	}
	return !d.IsNegative()
}

// PriceValue lets validator see a decimal.Decimal as its string form.
func PriceValue(v reflect.Value) interface{} {
	n, ok := v.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	return n.String()
}

var get = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(PriceValue, decimal.Decimal{})
	if err := v.RegisterValidation(TAG_PRICE, ValidatePrice); err != nil {
		panic(err)
	}
	return v
})

func Get() *validator.Validate {
	return get()
}

func Struct(s any) error {
	return get().Struct(s)
}

func Var(field any, tag string) error {
	return get().Var(field, tag)
}
