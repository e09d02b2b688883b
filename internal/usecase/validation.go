package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	domainErrors "github.com/umaru-jpg/luvyn/internal/domain/errors"
	"github.com/umaru-jpg/luvyn/internal/domain/model"
)

// Amounts are stored as NUMERIC(18,2).
const moneyScale = 2

var maxAmount = decimal.RequireFromString("9999999999999999.99")

// Validator checks input structs and reports every failing field by its JSON name.
type Validator struct {
	validate *validator.Validate
}

// NewValidator configures struct validation with JSON field names and decimal support.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterStructValidation(validateDraftAmounts, model.OrderDraft{})
	v.RegisterStructValidation(validateItemAmounts, model.DraftItem{})
	return &Validator{validate: v}
}

func validateDraftAmounts(sl validator.StructLevel) {
	draft := sl.Current().Interface().(model.OrderDraft)
	checkAmount(sl, draft.TotalAmount, "totalAmount", "TotalAmount")
}

func validateItemAmounts(sl validator.StructLevel) {
	item := sl.Current().Interface().(model.DraftItem)
	checkAmount(sl, item.Price, "price", "Price")
}

func checkAmount(sl validator.StructLevel, amount decimal.Decimal, field, structField string) {
	switch {
	case !amount.Equal(amount.Round(moneyScale)):
		sl.ReportError(amount, field, structField, "money", "")
	case amount.GreaterThan(maxAmount):
		sl.ReportError(amount, field, structField, "max", maxAmount.String())
	}
}

// Struct validates s and returns a *domainErrors.ValidationError listing all problems.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &domainErrors.ValidationError{Fields: make([]domainErrors.FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, domainErrors.FieldError{Field: fieldPath(fe), Message: fieldMessage(fe)})
	}
	return out
}

// fieldPath drops the root struct name from the namespace, e.g. "products[0].name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "money":
		return "must have at most 2 decimal places"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	}
	return "is invalid"
}
