// Package validation runs struct validation and reports only the first
// failing rule of the first failing field, in declaration order.
package validation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error is a validation failure carrying the message shown to clients.
type Error struct {
	Field   string
	Rule    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Validator wraps validator.Validate with request-oriented rules and messages.
// Register rules before the first call to Validate; after that it is safe for
// concurrent use.
type Validator struct {
	v        *validator.Validate
	messages map[string]string
}

// New creates a Validator with the notblank, integer, min_int and date rules
// installed.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)

	val := &Validator{v: v, messages: map[string]string{}}
	val.mustRegister("notblank", notBlank)
	val.mustRegister("integer", isInteger)
	val.mustRegister("min_int", minInt)
	val.mustRegister("date", isDate)
	return val
}

// fieldName reports the request name of a struct field: its json tag, then
// its form tag, then the Go name.
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func (v *Validator) mustRegister(tag string, fn validator.Func) {
	if err := v.v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// RegisterRule installs a context-aware rule under tag. message is a format
// string receiving the attribute name, e.g. "The %s has already been taken.".
func (v *Validator) RegisterRule(tag string, fn validator.FuncCtx, message string) error {
	if err := v.v.RegisterValidationCtx(tag, fn); err != nil {
		return err
	}
	v.messages[tag] = message
	return nil
}

// SetMessage overrides the message of one rule on one field, keyed as
// "field.rule" (for example "sortBy.oneof"). The message is used verbatim.
func (v *Validator) SetMessage(field, rule, message string) {
	v.messages[field+"."+rule] = message
}

// Validate checks s and returns the first failure, or nil.
func (v *Validator) Validate(ctx context.Context, s any) *Error {
	err := v.v.StructCtx(ctx, s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &Error{Message: "The given data was invalid."}
	}

	fe := verrs[0]
	return &Error{
		Field:   fe.Field(),
		Rule:    fe.Tag(),
		Message: v.message(fe),
	}
}

// FromBindError converts a request decoding failure into a validation error.
func (v *Validator) FromBindError(err error) *Error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &Error{
			Field:   typeErr.Field,
			Rule:    "string",
			Message: fmt.Sprintf("The %s must be a string.", Attribute(typeErr.Field)),
		}
	}
	return &Error{Message: "The given data was invalid."}
}

func (v *Validator) message(fe validator.FieldError) string {
	if msg, ok := v.messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	attr := Attribute(fe.Field())
	if format, ok := v.messages[fe.Tag()]; ok {
		return fmt.Sprintf(format, attr)
	}
	return defaultMessage(fe.Tag(), attr, fe.Param())
}

func defaultMessage(tag, attr, param string) string {
	switch tag {
	case "required", "notblank":
		return fmt.Sprintf("The %s field is required.", attr)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", attr)
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", attr, param)
	case "max":
		return fmt.Sprintf("The %s must not be greater than %s characters.", attr, param)
	case "integer":
		return fmt.Sprintf("The %s must be an integer.", attr)
	case "min_int":
		return fmt.Sprintf("The %s must be at least %s.", attr, param)
	case "date":
		return fmt.Sprintf("The %s is not a valid date.", attr)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", attr)
	default:
		return fmt.Sprintf("The %s is invalid.", attr)
	}
}

// Attribute turns a request field name into the form used in messages:
// "taskName" becomes "task name", "due_date" becomes "due date".
func Attribute(field string) string {
	var b strings.Builder
	for i, r := range field {
		switch {
		case r == '_':
			b.WriteRune(' ')
		case r >= 'A' && r <= 'Z':
			if i > 0 {
				b.WriteRune(' ')
			}
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
