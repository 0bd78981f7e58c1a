package contract

import (
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationErrors maps a field name to its failure messages.
type ValidationErrors map[string][]string

// Add appends msg to field.
func (v ValidationErrors) Add(field, msg string) {
	v[field] = append(v[field], msg)
}

// Fields returns the failing field names, sorted.
func (v ValidationErrors) Fields() []string {
	out := make([]string, 0, len(v))
	for f := range v {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Len is the number of failing fields.
func (v ValidationErrors) Len() int { return len(v) }

// FromValidator converts validator failures into ValidationErrors.
//
// ok is false if err does not carry validator.ValidationErrors (for example a
// malformed JSON body); callers should treat that as a plain bad request.
func FromValidator(err error) (ValidationErrors, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	out := ValidationErrors{}
	for _, fe := range verrs {
		out.Add(fe.Field(), messageFor(fe))
	}
	return out, true
}

func messageFor(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return "The " + field + " field is required."
	case "email":
		return "The " + field + " field must be a valid email address."
	case "min":
		return "The " + field + " field must be at least " + fe.Param() + "."
	case "max":
		return "The " + field + " field must not be greater than " + fe.Param() + "."
	case "oneof":
		return "The " + field + " field must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ") + "."
	default:
		return "The " + field + " field is invalid (" + fe.Tag() + ")."
	}
}
