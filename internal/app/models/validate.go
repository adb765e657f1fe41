package models

import (
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldIssue is one failing field path, reported back to the caller so a
// spreadsheet author can see exactly which column was rejected.
type FieldIssue struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report the json/csv column name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// intlike accepts floats that carry an integral value. Numeric columns
	// are coerced to float64 first so "3.5" in an integer column fails
	// here rather than disappearing during coercion.
	_ = v.RegisterValidation("intlike", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return f == math.Trunc(f)
	})

	return v
}

// Validate runs the shared schema rules over a candidate and returns the
// failing field paths, or nil when the candidate is valid.
func Validate(candidate any) []FieldIssue {
	err := validate.Struct(candidate)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldIssue{{Field: "", Rule: "invalid"}}
	}

	issues := make([]FieldIssue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, FieldIssue{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return issues
}
