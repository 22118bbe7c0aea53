// Package forms binds submitted HTML forms and turns validation failures into
// per-field messages that views can render next to the offending input.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Errors maps a form field name to its messages.
type Errors map[string][]string

func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// First returns the first message for field, or "".
func (e Errors) First(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (e Errors) Empty() bool {
	return len(e) == 0
}

// FocusField returns the first field in order that has an error.
func (e Errors) FocusField(order ...string) string {
	for _, field := range order {
		if e.Has(field) {
			return field
		}
	}
	return ""
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(formName)
		_ = v.RegisterValidation("notblank", validators.NotBlank)
	}
}

func formName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}

// Bind parses the request form into dst. Validation failures come back as
// Errors; anything else (malformed body, unparsable values) as err.
func Bind(c *gin.Context, dst any) (Errors, error) {
	err := c.ShouldBindWith(dst, binding.Form)

	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors

	if !errors.As(err, &verrs) {
		return nil, err
	}

	out := Errors{}
	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	for _, fe := range verrs {
		out.Add(fe.Field(), message(fe, labelFor(t, fe.StructField())))
	}

	return out, nil
}

func labelFor(t reflect.Type, structField string) string {
	if t.Kind() == reflect.Struct {
		if f, ok := t.FieldByName(structField); ok {
			if label := f.Tag.Get("label"); label != "" {
				return label
			}
		}
	}

	r := []rune(structField)
	if len(r) > 0 {
		r[0] = unicode.ToUpper(r[0])
	}
	return string(r)
}

func message(fe validator.FieldError, label string) string {
	switch fe.Tag() {
	case "required", "notblank":
		return label + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", label, fe.Param())
	case "email":
		return label + " must be a valid email address"
	case "url":
		return label + " must be a valid URL"
	case "numeric":
		return label + " must be a number"
	case "datetime":
		return fmt.Sprintf("%s must be a date in the form %s", label, dateLayoutHint(fe.Param()))
	default:
		return label + " is invalid"
	}
}

func dateLayoutHint(layout string) string {
	if layout == "2006-01-02" {
		return "YYYY-MM-DD"
	}
	return layout
}
