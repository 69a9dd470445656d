package form

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrymomot/webutils/core/flash"
)

// PasswordSpecials are the characters accepted by the password_strength rule.
const PasswordSpecials = "@$!%*#?&"

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9]*$`)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(formTagName)
		_ = validate.RegisterValidation("username", validateUsername)
		_ = validate.RegisterValidation("password_strength", validatePasswordStrength)
	})
	return validate
}

func formTagName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func validateUsername(fl validator.FieldLevel) bool {
	return usernameRe.MatchString(fl.Field().String())
}

// validatePasswordStrength requires at least six characters from
// [A-Za-z0-9] and PasswordSpecials, with at least one letter, one digit and
// one special character.
func validatePasswordStrength(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) < 6 {
		return false
	}

	var letter, digit, special bool
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
			letter = true
		case c >= '0' && c <= '9':
			digit = true
		case strings.ContainsRune(PasswordSpecials, c):
			special = true
		default:
			return false
		}
	}
	return letter && digit && special
}

// Messager lets a form override validation messages. Keys are
// "field.tag", e.g. "username.min".
type Messager interface {
	Messages() map[string]string
}

// Errors maps form field names to a validation message.
type Errors map[string]string

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, f+": "+e[f])
	}
	return "form: " + strings.Join(parts, "; ")
}

// Fields returns the failing field names in sorted order.
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for f := range e {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Flashes converts the messages into error flashes ordered by field name.
func (e Errors) Flashes() []flash.Flash {
	msgs := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		msgs = append(msgs, e[f])
	}
	return flash.Errors(msgs...)
}

// Validate checks dst against its `validate` tags. It returns nil when the
// form is valid. dst must be a pointer to a struct.
func Validate(dst any) Errors {
	err := instance().Struct(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !asValidationErrors(err, &verrs) {
		return Errors{"_": err.Error()}
	}

	var custom map[string]string
	if m, ok := dst.(Messager); ok {
		custom = m.Messages()
	}

	out := make(Errors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		if msg, ok := custom[field+"."+fe.Tag()]; ok {
			out[field] = msg
			continue
		}
		out[field] = defaultMessage(fe)
	}
	return out
}

func asValidationErrors(err error, dst *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*dst = verrs
	}
	return ok
}

func defaultMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min", "max", "len":
		return fmt.Sprintf("%s has an invalid length", fe.Field())
	case "email":
		return "Invalid Email Format"
	case "eqfield":
		return "Values must match"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
