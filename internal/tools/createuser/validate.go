package createuser

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	aliasPattern = regexp.MustCompile(`^[a-zA-Z0-9]{1,8}$`)
	sfidPattern  = regexp.MustCompile(`^[a-zA-Z0-9]{15}([a-zA-Z0-9]{3})?$`)
	// Deliberately loose; some international formats are rejected.
	phonePattern = regexp.MustCompile(`^\+?[0-9 ().-]{4,20}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "useralias", aliasPattern)
	mustRegister(v, "sfid", sfidPattern)
	mustRegister(v, "loosephone", phonePattern)
	return v
}

func mustRegister(v *validator.Validate, tag string, re *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// Validate checks req against every rule independently and returns one
// human-readable message per violation, in field order. An empty slice
// means the request is valid. No network calls are made here.
func Validate(req Request) []string {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return msgs
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "useralias":
		return field + " must be 1-8 alphanumeric characters"
	case "sfid":
		return field + " must be a valid 15 or 18 character Salesforce ID"
	case "loosephone":
		return field + " must be a valid phone number"
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
