// Package validation checks form input before any network call is made.
//
// Rules are expressed as go-playground/validator tags on private form
// structs; failures are translated into FormErrors keyed by the JSON field
// name. Every field is checked independently, and within one field the first
// failing rule decides the message.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/contactkeeper/internal/client/models"
)

// looseEmail accepts anything shaped like local@domain.tld.
var looseEmail = regexp.MustCompile(`\S+@\S+\.\S+`)

var messages = map[string]map[string]string{
	"email": {
		"required":    "Email is required",
		"loose_email": "Email is invalid",
		"email":       "Invalid email address",
	},
	"password": {
		"required": "Password is required",
		"min":      "Password must be at least 6 characters",
	},
	"username":    {"required": "Username is required"},
	"firstName":   {"required": "First name is required"},
	"lastName":    {"required": "Last name is required"},
	"phoneNumber": {"required": "Phone number is required"},
}

type loginForm struct {
	Email    string `json:"email" validate:"required,loose_email"`
	Password string `json:"password" validate:"required,min=6"`
}

type registerForm struct {
	Email    string `json:"email" validate:"required,loose_email"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

var (
	engine     *validator.Validate
	engineOnce sync.Once
)

func getEngine() *validator.Validate {
	engineOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		if err := v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
			return looseEmail.MatchString(fl.Field().String())
		}); err != nil {
			panic(err)
		}
		engine = v
	})
	return engine
}

func message(field, tag string) string {
	if m, ok := messages[field][tag]; ok {
		return m
	}
	return field + " is invalid"
}

// run validates s and converts the result into FormErrors.
func run(s any) FormErrors {
	errs := FormErrors{}
	err := getEngine().Struct(s)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs[KeyAPI] = err.Error()
		return errs
	}
	for _, fe := range fieldErrs {
		if _, seen := errs[fe.Field()]; !seen {
			errs[fe.Field()] = message(fe.Field(), fe.Tag())
		}
	}
	return errs
}

// ValidateCredentials checks the login or register form. Username is only
// required in register mode. The result is empty when the form is valid.
func ValidateCredentials(c models.Credentials, mode models.Mode) FormErrors {
	if mode == models.ModeRegister {
		return run(registerForm{Email: c.Email, Username: c.Username, Password: c.Password})
	}
	return run(loginForm{Email: c.Email, Password: c.Password})
}

// ValidateContact checks the contact create/edit form.
func ValidateContact(in models.ContactInput) FormErrors {
	return run(in)
}

// ValidateOTP requires every cell of the code to be filled.
func ValidateOTP(code models.OTPCode) FormErrors {
	errs := FormErrors{}
	if !code.Complete() {
		errs[KeyOTP] = "Please enter the 6-digit code"
	}
	return errs
}
