package localstore

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"volunteer-backend/internal/domain"
)

var (
	lettersRe = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	digitsRe  = regexp.MustCompile(`^\d+$`)
	zipRe     = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	phoneRe   = regexp.MustCompile(`^\+?[\d\s\-\(\)]+$`)
)

// profileMessages maps a failing (field, tag) pair to the message the
// onboarding form shows for it.
var profileMessages = map[string]string{
	"fullName.min":             "Name must be at least 2 characters",
	"fullName.max":             "Name must be less than 50 characters",
	"fullName.letters":         "Name can only contain letters and spaces",
	"age.required":             "Age is required",
	"age.digits":               "Age must be a number",
	"age.intgte":               "You must be at least 13 years old",
	"age.intlte":               "Please enter a valid age",
	"addressLine1.min":         "Address must be at least 5 characters",
	"addressLine1.max":         "Address must be less than 100 characters",
	"addressLine2.max":         "Address must be less than 100 characters",
	"zipCode.zipcode":          "Please enter a valid 5-digit zip code",
	"email.required":           "Email is required",
	"email.email":              "Please enter a valid email address",
	"phone.min":                "Phone number must be at least 10 digits",
	"phone.phone":              "Please enter a valid phone number",
	"emergencyContact.min":     "Emergency contact name must be at least 2 characters",
	"emergencyContact.max":     "Emergency contact name must be less than 50 characters",
	"emergencyContact.letters": "Name can only contain letters and spaces",
	"emergencyPhone.min":       "Emergency phone number must be at least 10 digits",
	"emergencyPhone.phone":     "Please enter a valid phone number",
	"skills.min":               "Please select at least one skill",
	"interests.min":            "Please select at least one area of interest",
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	mustRegister(v, "letters", func(fl validator.FieldLevel) bool {
		return lettersRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "digits", func(fl validator.FieldLevel) bool {
		return digitsRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "zipcode", func(fl validator.FieldLevel) bool {
		return zipRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "intgte", func(fl validator.FieldLevel) bool {
		n, limit, ok := intParams(fl)
		return ok && n >= limit
	})
	mustRegister(v, "intlte", func(fl validator.FieldLevel) bool {
		n, limit, ok := intParams(fl)
		return ok && n <= limit
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func intParams(fl validator.FieldLevel) (n, limit int, ok bool) {
	n, err := strconv.Atoi(fl.Field().String())
	if err != nil {
		return 0, 0, false
	}
	limit, err = strconv.Atoi(fl.Param())
	if err != nil {
		return 0, 0, false
	}
	return n, limit, true
}

// ValidateProfile checks p against the onboarding form rules and returns a
// *domain.ValidationError for the first failing field.
func ValidateProfile(p domain.OnboardingProfile) error {
	err := profileValidator.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	msg, ok := profileMessages[fe.Field()+"."+fe.Tag()]
	if !ok {
		msg = "Invalid field"
	}
	return domain.NewValidationError(fe.Field(), msg)
}

var profileValidator = newValidator()
