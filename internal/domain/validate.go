package domain

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	contactPattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

var requiredMessages = map[string]string{
	"name":     "Name is required",
	"address":  "Address is required",
	"city":     "City is required",
	"state":    "State is required",
	"contact":  "Contact number is required",
	"image":    "Image is required",
	"email_id": "Email is required",
}

var patternMessages = map[string]string{
	"contact":     "Contact must be a 10-digit number",
	"basic_email": "Enter a valid email address",
}

// Validator checks NewSchool payloads. It is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("contact", func(fl validator.FieldLevel) bool {
		return contactPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("basic_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return &Validator{v: v}
}

// Normalize trims surrounding whitespace from every field.
func (s NewSchool) Normalize() NewSchool {
	return NewSchool{
		Name:    strings.TrimSpace(s.Name),
		Address: strings.TrimSpace(s.Address),
		City:    strings.TrimSpace(s.City),
		State:   strings.TrimSpace(s.State),
		Contact: strings.TrimSpace(s.Contact),
		Image:   strings.TrimSpace(s.Image),
		EmailID: strings.TrimSpace(s.EmailID),
	}
}

// Validate returns a *ValidationError listing every failing field, or nil.
// The input is expected to be normalized.
func (v *Validator) Validate(s NewSchool) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Fields: map[string]string{"_": err.Error()}}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if fe.Tag() == "required" {
			fields[field] = requiredMessages[field]
			continue
		}
		if msg, ok := patternMessages[fe.Tag()]; ok {
			fields[field] = msg
			continue
		}
		fields[field] = "is invalid"
	}
	return &ValidationError{Fields: fields}
}
