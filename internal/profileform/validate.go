package profileform

import (
	"errors"
	"strconv"
	"time"

	"myapp_backend/internal/common"
	"myapp_backend/internal/profile"

	"github.com/go-playground/validator/v10"
)

// Form is what the profile editor submits. Only the fields with rules are
// listed; the rest pass through to the save unchecked.
type Form struct {
	Salutation    string `json:"salutation" form:"salutation" validate:"required"`
	FirstName     string `json:"firstName" form:"firstName" validate:"required"`
	LastName      string `json:"lastName" form:"lastName" validate:"required"`
	Email         string `json:"email" form:"email" validate:"required,email"`
	PostalCode    string `json:"postalCode" form:"postalCode" validate:"required"`
	DOB           string `json:"dob" form:"dob" validate:"required,minage=17"`
	MaritalStatus string `json:"maritalStatus" form:"maritalStatus"`
}

// Validator checks a Form against the editor's rules.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

func NewValidator() *Validator {
	return newValidator(time.Now)
}

func newValidator(now func() time.Time) *Validator {
	v := &Validator{validate: validator.New(), now: now}
	common.UseJSONFieldNames(v.validate)
	// registration only fails for an empty tag or nil func
	_ = v.validate.RegisterValidation("minage", v.minAge)
	return v
}

// Validate returns nil or a 422 APIError with a message per failing field.
func (v *Validator) Validate(f *Form) error {
	err := v.validate.Struct(f)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return common.NewValidationAPIError(common.FormatValidationErrors(ve))
	}
	return err
}

// minAge passes when the current year minus the birth year is at least the
// tag parameter. Month and day are ignored.
func (v *Validator) minAge(fl validator.FieldLevel) bool {
	years, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	dob := profile.ParseDOB(fl.Field().String())
	if dob == nil {
		return false
	}
	return v.now().Year()-dob.Year() >= years
}
