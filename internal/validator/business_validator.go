package validator

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Gopikasanthosh455/placement-app/internal/models"
)

const DateLayout = "2006-01-02"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// BusinessValidator handles tag validation plus cross-field business rules
type BusinessValidator struct {
	validate *validator.Validate
}

func NewBusinessValidator() *BusinessValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// report json names so errors line up with request payloads
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates tag rules for any struct
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	if err := bv.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}

	var errs ValidationErrors
	switch req := s.(type) {
	case *ProjectRequest:
		errs = append(errs, validateDateRange(req.StartDate, req.EndDate)...)
	case *InternshipRequest:
		errs = append(errs, validateDateRange(req.StartDate, req.EndDate)...)
	case *EducationRequest:
		errs = append(errs, validateDateRange(req.StartDate, req.EndDate)...)
	}
	return errs
}

// ValidateEmail applies the portal email shape outside of struct validation
func (bv *BusinessValidator) ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func (bv *BusinessValidator) registerBusinessRules() {
	bv.validate.RegisterValidation("portal_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})

	bv.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		_, err := models.ParseRole(fl.Field().String())
		return err == nil
	})

	bv.validate.RegisterValidation("skill_tag", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	bv.validate.RegisterValidation("date_string", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(DateLayout, fl.Field().String())
		return err == nil
	})
}

func validateDateRange(start, end string) ValidationErrors {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return nil
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return nil
	}
	if e.Before(s) {
		return ValidationErrors{{
			Field:   "end_date",
			Message: "must not be before start_date",
			Value:   end,
			Rule:    "business_logic",
		}}
	}
	return nil
}
