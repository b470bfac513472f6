package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/frahmantamala/camp-management/internal"
)

type ValidatorFunc func(interface{}) *internal.AppError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc

	builder *ValidationBuilder
}

type ValidationBuilder struct {
	fields []FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]FieldValidator, 0),
	}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
		builder:    v,
	}
	v.fields = append(v.fields, fv)
	return &v.fields[len(v.fields)-1]
}

// Field starts the next field in the chain, delegating to the builder so
// call sites can chain fields without keeping the builder in a variable.
func (fv *FieldValidator) Field(name string, value interface{}) *FieldValidator {
	return fv.builder.Field(name, value)
}

// Validate ends the chain, running every field registered on the builder.
func (fv *FieldValidator) Validate() *internal.AppError {
	return fv.builder.Validate()
}

func (fv *FieldValidator) Required() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *internal.AppError {
		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) == "" {
				return internal.NewValidationError(fmt.Sprintf("%s is required", fv.FieldName), internal.ErrCodeValidationFailed)
			}
		case int64:
			if v == 0 {
				return internal.NewValidationError(fmt.Sprintf("%s is required", fv.FieldName), internal.ErrCodeValidationFailed)
			}
		case *string:
			if v == nil || strings.TrimSpace(*v) == "" {
				return internal.NewValidationError(fmt.Sprintf("%s is required", fv.FieldName), internal.ErrCodeValidationFailed)
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MinLength(min int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *internal.AppError {
		if v, ok := value.(string); ok && len(v) < min {
			return internal.NewValidationError(
				fmt.Sprintf("%s must be at least %d characters", fv.FieldName, min),
				internal.ErrCodeValidationFailed)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MaxLength(max int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *internal.AppError {
		if v, ok := value.(string); ok && len(v) > max {
			return internal.NewValidationError(
				fmt.Sprintf("%s must not exceed %d characters", fv.FieldName, max),
				internal.ErrCodeValidationFailed)
		}
		return nil
	})
	return fv
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func (fv *FieldValidator) Email() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *internal.AppError {
		if v, ok := value.(string); ok && v != "" && !emailPattern.MatchString(v) {
			return internal.NewValidationError(
				fmt.Sprintf("%s must be a valid email address", fv.FieldName),
				internal.ErrCodeValidationFailed)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) OneOf(allowed ...string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *internal.AppError {
		v, ok := value.(string)
		if !ok {
			return nil
		}
		for _, a := range allowed {
			if v == a {
				return nil
			}
		}
		return internal.NewValidationError(
			fmt.Sprintf("%s must be one of: %s", fv.FieldName, strings.Join(allowed, ", ")),
			internal.ErrCodeInvalidStatus)
	})
	return fv
}

// Validate runs all field validators and returns the first failure.
func (v *ValidationBuilder) Validate() *internal.AppError {
	for _, field := range v.fields {
		for _, validator := range field.Validators {
			if err := validator(field.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

// NonBlank reports whether s contains any non-whitespace character. Used for
// reasons that are mandatory, where "   " must not pass.
func NonBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}
