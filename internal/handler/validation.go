package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/prperemyshlev/donor-service/internal/domain"
)

var registerValidation sync.Once

// SetupValidation makes binding errors report JSON field names
func SetupValidation() {
	registerValidation.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// bindError converts a binding failure into a validation error
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewValidationError("body", "Request body is malformed.")
	}

	issues := make([]domain.FieldIssue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, domain.FieldIssue{
			Field:   fe.Field(),
			Message: issueMessage(fe),
		})
	}
	return &domain.ValidationError{Issues: issues}
}

func issueMessage(fe validator.FieldError) string {
	label := fieldLabel(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required!"
	case "email":
		return "This is not a valid email."
	case "min":
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid.", label)
	}
}

// fieldLabel turns a camelCase field name into a sentence-case label ("bloodType" -> "Blood type")
func fieldLabel(field string) string {
	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
