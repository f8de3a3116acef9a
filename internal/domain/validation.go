package domain

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern = regexp.MustCompile(`^[\d\s+\-()]+$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("inquiry_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("interest", func(fl validator.FieldLevel) bool {
		return Interest(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		return Status(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		return Priority(fl.Field().String()).IsValid()
	})
	return v
}

// ValidationError reports every field that failed validation
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates a ValidationError for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Messages returns the field messages ordered by field name
func (e *ValidationError) Messages() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, len(keys))
	for i, k := range keys {
		msgs[i] = e.Fields[k]
	}
	return msgs
}

// Normalize trims free-text fields and lowercases the email address
func (i *Inquiry) Normalize() {
	i.Company = strings.TrimSpace(i.Company)
	i.Name = strings.TrimSpace(i.Name)
	i.Email = strings.ToLower(strings.TrimSpace(i.Email))
	i.Phone = strings.TrimSpace(i.Phone)
	i.Message = strings.TrimSpace(i.Message)
}

// Validate checks every field constraint and returns a *ValidationError
// naming all failing fields, or nil.
func (i *Inquiry) Validate() error {
	err := validate.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		name := jsonFieldName(fe.Field())
		if _, seen := fields[name]; seen {
			continue
		}
		fields[name] = inquiryFieldMessage(fe)
	}
	return &ValidationError{Fields: fields}
}

// MaxAssigneeLength matches the assigned_to column width
const MaxAssigneeLength = 100

// Validate checks every field an admin update sets and reports all
// failures together
func (r *UpdateInquiryRequest) Validate() error {
	fields := make(map[string]string)
	if r.Status != nil && !r.Status.IsValid() {
		fields["status"] = fmt.Sprintf("%q is not a valid status", *r.Status)
	}
	if r.Priority != nil && !r.Priority.IsValid() {
		fields["priority"] = fmt.Sprintf("%q is not a valid priority", *r.Priority)
	}
	if r.AssignedTo != nil && utf8.RuneCountInString(strings.TrimSpace(*r.AssignedTo)) > MaxAssigneeLength {
		fields["assignedTo"] = fmt.Sprintf("Assignee cannot be more than %d characters", MaxAssigneeLength)
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func inquiryFieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Company":
		switch fe.Tag() {
		case "required":
			return "Company name is required"
		case "min":
			return "Company name must be at least 2 characters"
		default:
			return "Company name cannot exceed 200 characters"
		}
	case "Name":
		switch fe.Tag() {
		case "required":
			return "Contact person name is required"
		case "min":
			return "Name must be at least 2 characters"
		default:
			return "Name cannot exceed 100 characters"
		}
	case "Email":
		if fe.Tag() == "required" {
			return "Email is required"
		}
		return "Please provide a valid email address"
	case "Phone":
		if fe.Tag() == "required" {
			return "Phone number is required"
		}
		return "Please provide a valid phone number"
	case "Interest":
		if fe.Tag() == "required" {
			return "Product interest is required"
		}
		return fmt.Sprintf("%q is not a valid product interest", fe.Value())
	case "Volume":
		if fe.Tag() == "gte" {
			return "Volume cannot be negative"
		}
		return "Volume value is too large"
	case "Message":
		return "Message cannot exceed 2000 characters"
	case "Status":
		return fmt.Sprintf("%q is not a valid status", fe.Value())
	case "Priority":
		return fmt.Sprintf("%q is not a valid priority", fe.Value())
	}
	return GetValidationMessage(fe.Tag())
}

// jsonFieldName converts a Go struct field name to its JSON equivalent (camelCase)
func jsonFieldName(field string) string {
	if len(field) == 0 {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
