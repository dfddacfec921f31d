// Package checkout holds the customer contact rules shared by the order form
// and the order API.
package checkout

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tailorline/storefront/pkg/validation"
)

const (
	MsgNameRequired  = "Name is required"
	MsgNameTooLong   = "Name must be at most 255 characters"
	MsgInvalidEmail  = "Invalid email address"
	MsgEmailTooLong  = "Email must be at most 255 characters"
	MsgPhoneTooShort = "Phone number must be at least 10 digits"
	MsgPhoneTooLong  = "Phone number must be at most 20 digits"
	MsgInvalidPhone  = "Invalid phone number"
)

// Contact is who an order belongs to.
type Contact struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
	Phone string `json:"phone" validate:"required,min=10,max=20,phone"`
}

// Fields in the order their errors are reported.
var contactFields = []string{"name", "email", "phone"}

var validate = validation.New(nil)

// FieldErrors maps a field name to its first failing rule's message.
type FieldErrors map[string]string

// First returns the first error in form order.
func (f FieldErrors) First() string {
	for _, field := range contactFields {
		if msg, ok := f[field]; ok {
			return msg
		}
	}
	for _, msg := range f {
		return msg
	}
	return ""
}

// Normalize trims surrounding whitespace from every field.
func (c Contact) Normalize() Contact {
	return Contact{
		Name:  strings.TrimSpace(c.Name),
		Email: strings.TrimSpace(c.Email),
		Phone: strings.TrimSpace(c.Phone),
	}
}

// Validate returns nil when the contact is acceptable.
func (c Contact) Validate() FieldErrors {
	err := validate.Struct(c.Normalize())
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"name": err.Error()}
	}
	out := FieldErrors{}
	for _, fe := range errs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = ContactMessage(fe.Field(), fe.Tag())
	}
	return out
}

// ContactMessage is the user facing message for a failed contact rule.
func ContactMessage(field, tag string) string {
	switch field {
	case "name":
		if tag == "max" {
			return MsgNameTooLong
		}
		return MsgNameRequired
	case "email":
		if tag == "max" {
			return MsgEmailTooLong
		}
		return MsgInvalidEmail
	case "phone":
		switch tag {
		case "required", "min":
			return MsgPhoneTooShort
		case "max":
			return MsgPhoneTooLong
		}
		return MsgInvalidPhone
	}
	return "is invalid"
}
