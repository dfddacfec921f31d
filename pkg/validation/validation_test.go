package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/tailorline/storefront/pkg/errors"
)

type measurement struct {
	Name  string  `json:"name" validate:"required,max=5"`
	Phone string  `json:"user_phone" validate:"omitempty,phone"`
	Chest float64 `json:"chest" validate:"gt=0"`
	Size  string  `json:"size" validate:"suit"`
}

func TestErrorUsesJSONNamesAndFirstMessage(t *testing.T) {
	v := New(map[string]Rule{"suit": func(s string) bool { return s == "M" }})

	err := Error(v.Struct(measurement{Phone: "12ab", Size: "XXL"}))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, "The name field is required.", typed.Message())

	details, ok := typed.Details().(map[string][]string)
	require.True(t, ok)
	assert.Equal(t, []string{"The user phone field is invalid."}, details["user_phone"])
	assert.Equal(t, []string{"The chest must be greater than 0."}, details["chest"])
	assert.Contains(t, details, "size")
}

func TestErrorPassesNilAndWrapsOthers(t *testing.T) {
	assert.NoError(t, Error(nil))
	assert.True(t, pkgerrors.IsCode(Error(errors.New("odd")), pkgerrors.CodeValidation))
}

func TestPhoneRule(t *testing.T) {
	v := New(nil)
	assert.NoError(t, v.Var("+254712345678", "phone"))
	assert.Error(t, v.Var("0712-345", "phone"))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "The arm length may not be greater than 10 characters.", Message("arm_length", "max", "10"))
	assert.Equal(t, "The selected fabric is invalid.", Message("fabric", "oneof", ""))
}
