package contact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tailorline/storefront/pkg/db/dbtest"
	"github.com/tailorline/storefront/pkg/db/models"
	pkgerrors "github.com/tailorline/storefront/pkg/errors"
)

func TestSendStoresMessage(t *testing.T) {
	conn := dbtest.Open(t)
	svc, err := NewService(conn, nil)
	require.NoError(t, err)

	err = svc.Send(context.Background(), Input{Name: "Jane", Email: "jane@example.com", Message: " Fitting on Saturday? ", IsTailoringRequest: true})
	require.NoError(t, err)

	var stored []models.ContactRequest
	require.NoError(t, conn.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, "Fitting on Saturday?", stored[0].Message)
	assert.True(t, stored[0].IsTailoringRequest)
}

func TestSendValidates(t *testing.T) {
	svc, err := NewService(dbtest.Open(t), nil)
	require.NoError(t, err)

	err = svc.Send(context.Background(), Input{Name: "", Email: "jane", Message: ""})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details := typed.Details().(map[string][]string)
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "message")
	assert.Equal(t, "The name field is required.", typed.Message())
}
