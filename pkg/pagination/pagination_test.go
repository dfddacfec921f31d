package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultLimit, NormalizeLimit(-3))
	assert.Equal(t, 10, NormalizeLimit(10))
	assert.Equal(t, MaxLimit, NormalizeLimit(MaxLimit+1))
	assert.Equal(t, 11, LimitWithBuffer(10))
}

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2026, time.October, 19, 8, 0, 0, 123, time.UTC)
	encoded := EncodeCursor(Cursor{CreatedAt: at, ID: 42})

	got, err := ParseCursor(encoded)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, at.Equal(got.CreatedAt))
	assert.Equal(t, int64(42), got.ID)
}

func TestParseCursorRejectsGarbage(t *testing.T) {
	got, err := ParseCursor("  ")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseCursor("%%%")
	require.Error(t, err)

	_, err = ParseCursor(base64.RawURLEncoding.EncodeToString([]byte("nope")))
	require.Error(t, err)

	_, err = ParseCursor(base64.RawURLEncoding.EncodeToString([]byte("2026-10-19T08:00:00Z|abc")))
	require.Error(t, err)
}

func TestParseCursorErrorsAreMalformed(t *testing.T) {
	_, err := ParseCursor("%%%")
	assert.True(t, IsMalformed(err))
	assert.False(t, IsMalformed(nil))
}

func TestTrim(t *testing.T) {
	at := time.Date(2026, time.October, 19, 8, 0, 0, 0, time.UTC)
	position := func(id int64) Cursor { return Cursor{CreatedAt: at, ID: id} }

	rows, next := Trim([]int64{9, 8, 7}, 2, position)
	assert.Equal(t, []int64{9, 8}, rows)
	assert.Equal(t, EncodeCursor(Cursor{CreatedAt: at, ID: 8}), next)

	rows, next = Trim([]int64{9, 8}, 2, position)
	assert.Equal(t, []int64{9, 8}, rows)
	assert.Empty(t, next)
}
