package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	t.Setenv("TAILORLINE_LOG_FORMAT", "  console ")
	assert.Equal(t, "console", Get("TAILORLINE_LOG_FORMAT", "json"))

	t.Setenv("TAILORLINE_LOG_FORMAT", "   ")
	assert.Equal(t, "json", Get("TAILORLINE_LOG_FORMAT", "json"))
	assert.Equal(t, "json", Get("TAILORLINE_UNSET_FOR_TEST", "json"))
}
