package validators

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	pkgerrors "github.com/tailorline/storefront/pkg/errors"
)

func fieldError(field, message, detail string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeValidation, message).
		WithDetails(map[string][]string{field: {detail}})
}

// ParseQueryInt reads an optional integer query parameter bounded by
// [lo, hi]. A missing value yields def.
func ParseQueryInt(r *http.Request, key string, def, lo, hi int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	switch {
	case err != nil:
		return 0, fieldError(key, "query parameter must be numeric", "must be numeric")
	case n < lo || n > hi:
		return 0, fieldError(key, "query parameter out of range", fmt.Sprintf("must be between %d and %d", lo, hi))
	}
	return n, nil
}

// ParsePathID parses a positive numeric identifier.
func ParsePathID(raw, field string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fieldError(field, "invalid "+field, "must be a positive integer")
	}
	return id, nil
}

// SanitizeString normalizes input to NFC, drops control characters other
// than newlines and tabs, trims it and keeps at most maxLen runes.
func SanitizeString(input string, maxLen int) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, norm.NFC.String(input))
	cleaned = strings.TrimSpace(cleaned)
	if maxLen <= 0 {
		return cleaned
	}
	if runes := []rune(cleaned); len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return cleaned
}
