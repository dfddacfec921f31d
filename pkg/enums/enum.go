// Package enums holds the closed value sets shared by the API, the
// database models and the CLI.
package enums

import (
	"fmt"
	"slices"
)

func member[T ~string](set []T, v T) bool {
	return slices.Contains(set, v)
}

func parse[T ~string](kind string, set []T, value string) (T, error) {
	if v := T(value); member(set, v) {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q", kind, value)
}
