package validators

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	pkgerrors "github.com/tailorline/storefront/pkg/errors"
	"github.com/tailorline/storefront/pkg/validation"
)

const maxJSONBodyBytes = 1 << 20

// Validate reports field errors under their JSON names.
var Validate = validation.New(nil)

// DecodeJSONBody decodes a JSON request into dest and runs its validate tags.
// Unknown fields are rejected.
func DecodeJSONBody(r *http.Request, dest any) error {
	defer io.Copy(io.Discard, r.Body)

	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBodyBytes))
	dec.DisallowUnknownFields()
	switch err := dec.Decode(dest); {
	case errors.Is(err, io.EOF):
		return pkgerrors.New(pkgerrors.CodeBadRequest, "request body is required")
	case err != nil:
		return pkgerrors.Wrap(pkgerrors.CodeBadRequest, err, "invalid request body").
			WithDetails(map[string][]string{"body": {err.Error()}})
	}
	return validation.Error(Validate.Struct(dest))
}
