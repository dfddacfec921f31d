package validators

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/tailorline/storefront/pkg/errors"
)

// multipart bodies carry form fields on top of the file.
const formOverheadBytes = 1 << 20

// Form reads typed values from a parsed multipart request and collects
// conversion failures per field.
type Form struct {
	req  *http.Request
	errs map[string][]string
}

// ParseMultipart parses a multipart body capped at maxFileBytes plus room for
// the text fields.
func ParseMultipart(w http.ResponseWriter, r *http.Request, maxFileBytes int64) (*Form, error) {
	limit := maxFileBytes + formOverheadBytes
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, pkgerrors.Wrap(pkgerrors.CodePayloadTooLarge, err, "request body too large")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeBadRequest, err, "invalid multipart form")
	}
	return &Form{req: r, errs: map[string][]string{}}, nil
}

func (f *Form) String(key string, maxLen int) string {
	return SanitizeString(f.req.FormValue(key), maxLen)
}

// Float returns 0 for a missing field and records an error for a malformed one.
func (f *Form) Float(key string) float64 {
	raw := strings.TrimSpace(f.req.FormValue(key))
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		f.errs[key] = append(f.errs[key], fmt.Sprintf("The %s field must be a number.", strings.ReplaceAll(key, "_", " ")))
		return 0
	}
	return v
}

func (f *Form) Bool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(f.req.FormValue(key))) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// File returns the uploaded file for key, or nil when none was sent.
func (f *Form) File(key string) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := f.req.FormFile(key)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeBadRequest, err, "read "+key)
	}
	return file, header, nil
}

// Err reports the collected conversion failures as a validation error.
func (f *Form) Err() error {
	if len(f.errs) == 0 {
		return nil
	}
	first := ""
	for _, msgs := range f.errs {
		first = msgs[0]
		break
	}
	return pkgerrors.New(pkgerrors.CodeValidation, first).WithDetails(f.errs)
}
