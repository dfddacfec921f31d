package validators

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/tailorline/storefront/pkg/errors"
)

type loginBody struct {
	Password string `json:"password" validate:"required"`
	Phone    string `json:"user_phone" validate:"omitempty,phone"`
}

func TestDecodeJSONBody(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		code  pkgerrors.Code
		field string
	}{
		{"ok", `{"password":"x"}`, "", ""},
		{"empty", ``, pkgerrors.CodeBadRequest, ""},
		{"unknown field", `{"password":"x","role":"root"}`, pkgerrors.CodeBadRequest, ""},
		{"missing required", `{}`, pkgerrors.CodeValidation, "password"},
		{"bad phone", `{"password":"x","user_phone":"12ab"}`, pkgerrors.CodeValidation, "user_phone"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var dest loginBody
			err := DecodeJSONBody(req, &dest)
			if tc.code == "" {
				require.NoError(t, err)
				assert.Equal(t, "x", dest.Password)
				return
			}
			require.Error(t, err)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, tc.code, typed.Code())
			if tc.field != "" {
				details, ok := typed.Details().(map[string][]string)
				require.True(t, ok)
				assert.Contains(t, details, tc.field)
			}
		})
	}
}

func TestValidationMessageIsReadable(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	err := DecodeJSONBody(req, &loginBody{})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, "The password field is required.", typed.Message())
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=30&bad=x&big=900", nil)

	v, err := ParseQueryInt(req, "limit", 50, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 30, v)

	v, err = ParseQueryInt(req, "missing", 50, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 50, v)

	_, err = ParseQueryInt(req, "bad", 50, 1, 100)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	_, err = ParseQueryInt(req, "big", 50, 1, 100)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestParsePathID(t *testing.T) {
	id, err := ParsePathID(" 42 ", "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "0", "-3", "abc"} {
		_, err := ParsePathID(raw, "id")
		assert.Error(t, err, raw)
	}
}

func TestSanitizeStringIsRuneSafe(t *testing.T) {
	assert.Equal(t, "Señ", SanitizeString("  Señor  ", 3))
	assert.Equal(t, "abc", SanitizeString("abc", 0))
}

func newMultipartRequest(t *testing.T, fields map[string]string, file []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		part, err := mw.CreateFormFile("image", "ref.png")
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/custom-tailoring", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestParseMultipartReadsTypedFields(t *testing.T) {
	req := newMultipartRequest(t, map[string]string{
		"name":           "  Ada  ",
		"chest":          "101.5",
		"waist":          "eighty",
		"is_womens_suit": "true",
	}, []byte("png-bytes"))

	form, err := ParseMultipart(httptest.NewRecorder(), req, 1<<20)
	require.NoError(t, err)
	assert.Equal(t, "Ada", form.String("name", 255))
	assert.Equal(t, 101.5, form.Float("chest"))
	assert.Zero(t, form.Float("shoulder"))
	assert.Zero(t, form.Float("waist"))
	assert.True(t, form.Bool("is_womens_suit"))
	assert.False(t, form.Bool("missing"))

	file, header, err := form.File("image")
	require.NoError(t, err)
	require.NotNil(t, file)
	assert.Equal(t, "ref.png", header.Filename)
	_ = file.Close()

	err = form.Err()
	require.Error(t, err)
	details := pkgerrors.As(err).Details().(map[string][]string)
	assert.Equal(t, []string{"The waist field must be a number."}, details["waist"])
}

func TestParseMultipartWithoutFile(t *testing.T) {
	req := newMultipartRequest(t, map[string]string{"name": "Ada"}, nil)
	form, err := ParseMultipart(httptest.NewRecorder(), req, 1<<20)
	require.NoError(t, err)
	file, header, err := form.File("image")
	require.NoError(t, err)
	assert.Nil(t, file)
	assert.Nil(t, header)
	assert.NoError(t, form.Err())
}

func TestSanitizeStringNormalizesAndStripsControls(t *testing.T) {
	assert.Equal(t, "Se\u00f1or", SanitizeString("Sen\u0303or", 0))
	assert.Equal(t, "navy\nwool", SanitizeString("\x00navy\nwool\x07", 0))
}
