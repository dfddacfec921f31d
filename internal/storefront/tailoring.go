package storefront

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"strconv"

	pkgerrors "github.com/tailorline/storefront/pkg/errors"
)

// SubmitTailoring posts the measurement form as multipart, attaching the
// reference image when one is present.
func (c *Client) SubmitTailoring(ctx context.Context, req TailoringRequest) (*TailoringRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, c.orderTimeout)
	defer cancel()

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	fields := [][2]string{
		{"name", req.Name},
		{"phone", req.Phone},
		{"email", req.Email},
		{"chest", formatMeasure(req.Chest)},
		{"waist", formatMeasure(req.Waist)},
		{"arm_length", formatMeasure(req.ArmLength)},
		{"shoulder", formatMeasure(req.Shoulder)},
		{"size", req.Size.String()},
		{"color", req.Color},
		{"fit_style", req.FitStyle.String()},
		{"fabric", req.Fabric.String()},
		{"lapels", req.Lapels.String()},
		{"is_womens_suit", strconv.FormatBool(req.IsWomensSuit)},
		{"additional_description", req.AdditionalDescription},
	}
	if req.BottomStyle != "" {
		fields = append(fields, [2]string{"bottom_style", req.BottomStyle.String()})
	}
	for _, f := range fields {
		if err := form.WriteField(f[0], f[1]); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write form field")
		}
	}
	if len(req.Image) > 0 {
		name := req.ImageName
		if name == "" {
			name = "reference"
		}
		part, err := form.CreateFormFile("image", name)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create image part")
		}
		if _, err := part.Write(req.Image); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write image part")
		}
	}
	if err := form.Close(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "close form")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/custom-tailoring", body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	httpReq.Header.Set("Content-Type", form.FormDataContentType())
	httpReq.Header.Set("Accept", "application/json")

	var out TailoringRecord
	if _, err := c.do(httpReq, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func formatMeasure(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
