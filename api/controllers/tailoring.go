package controllers

import (
	"io"
	"net/http"

	"github.com/tailorline/storefront/api/responses"
	"github.com/tailorline/storefront/api/validators"
	"github.com/tailorline/storefront/internal/tailoring"
	"github.com/tailorline/storefront/pkg/logger"
)

// SubmitTailoring accepts the multipart measurement form with an optional
// reference image.
func SubmitTailoring(svc tailoring.Service, maxUploadBytes int64, logg *logger.Logger) http.HandlerFunc {
	return serve(logg, "tailoring", svc != nil, func(w http.ResponseWriter, r *http.Request) error {
		form, err := validators.ParseMultipart(w, r, maxUploadBytes)
		if err != nil {
			return err
		}
		defer func() {
			if r.MultipartForm != nil {
				_ = r.MultipartForm.RemoveAll()
			}
		}()

		input := tailoring.Input{
			Name:                  form.String("name", 0),
			Phone:                 form.String("phone", 0),
			Email:                 form.String("email", 0),
			Chest:                 form.Float("chest"),
			Waist:                 form.Float("waist"),
			ArmLength:             form.Float("arm_length"),
			Shoulder:              form.Float("shoulder"),
			Size:                  form.String("size", 0),
			Color:                 form.String("color", 0),
			FitStyle:              form.String("fit_style", 0),
			BottomStyle:           form.String("bottom_style", 0),
			Fabric:                form.String("fabric", 0),
			Lapels:                form.String("lapels", 0),
			IsWomensSuit:          form.Bool("is_womens_suit"),
			AdditionalDescription: form.String("additional_description", 0),
		}
		if err := form.Err(); err != nil {
			return err
		}

		file, _, err := form.File("image")
		if err != nil {
			return err
		}
		var image io.Reader
		if file != nil {
			defer file.Close()
			image = file
		}

		record, err := svc.Submit(r.Context(), input, image)
		if err != nil {
			return err
		}
		responses.WriteMessage(w, http.StatusCreated, tailoring.MsgSaved, record)
		return nil
	})
}
