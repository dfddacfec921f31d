package controllers

import (
	"net/http"

	"github.com/tailorline/storefront/api/responses"
	"github.com/tailorline/storefront/api/validators"
	"github.com/tailorline/storefront/internal/contact"
	"github.com/tailorline/storefront/pkg/logger"
)

func SendContact(svc contact.Service, logg *logger.Logger) http.HandlerFunc {
	return serve(logg, "contact", svc != nil, func(w http.ResponseWriter, r *http.Request) error {
		var payload struct {
			Name               string `json:"name"`
			Email              string `json:"email"`
			Message            string `json:"message"`
			IsTailoringRequest bool   `json:"isTailoringRequest"`
		}
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return err
		}
		if err := svc.Send(r.Context(), contact.Input(payload)); err != nil {
			return err
		}
		responses.WriteMessage(w, http.StatusCreated, contact.MsgSent, nil)
		return nil
	})
}
