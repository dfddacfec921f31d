package controllers

import (
	"net/http"

	"github.com/tailorline/storefront/api/responses"
	"github.com/tailorline/storefront/api/validators"
	"github.com/tailorline/storefront/internal/subscribers"
	"github.com/tailorline/storefront/pkg/logger"
	"github.com/tailorline/storefront/pkg/pagination"
)

func Subscribe(svc subscribers.Service, logg *logger.Logger) http.HandlerFunc {
	return serve(logg, "subscriber", svc != nil, func(w http.ResponseWriter, r *http.Request) error {
		var payload struct {
			Email string `json:"email"`
		}
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return err
		}
		if err := svc.Subscribe(r.Context(), payload.Email); err != nil {
			return err
		}
		responses.WriteMessage(w, http.StatusCreated, subscribers.MsgSubscribed, nil)
		return nil
	})
}

// AdminListSubscribers returns the newest subscribers, up to ?limit=.
func AdminListSubscribers(svc subscribers.Service, logg *logger.Logger) http.HandlerFunc {
	return serve(logg, "subscriber", svc != nil, func(w http.ResponseWriter, r *http.Request) error {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.MaxLimit, 1, pagination.MaxLimit)
		if err != nil {
			return err
		}
		rows, err := svc.List(r.Context(), limit)
		if err != nil {
			return err
		}
		responses.WriteSuccess(w, rows)
		return nil
	})
}
