package controllers

import (
	"net/http"

	"github.com/tailorline/storefront/api/responses"
	"github.com/tailorline/storefront/api/validators"
	"github.com/tailorline/storefront/internal/orders"
	"github.com/tailorline/storefront/pkg/logger"
)

// CreateOrder stores the submitted cart snapshot as a new order.
func CreateOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return serve(logg, "order", svc != nil, func(w http.ResponseWriter, r *http.Request) error {
		var payload orders.CreateOrderInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return err
		}
		created, err := svc.Create(r.Context(), payload)
		if err != nil {
			return err
		}
		responses.WriteMessage(w, http.StatusCreated, orders.MsgOrderPlaced, created)
		return nil
	})
}

// TrackOrder looks an order up by id plus the email or phone it was placed with.
func TrackOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return serve(logg, "order", svc != nil, func(w http.ResponseWriter, r *http.Request) error {
		q := r.URL.Query()
		tracked, err := svc.Track(r.Context(), q.Get("orderId"), q.Get("emailOrPhone"))
		if err != nil {
			return err
		}
		responses.WriteSuccess(w, tracked)
		return nil
	})
}
