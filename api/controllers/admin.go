package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tailorline/storefront/api/responses"
	"github.com/tailorline/storefront/api/validators"
	"github.com/tailorline/storefront/internal/admin"
	"github.com/tailorline/storefront/internal/orders"
	"github.com/tailorline/storefront/pkg/logger"
	"github.com/tailorline/storefront/pkg/pagination"
)

const MsgStatusUpdated = "Order status updated"

func AdminLogin(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return serve(logg, "admin", svc != nil, func(w http.ResponseWriter, r *http.Request) error {
		var payload admin.LoginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return err
		}
		token, err := svc.Login(r.Context(), payload)
		if err != nil {
			return err
		}
		responses.WriteSuccess(w, token)
		return nil
	})
}

// AdminListOrders pages through orders newest first.
func AdminListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return serve(logg, "order", svc != nil, func(w http.ResponseWriter, r *http.Request) error {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			return err
		}
		cursor := strings.TrimSpace(r.URL.Query().Get("cursor"))
		page, err := svc.List(r.Context(), pagination.Params{Limit: limit, Cursor: cursor})
		if err != nil {
			return err
		}
		responses.WritePage(w, "", page.Orders, page.NextCursor)
		return nil
	})
}

type statusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

func AdminUpdateOrderStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return serve(logg, "order", svc != nil, func(w http.ResponseWriter, r *http.Request) error {
		id, err := validators.ParsePathID(chi.URLParam(r, "orderId"), "orderId")
		if err != nil {
			return err
		}
		var payload statusUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return err
		}
		updated, err := svc.UpdateStatus(r.Context(), id, payload.Status)
		if err != nil {
			return err
		}
		responses.WriteMessage(w, http.StatusOK, MsgStatusUpdated, updated)
		return nil
	})
}
