package controllers

import (
	"net/http"

	"github.com/tailorline/storefront/api/responses"
	pkgerrors "github.com/tailorline/storefront/pkg/errors"
	"github.com/tailorline/storefront/pkg/logger"
)

// endpoint writes its own success response and returns any failure for
// serve to render.
type endpoint func(w http.ResponseWriter, r *http.Request) error

// serve adapts an endpoint to http. When the backing service was not wired
// every request fails with an internal error naming it.
func serve(logg *logger.Logger, service string, wired bool, fn endpoint) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !wired {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Newf(pkgerrors.CodeInternal, "%s service unavailable", service))
			return
		}
		if err := fn(w, r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
		}
	}
}
