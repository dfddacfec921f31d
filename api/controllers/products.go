package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tailorline/storefront/api/responses"
	"github.com/tailorline/storefront/api/validators"
	"github.com/tailorline/storefront/internal/catalog"
	"github.com/tailorline/storefront/pkg/logger"
)

// ListProducts serves the catalog, optionally filtered by ?category=.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return serve(logg, "catalog", svc != nil, func(w http.ResponseWriter, r *http.Request) error {
		products, err := svc.List(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			return err
		}
		responses.WriteSuccess(w, products)
		return nil
	})
}

func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return serve(logg, "catalog", svc != nil, func(w http.ResponseWriter, r *http.Request) error {
		id, err := validators.ParsePathID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			return err
		}
		product, err := svc.Get(r.Context(), id)
		if err != nil {
			return err
		}
		responses.WriteSuccess(w, product)
		return nil
	})
}
