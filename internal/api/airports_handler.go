package api

import (
	"net/http"

	"ground-experiment/groundlink/internal/constants"
	"ground-experiment/groundlink/internal/models/dtos"
)

// ListAirports handles GET /api/airports. Public; served from cache with the
// built-in list as fallback when the store is down.
func (h *Handlers) ListAirports() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		airports := h.deps.Services.Airports.ListAirports(r.Context())
		respondWithSuccess(w, http.StatusOK, &airports)
	}
}

// GetServiceTypes handles GET /api/service-types, exposing the canonical
// catalog and its revision
func (h *Handlers) GetServiceTypes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		types := make([]string, 0, len(constants.ServiceTypeCatalog))
		for _, st := range constants.ServiceTypeCatalog {
			types = append(types, st.String())
		}

		resp := dtos.ServiceTypeCatalogResponse{
			Version:      constants.ServiceTypeCatalogVersion,
			ServiceTypes: types,
		}
		respondWithSuccess(w, http.StatusOK, &resp)
	}
}
