package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/marketpulse/market-pulse-be/internal/services"
	"github.com/marketpulse/market-pulse-be/internal/store"
	"github.com/rs/zerolog/log"
)

// AssetHandler handles HTTP requests for market assets.
type AssetHandler struct {
	service services.AssetServiceProvider
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(service services.AssetServiceProvider) *AssetHandler {
	return &AssetHandler{service: service}
}

// GetAll lists every tracked asset.
func (h *AssetHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	assets, err := h.service.GetAllAssets()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list assets")
		respondError(w, http.StatusInternalServerError, "internal_error", "Something went wrong")
		return
	}
	respondJSON(w, http.StatusOK, assets)
}

// Get retrieves a single asset by symbol.
func (h *AssetHandler) Get(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	asset, err := h.service.GetAssetBySymbol(symbol)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "asset_not_found", "Asset not found.")
			return
		}
		log.Error().Err(err).Str("symbol", symbol).Msg("Failed to get asset")
		respondError(w, http.StatusInternalServerError, "internal_error", "Something went wrong")
		return
	}
	respondJSON(w, http.StatusOK, asset)
}
