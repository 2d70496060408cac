package services

import (
	"github.com/marketpulse/market-pulse-be/internal/models"
	"github.com/marketpulse/market-pulse-be/internal/store"
)

// AssetServiceProvider defines the interface for market-asset services.
type AssetServiceProvider interface {
	GetAssetBySymbol(symbol string) (models.Asset, error)
	GetAllAssets() ([]models.Asset, error)
}

// AssetService provides read access to the tracked market assets.
type AssetService struct {
	assets store.AssetStoreProvider
}

// NewAssetService creates a new AssetService.
func NewAssetService(assets store.AssetStoreProvider) *AssetService {
	return &AssetService{assets: assets}
}

// GetAssetBySymbol retrieves a single asset by its symbol.
func (s *AssetService) GetAssetBySymbol(symbol string) (models.Asset, error) {
	return s.assets.FindBySymbol(symbol)
}

// GetAllAssets retrieves every tracked asset.
func (s *AssetService) GetAllAssets() ([]models.Asset, error) {
	return s.assets.List()
}
