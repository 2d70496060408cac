package store

import (
	"database/sql"

	"github.com/marketpulse/market-pulse-be/internal/models"
)

// AssetStoreProvider defines the persistence boundary for market assets.
type AssetStoreProvider interface {
	FindBySymbol(symbol string) (models.Asset, error)
	List() ([]models.Asset, error)
}

// AssetStore persists market assets in SQLite.
type AssetStore struct {
	db *sql.DB
}

// NewAssetStore creates a new AssetStore.
func NewAssetStore(db *sql.DB) *AssetStore {
	return &AssetStore{db: db}
}

// FindBySymbol retrieves a single asset by its unique symbol.
func (s *AssetStore) FindBySymbol(symbol string) (models.Asset, error) {
	var asset models.Asset
	row := s.db.QueryRow("SELECT id, symbol, asset_name, asset_type, created_at FROM assets WHERE symbol = ?", symbol)
	err := row.Scan(&asset.ID, &asset.Symbol, &asset.Name, &asset.Type, &asset.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Asset{}, ErrNotFound
		}
		return models.Asset{}, err
	}
	return asset, nil
}

// List retrieves all tracked assets ordered by symbol.
func (s *AssetStore) List() ([]models.Asset, error) {
	rows, err := s.db.Query("SELECT id, symbol, asset_name, asset_type, created_at FROM assets ORDER BY symbol")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		var asset models.Asset
		if err := rows.Scan(&asset.ID, &asset.Symbol, &asset.Name, &asset.Type, &asset.CreatedAt); err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}
