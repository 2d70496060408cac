package models

import "time"

// AssetType classifies a market asset.
type AssetType string

const (
	AssetTypeStock  AssetType = "stock"
	AssetTypeCrypto AssetType = "crypto"
	AssetTypeForex  AssetType = "forex"
	AssetTypeIndex  AssetType = "index"
)

// Asset is a market instrument tracked by the platform. Symbol is unique.
type Asset struct {
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Type      AssetType `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}
