package assets

import "context"

type Repository interface {
	ListAssets(ctx context.Context, userID string, filter ListFilter) ([]Asset, int64, error)
	GetAssetByID(ctx context.Context, userID, assetID string) (*Asset, error)
	CreateAsset(ctx context.Context, asset *Asset) error
	UpdateAsset(ctx context.Context, asset *Asset) error
	DeleteAsset(ctx context.Context, userID, assetID string) (bool, error)
	ListStockSymbols(ctx context.Context) ([]string, error)
}
