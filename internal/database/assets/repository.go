// Package assets provides database operations for the ordered asset
// lists inside an album, including reordering and cover linkage.
package assets

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/dkasyanov/shoebox/internal/database"
	"github.com/dkasyanov/shoebox/internal/database/ids"
	"github.com/dkasyanov/shoebox/internal/entities"
)

// Repository handles all asset database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new assets repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// NewAsset carries the fields of an asset to be inserted. Metadata is
// copied as-is; validation happens upstream.
type NewAsset struct {
	MediaID   string             `json:"media_id"`
	MediaType entities.MediaType `json:"media_type"`
	URI       string             `json:"uri"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Caption   string             `json:"caption"`
}

// AssetUpdate describes a partial asset update. Nil fields are left
// untouched.
type AssetUpdate struct {
	Caption *string
	URI     *string
	Width   *int
	Height  *int
}

// InsertAssets appends a batch of assets to an album, preserving input
// order after the album's current maximum order index. The batch is one
// transaction: either every asset is persisted or none are.
func (r *Repository) InsertAssets(albumID string, newAssets []NewAsset) ([]entities.Asset, error) {
	created := make([]entities.Asset, 0, len(newAssets))

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entities.Album{}).Where("id = ?", albumID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check album %s: %w", albumID, err)
		}
		if count == 0 {
			return fmt.Errorf("album %s: %w", albumID, database.ErrNotFound)
		}

		var next int
		row := tx.Model(&entities.Asset{}).
			Where("album_id = ?", albumID).
			Select("COALESCE(MAX(order_index), -1) + 1")
		if err := row.Scan(&next).Error; err != nil {
			return fmt.Errorf("failed to find next order index for album %s: %w", albumID, err)
		}

		for i, item := range newAssets {
			asset := entities.Asset{
				MediaID:    item.MediaID,
				AlbumID:    albumID,
				MediaType:  item.MediaType,
				URI:        item.URI,
				Width:      item.Width,
				Height:     item.Height,
				Caption:    item.Caption,
				OrderIndex: next + i,
			}
			err := ids.InsertWithRetry(func(id string) error {
				asset.ID = id
				return tx.Create(&asset).Error
			})
			if err != nil {
				return err
			}
			created = append(created, asset)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetAssetsByAlbum returns the album's assets in display order.
func (r *Repository) GetAssetsByAlbum(albumID string) ([]entities.Asset, error) {
	assets := []entities.Asset{}
	err := r.db.Where("album_id = ?", albumID).Order("order_index ASC").Find(&assets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assets for album %s: %w", albumID, err)
	}
	return assets, nil
}

// UpdateAsset applies a partial caption/metadata update.
func (r *Repository) UpdateAsset(id string, upd AssetUpdate) error {
	updates := map[string]interface{}{}
	if upd.Caption != nil {
		updates["caption"] = *upd.Caption
	}
	if upd.URI != nil {
		updates["uri"] = *upd.URI
	}
	if upd.Width != nil {
		updates["width"] = *upd.Width
	}
	if upd.Height != nil {
		updates["height"] = *upd.Height
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var asset entities.Asset
		if err := tx.Select("id").First(&asset, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("asset %s: %w", id, database.ErrNotFound)
			}
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&entities.Asset{}).Where("id = ?", id).Updates(updates).Error
	})
}

// DeleteAsset removes an asset. When the asset is the owning album's
// cover, the cover reference is cleared in the same transaction so it
// is never left dangling.
func (r *Repository) DeleteAsset(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var asset entities.Asset
		if err := tx.First(&asset, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("asset %s: %w", id, database.ErrNotFound)
			}
			return err
		}

		err := tx.Model(&entities.Album{}).
			Where("id = ? AND cover_asset_id = ?", asset.AlbumID, asset.ID).
			Updates(map[string]interface{}{
				"cover_asset_id": nil,
				"updated_at":     time.Now(),
			}).Error
		if err != nil {
			return fmt.Errorf("failed to clear cover of album %s: %w", asset.AlbumID, err)
		}

		if err := tx.Delete(&entities.Asset{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete asset %s: %w", id, err)
		}
		return nil
	})
}

// UpdateAssetOrder reassigns a dense zero-based order to match the given
// sequence. The id set must exactly equal the album's current asset set;
// on a mismatch the existing ordering is left untouched.
func (r *Repository) UpdateAssetOrder(albumID string, orderedAssetIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var currentIDs []string
		err := tx.Model(&entities.Asset{}).
			Where("album_id = ?", albumID).
			Pluck("id", &currentIDs).Error
		if err != nil {
			return fmt.Errorf("failed to fetch assets for album %s: %w", albumID, err)
		}

		if len(currentIDs) != len(orderedAssetIDs) {
			return fmt.Errorf("order for album %s lists %d assets, album has %d: %w",
				albumID, len(orderedAssetIDs), len(currentIDs), database.ErrInvalidReference)
		}
		current := make(map[string]bool, len(currentIDs))
		for _, id := range currentIDs {
			current[id] = true
		}
		for _, id := range orderedAssetIDs {
			if !current[id] {
				return fmt.Errorf("asset %s is not in album %s: %w", id, albumID, database.ErrInvalidReference)
			}
			delete(current, id)
		}

		for index, id := range orderedAssetIDs {
			err := tx.Model(&entities.Asset{}).
				Where("id = ?", id).
				Update("order_index", index).Error
			if err != nil {
				return fmt.Errorf("failed to reorder asset %s: %w", id, err)
			}
		}
		return nil
	})
}

// SetAlbumCover points the album's cover at one of its own assets.
func (r *Repository) SetAlbumCover(albumID, assetID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var album entities.Album
		if err := tx.Select("id").First(&album, "id = ?", albumID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("album %s: %w", albumID, database.ErrNotFound)
			}
			return err
		}

		var asset entities.Asset
		err := tx.Select("id", "album_id").First(&asset, "id = ?", assetID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("cover asset %s: %w", assetID, database.ErrInvalidReference)
		}
		if err != nil {
			return err
		}
		if asset.AlbumID != albumID {
			return fmt.Errorf("cover asset %s belongs to album %s: %w", assetID, asset.AlbumID, database.ErrInvalidReference)
		}

		return tx.Model(&entities.Album{}).
			Where("id = ?", albumID).
			Updates(map[string]interface{}{
				"cover_asset_id": assetID,
				"updated_at":     time.Now(),
			}).Error
	})
}
