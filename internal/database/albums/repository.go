// Package albums provides database operations over the album tree.
//
// # Usage
//
//	repo := albums.NewRepository(db)
//	album, err := repo.CreateAlbum("Trip", "", nil)
package albums

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/dkasyanov/shoebox/internal/database"
	"github.com/dkasyanov/shoebox/internal/database/ids"
	"github.com/dkasyanov/shoebox/internal/database/stats"
	"github.com/dkasyanov/shoebox/internal/entities"
)

// Repository handles all album database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new albums repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AlbumDetail is an album with its directly-owned assets (in display
// order) and the ids of its direct children.
type AlbumDetail struct {
	entities.Album
	Assets        []entities.Asset `json:"assets"`
	ChildAlbumIDs []string         `json:"child_album_ids"`
}

// AlbumSummary is a top-level album annotated with its recursive asset
// counts.
type AlbumSummary struct {
	entities.Album
	AssetCount stats.AssetCount `json:"asset_count"`
}

// AlbumUpdate describes a partial album update. Nil fields are left
// untouched; ClearCover and MakeTopLevel reset the corresponding
// nullable references.
type AlbumUpdate struct {
	Name          *string
	Description   *string
	CoverAssetID  *string
	ClearCover    bool
	ParentAlbumID *string
	MakeTopLevel  bool
}

// CreateAlbum inserts a new album. The parent, when given, must already
// exist; this is what keeps the tree acyclic by construction.
func (r *Repository) CreateAlbum(name, description string, parentAlbumID *string) (*entities.Album, error) {
	album := &entities.Album{
		Name:          name,
		Description:   description,
		ParentAlbumID: parentAlbumID,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if parentAlbumID != nil {
			exists, err := albumExists(tx, *parentAlbumID)
			if err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("parent album %s: %w", *parentAlbumID, database.ErrNotFound)
			}
		}

		return ids.InsertWithRetry(func(id string) error {
			album.ID = id
			return tx.Create(album).Error
		})
	})
	if err != nil {
		return nil, err
	}
	return album, nil
}

// GetAlbumByID fetches an album with its ordered assets and direct child
// ids. A missing id is not an error: the result is nil.
func (r *Repository) GetAlbumByID(id string) (*AlbumDetail, error) {
	var album entities.Album
	err := r.db.First(&album, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch album %s: %w", id, err)
	}

	detail := &AlbumDetail{Album: album, Assets: []entities.Asset{}, ChildAlbumIDs: []string{}}

	err = r.db.Where("album_id = ?", id).Order("order_index ASC").Find(&detail.Assets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assets for album %s: %w", id, err)
	}

	err = r.db.Model(&entities.Album{}).
		Where("parent_album_id = ?", id).
		Order("created_at ASC, id ASC").
		Pluck("id", &detail.ChildAlbumIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch children of album %s: %w", id, err)
	}

	return detail, nil
}

// GetTopLevelAlbums returns the albums without a parent, in creation
// order, each annotated with its recursive asset counts.
func (r *Repository) GetTopLevelAlbums() ([]AlbumSummary, error) {
	var albums []entities.Album
	err := r.db.Where("parent_album_id IS NULL").
		Order("created_at ASC, id ASC").
		Find(&albums).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list top-level albums: %w", err)
	}

	rootIDs := make([]string, len(albums))
	for i, album := range albums {
		rootIDs[i] = album.ID
	}

	counts, err := stats.TotalAssetCounts(r.db, rootIDs)
	if err != nil {
		return nil, err
	}

	summaries := make([]AlbumSummary, len(albums))
	for i, album := range albums {
		summaries[i] = AlbumSummary{Album: album, AssetCount: counts[album.ID]}
	}
	return summaries, nil
}

// UpdateAlbum applies a partial update. Cover changes are re-validated
// against the cover invariant; reparenting is allowed but the new parent
// must exist and must not be the album itself or one of its descendants.
func (r *Repository) UpdateAlbum(id string, upd AlbumUpdate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var album entities.Album
		if err := tx.First(&album, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("album %s: %w", id, database.ErrNotFound)
			}
			return err
		}

		updates := map[string]interface{}{"updated_at": time.Now()}

		if upd.Name != nil {
			updates["name"] = *upd.Name
		}
		if upd.Description != nil {
			updates["description"] = *upd.Description
		}

		if upd.ClearCover {
			updates["cover_asset_id"] = nil
		} else if upd.CoverAssetID != nil {
			if err := validateCover(tx, id, *upd.CoverAssetID); err != nil {
				return err
			}
			updates["cover_asset_id"] = *upd.CoverAssetID
		}

		if upd.MakeTopLevel {
			updates["parent_album_id"] = nil
		} else if upd.ParentAlbumID != nil {
			if err := validateReparent(tx, id, *upd.ParentAlbumID); err != nil {
				return err
			}
			updates["parent_album_id"] = *upd.ParentAlbumID
		}

		return tx.Model(&entities.Album{}).Where("id = ?", id).Updates(updates).Error
	})
}

// DeleteAlbum removes the album, every album below it, and all assets
// owned by that set. The whole subtree goes in one transaction so an
// interrupted delete never leaves orphaned rows behind.
func (r *Repository) DeleteAlbum(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		exists, err := albumExists(tx, id)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("album %s: %w", id, database.ErrNotFound)
		}

		subIDs, err := stats.SubAlbumIDs(tx, id)
		if err != nil {
			return err
		}
		all := append(subIDs, id)

		if err := tx.Where("album_id IN ?", all).Delete(&entities.Asset{}).Error; err != nil {
			return fmt.Errorf("failed to delete assets of album %s: %w", id, err)
		}
		if err := tx.Where("id IN ?", all).Delete(&entities.Album{}).Error; err != nil {
			return fmt.Errorf("failed to delete album %s: %w", id, err)
		}
		return nil
	})
}

func albumExists(tx *gorm.DB, id string) (bool, error) {
	var count int64
	err := tx.Model(&entities.Album{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check album %s: %w", id, err)
	}
	return count > 0, nil
}

// validateCover enforces that the cover asset is owned directly by the album.
func validateCover(tx *gorm.DB, albumID, assetID string) error {
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
	return nil
}

// validateReparent enforces that the new parent exists and is not inside
// the album's own subtree, which would detach a cycle from the tree.
func validateReparent(tx *gorm.DB, albumID, newParentID string) error {
	if newParentID == albumID {
		return fmt.Errorf("album %s cannot be its own parent: %w", albumID, database.ErrInvalidReference)
	}

	exists, err := albumExists(tx, newParentID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("parent album %s: %w", newParentID, database.ErrNotFound)
	}

	subIDs, err := stats.SubAlbumIDs(tx, albumID)
	if err != nil {
		return err
	}
	for _, subID := range subIDs {
		if subID == newParentID {
			return fmt.Errorf("album %s is a descendant of %s: %w", newParentID, albumID, database.ErrInvalidReference)
		}
	}
	return nil
}
