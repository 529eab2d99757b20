// Package stats computes recursive statistics over the album tree.
//
// Counts are computed on demand instead of being maintained as
// denormalized counters, trading read cost for write simplicity. The
// tree is traversed with an explicit worklist over an adjacency index
// built from a single table scan, so a deep hierarchy costs neither
// stack depth nor one query per level.
package stats

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/dkasyanov/shoebox/internal/entities"
)

// AssetCount holds per-media-type asset totals.
type AssetCount struct {
	Photo int64 `json:"photo"`
	Video int64 `json:"video"`
}

type albumLink struct {
	ID            string
	ParentAlbumID *string
}

// childIndex maps every album id to the ids of its direct children.
func childIndex(db *gorm.DB) (map[string][]string, error) {
	var links []albumLink
	err := db.Model(&entities.Album{}).
		Select("id", "parent_album_id").
		Order("created_at ASC, id ASC").
		Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("failed to scan album links: %w", err)
	}

	children := make(map[string][]string, len(links))
	for _, link := range links {
		if link.ParentAlbumID != nil {
			children[*link.ParentAlbumID] = append(children[*link.ParentAlbumID], link.ID)
		}
	}
	return children, nil
}

// descendants walks the adjacency index breadth-first from albumID. The
// tree is acyclic by construction, so the worklist always drains.
func descendants(children map[string][]string, albumID string) []string {
	var out []string
	queue := append([]string(nil), children[albumID]...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		out = append(out, id)
		queue = append(queue, children[id]...)
	}
	return out
}

// SubAlbumIDs returns the ids of every album below albumID, transitively.
// A leaf album yields an empty result. The helper takes the *gorm.DB so
// the cascading delete can run it inside its own transaction.
func SubAlbumIDs(db *gorm.DB, albumID string) ([]string, error) {
	children, err := childIndex(db)
	if err != nil {
		return nil, err
	}
	return descendants(children, albumID), nil
}

// TotalAssetCount sums the assets owned by albumID and by every album
// below it, split by media type.
func TotalAssetCount(db *gorm.DB, albumID string) (AssetCount, error) {
	counts, err := TotalAssetCounts(db, []string{albumID})
	if err != nil {
		return AssetCount{}, err
	}
	return counts[albumID], nil
}

// TotalAssetCounts is the batch form of TotalAssetCount: one album scan
// plus one grouped count query regardless of how many roots are asked for.
func TotalAssetCounts(db *gorm.DB, rootIDs []string) (map[string]AssetCount, error) {
	result := make(map[string]AssetCount, len(rootIDs))
	if len(rootIDs) == 0 {
		return result, nil
	}

	children, err := childIndex(db)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		AlbumID   string
		MediaType entities.MediaType
		Count     int64
	}
	err = db.Model(&entities.Asset{}).
		Select("album_id, media_type, COUNT(*) as count").
		Group("album_id").
		Group("media_type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count assets: %w", err)
	}

	direct := make(map[string]AssetCount, len(rows))
	for _, row := range rows {
		count := direct[row.AlbumID]
		switch row.MediaType {
		case entities.MediaTypeVideo:
			count.Video += row.Count
		default:
			count.Photo += row.Count
		}
		direct[row.AlbumID] = count
	}

	for _, rootID := range rootIDs {
		total := direct[rootID]
		for _, id := range descendants(children, rootID) {
			total.Photo += direct[id].Photo
			total.Video += direct[id].Video
		}
		result[rootID] = total
	}
	return result, nil
}

// Repository exposes the aggregate queries to collaborators that hold
// the engine directly.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new stats repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAllSubAlbumIDs returns the ids of all albums below albumID.
func (r *Repository) GetAllSubAlbumIDs(albumID string) ([]string, error) {
	return SubAlbumIDs(r.db, albumID)
}

// GetAlbumTotalAssetCount returns the recursive photo/video counts for albumID.
func (r *Repository) GetAlbumTotalAssetCount(albumID string) (AssetCount, error) {
	return TotalAssetCount(r.db, albumID)
}
