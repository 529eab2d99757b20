package entities

import (
	"time"
)

type MediaType string

const (
	MediaTypePhoto MediaType = "photo"
	MediaTypeVideo MediaType = "video"
)

// Album is a node in the album tree. A null ParentAlbumID marks a
// top-level album; CoverAssetID, when set, must reference an asset
// owned directly by this album.
type Album struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Name          string    `gorm:"size:50;not null" json:"name"`
	Description   string    `gorm:"size:200" json:"description,omitempty"`
	ParentAlbumID *string   `gorm:"index;size:36" json:"parent_album_id,omitempty"`
	CoverAssetID  *string   `gorm:"size:36" json:"cover_asset_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Album) TableName() string {
	return "albums"
}

// Asset is a media item placed in exactly one album. MediaID identifies
// the underlying device media item; it is opaque and may repeat across
// albums when the same item is added to several of them. Width, height
// and URI are copied at insertion time and never re-synced.
type Asset struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	MediaID    string    `gorm:"index;size:256;not null" json:"media_id"`
	AlbumID    string    `gorm:"index;size:36;not null" json:"album_id"`
	MediaType  MediaType `gorm:"size:10;not null" json:"media_type"`
	URI        string    `gorm:"size:2048" json:"uri"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Caption    string    `gorm:"type:text" json:"caption,omitempty"`
	OrderIndex int       `gorm:"not null" json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Asset) TableName() string {
	return "assets"
}
