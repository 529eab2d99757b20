package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkasyanov/shoebox/internal/database/assets"
	"github.com/dkasyanov/shoebox/internal/entities"
)

// AssetStore defines database operations for asset management.
type AssetStore interface {
	InsertAssets(albumID string, newAssets []assets.NewAsset) ([]entities.Asset, error)
	GetAssetsByAlbum(albumID string) ([]entities.Asset, error)
	UpdateAsset(id string, upd assets.AssetUpdate) error
	DeleteAsset(id string) error
	UpdateAssetOrder(albumID string, orderedAssetIDs []string) error
	SetAlbumCover(albumID, assetID string) error
}

type AssetsController struct {
	store AssetStore
}

func NewAssetsController(store AssetStore) *AssetsController {
	return &AssetsController{store: store}
}

type insertAssetsRequest struct {
	Assets []assets.NewAsset `json:"assets" binding:"required"`
}

type updateAssetRequest struct {
	Caption *string `json:"caption"`
	URI     *string `json:"uri"`
	Width   *int    `json:"width"`
	Height  *int    `json:"height"`
}

type assetOrderRequest struct {
	AssetIDs []string `json:"asset_ids" binding:"required"`
}

type setCoverRequest struct {
	AssetID string `json:"asset_id" binding:"required"`
}

// InsertAssets appends a batch of assets to an album.
// POST /api/albums/:id/assets
func (ac *AssetsController) InsertAssets(c *gin.Context) {
	var req insertAssetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	created, err := ac.store.InsertAssets(c.Param("id"), req.Assets)
	if err != nil {
		respondStoreError(c, err, "insert assets")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"assets": created, "total": len(created)})
}

// ListAssets returns an album's assets in display order.
// GET /api/albums/:id/assets
func (ac *AssetsController) ListAssets(c *gin.Context) {
	items, err := ac.store.GetAssetsByAlbum(c.Param("id"))
	if err != nil {
		respondInternalError(c, err, "list assets")
		return
	}

	c.JSON(http.StatusOK, gin.H{"assets": items, "total": len(items)})
}

// UpdateAsset applies a partial caption/metadata update.
// PATCH /api/assets/:id
func (ac *AssetsController) UpdateAsset(c *gin.Context) {
	var req updateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	upd := assets.AssetUpdate{
		Caption: req.Caption,
		URI:     req.URI,
		Width:   req.Width,
		Height:  req.Height,
	}
	if err := ac.store.UpdateAsset(c.Param("id"), upd); err != nil {
		respondStoreError(c, err, "update asset")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "asset updated"})
}

// DeleteAsset removes an asset, clearing the album cover when it pointed
// at the removed asset.
// DELETE /api/assets/:id
func (ac *AssetsController) DeleteAsset(c *gin.Context) {
	if err := ac.store.DeleteAsset(c.Param("id")); err != nil {
		respondStoreError(c, err, "delete asset")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "asset deleted"})
}

// UpdateAssetOrder replaces an album's display order.
// PUT /api/albums/:id/assets/order
func (ac *AssetsController) UpdateAssetOrder(c *gin.Context) {
	var req assetOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := ac.store.UpdateAssetOrder(c.Param("id"), req.AssetIDs); err != nil {
		respondStoreError(c, err, "reorder assets")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "order updated"})
}

// SetAlbumCover points the album's cover at one of its assets.
// PUT /api/albums/:id/cover
func (ac *AssetsController) SetAlbumCover(c *gin.Context) {
	var req setCoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := ac.store.SetAlbumCover(c.Param("id"), req.AssetID); err != nil {
		respondStoreError(c, err, "set album cover")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "cover updated"})
}
