package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkasyanov/shoebox/internal/database/albums"
	"github.com/dkasyanov/shoebox/internal/entities"
)

// AlbumStore defines database operations for album management.
type AlbumStore interface {
	CreateAlbum(name, description string, parentAlbumID *string) (*entities.Album, error)
	GetAlbumByID(id string) (*albums.AlbumDetail, error)
	GetTopLevelAlbums() ([]albums.AlbumSummary, error)
	UpdateAlbum(id string, upd albums.AlbumUpdate) error
	DeleteAlbum(id string) error
}

type AlbumsController struct {
	store AlbumStore
}

func NewAlbumsController(store AlbumStore) *AlbumsController {
	return &AlbumsController{store: store}
}

type createAlbumRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	ParentAlbumID *string `json:"parent_album_id"`
}

type updateAlbumRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	CoverAssetID  *string `json:"cover_asset_id"`
	ClearCover    bool    `json:"clear_cover"`
	ParentAlbumID *string `json:"parent_album_id"`
	MakeTopLevel  bool    `json:"make_top_level"`
}

// CreateAlbum creates a new album, optionally under a parent.
// POST /api/albums
func (ac *AlbumsController) CreateAlbum(c *gin.Context) {
	var req createAlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	album, err := ac.store.CreateAlbum(req.Name, req.Description, req.ParentAlbumID)
	if err != nil {
		respondStoreError(c, err, "create album")
		return
	}

	c.JSON(http.StatusCreated, album)
}

// ListTopLevelAlbums returns the albums without a parent, with recursive
// asset counts.
// GET /api/albums
func (ac *AlbumsController) ListTopLevelAlbums(c *gin.Context) {
	summaries, err := ac.store.GetTopLevelAlbums()
	if err != nil {
		respondInternalError(c, err, "list albums")
		return
	}

	c.JSON(http.StatusOK, gin.H{"albums": summaries, "total": len(summaries)})
}

// GetAlbum returns one album with its assets and direct children.
// GET /api/albums/:id
func (ac *AlbumsController) GetAlbum(c *gin.Context) {
	detail, err := ac.store.GetAlbumByID(c.Param("id"))
	if err != nil {
		respondInternalError(c, err, "fetch album")
		return
	}
	if detail == nil {
		respondNotFound(c, "album")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// UpdateAlbum applies a partial album update.
// PATCH /api/albums/:id
func (ac *AlbumsController) UpdateAlbum(c *gin.Context) {
	var req updateAlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	upd := albums.AlbumUpdate{
		Name:          req.Name,
		Description:   req.Description,
		CoverAssetID:  req.CoverAssetID,
		ClearCover:    req.ClearCover,
		ParentAlbumID: req.ParentAlbumID,
		MakeTopLevel:  req.MakeTopLevel,
	}
	if err := ac.store.UpdateAlbum(c.Param("id"), upd); err != nil {
		respondStoreError(c, err, "update album")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "album updated"})
}

// DeleteAlbum removes an album and its whole subtree.
// DELETE /api/albums/:id
func (ac *AlbumsController) DeleteAlbum(c *gin.Context) {
	if err := ac.store.DeleteAlbum(c.Param("id")); err != nil {
		respondStoreError(c, err, "delete album")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "album deleted"})
}
