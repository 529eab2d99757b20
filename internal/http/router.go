package http

import (
	"github.com/gin-gonic/gin"

	"github.com/dkasyanov/shoebox/internal/database"
)

// RouterConfig carries the dependencies of the HTTP surface. The router
// does no domain validation beyond request decoding; field limits are the
// responsibility of the calling client.
type RouterConfig struct {
	DB            *database.Database
	AlbumStore    AlbumStore
	AssetStore    AssetStore
	SettingsStore SettingsStore
	Version       string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	healthController := NewHealthController(cfg.DB, cfg.Version)
	albumsController := NewAlbumsController(cfg.AlbumStore)
	assetsController := NewAssetsController(cfg.AssetStore)
	settingsController := NewSettingsController(cfg.SettingsStore)

	router.GET("/api/health", healthController.Status)

	router.POST("/api/albums", albumsController.CreateAlbum)
	router.GET("/api/albums", albumsController.ListTopLevelAlbums)
	router.GET("/api/albums/:id", albumsController.GetAlbum)
	router.PATCH("/api/albums/:id", albumsController.UpdateAlbum)
	router.DELETE("/api/albums/:id", albumsController.DeleteAlbum)

	router.POST("/api/albums/:id/assets", assetsController.InsertAssets)
	router.GET("/api/albums/:id/assets", assetsController.ListAssets)
	router.PUT("/api/albums/:id/assets/order", assetsController.UpdateAssetOrder)
	router.PUT("/api/albums/:id/cover", assetsController.SetAlbumCover)

	router.PATCH("/api/assets/:id", assetsController.UpdateAsset)
	router.DELETE("/api/assets/:id", assetsController.DeleteAsset)

	router.GET("/api/settings", settingsController.GetSettings)
	router.PATCH("/api/settings", settingsController.UpdateSettings)

	return router
}
