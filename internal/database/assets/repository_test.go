package assets

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dkasyanov/shoebox/internal/database"
	"github.com/dkasyanov/shoebox/internal/database/albums"
	"github.com/dkasyanov/shoebox/internal/database/ids"
	"github.com/dkasyanov/shoebox/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *albums.Repository, func()) {
	dbPath := "./test_assets_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Album{},
		&entities.Asset{},
	)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return NewRepository(db), albums.NewRepository(db), cleanup
}

func photo(mediaID string) NewAsset {
	return NewAsset{
		MediaID:   mediaID,
		MediaType: entities.MediaTypePhoto,
		URI:       "file:///photos/" + mediaID + ".jpg",
		Width:     640,
		Height:    480,
	}
}

func TestRepository_InsertAssets_AppendsInOrder(t *testing.T) {
	repo, albumsRepo, cleanup := setupTestDB(t)
	defer cleanup()

	album, err := albumsRepo.CreateAlbum("Trip", "", nil)
	require.NoError(t, err)

	first, err := repo.InsertAssets(album.ID, []NewAsset{photo("a"), photo("b")})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, 0, first[0].OrderIndex)
	assert.Equal(t, 1, first[1].OrderIndex)
	assert.Equal(t, "a", first[0].MediaID)
	assert.Equal(t, "b", first[1].MediaID)

	// A later batch lands after the current maximum
	second, err := repo.InsertAssets(album.ID, []NewAsset{photo("c")})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 2, second[0].OrderIndex)
}

func TestRepository_InsertAssets_MissingAlbum(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.InsertAssets(ids.NewID(), []NewAsset{photo("a")})
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_InsertAssets_SameMediaInTwoAlbums(t *testing.T) {
	repo, albumsRepo, cleanup := setupTestDB(t)
	defer cleanup()

	one, err := albumsRepo.CreateAlbum("One", "", nil)
	require.NoError(t, err)
	two, err := albumsRepo.CreateAlbum("Two", "", nil)
	require.NoError(t, err)

	inOne, err := repo.InsertAssets(one.ID, []NewAsset{photo("shared")})
	require.NoError(t, err)
	inTwo, err := repo.InsertAssets(two.ID, []NewAsset{photo("shared")})
	require.NoError(t, err)

	// Same device media item, distinct rows
	assert.NotEqual(t, inOne[0].ID, inTwo[0].ID)
	assert.Equal(t, inOne[0].MediaID, inTwo[0].MediaID)
}

func TestRepository_GetAssetsByAlbum_Ordered(t *testing.T) {
	repo, albumsRepo, cleanup := setupTestDB(t)
	defer cleanup()

	album, err := albumsRepo.CreateAlbum("Trip", "", nil)
	require.NoError(t, err)

	created, err := repo.InsertAssets(album.ID, []NewAsset{photo("a"), photo("b"), photo("c")})
	require.NoError(t, err)

	listed, err := repo.GetAssetsByAlbum(album.ID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	for i := range created {
		assert.Equal(t, created[i].ID, listed[i].ID)
	}
}

func TestRepository_UpdateAsset_Caption(t *testing.T) {
	repo, albumsRepo, cleanup := setupTestDB(t)
	defer cleanup()

	album, err := albumsRepo.CreateAlbum("Trip", "", nil)
	require.NoError(t, err)
	created, err := repo.InsertAssets(album.ID, []NewAsset{photo("a")})
	require.NoError(t, err)

	caption := "sunset over the bay"
	require.NoError(t, repo.UpdateAsset(created[0].ID, AssetUpdate{Caption: &caption}))

	listed, err := repo.GetAssetsByAlbum(album.ID)
	require.NoError(t, err)
	assert.Equal(t, caption, listed[0].Caption)
}

func TestRepository_UpdateAsset_NotFound(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	caption := "x"
	err := repo.UpdateAsset(ids.NewID(), AssetUpdate{Caption: &caption})
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_DeleteAsset(t *testing.T) {
	repo, albumsRepo, cleanup := setupTestDB(t)
	defer cleanup()

	album, err := albumsRepo.CreateAlbum("Trip", "", nil)
	require.NoError(t, err)
	created, err := repo.InsertAssets(album.ID, []NewAsset{photo("a"), photo("b")})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteAsset(created[0].ID))

	listed, err := repo.GetAssetsByAlbum(album.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created[1].ID, listed[0].ID)

	err = repo.DeleteAsset(created[0].ID)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_DeleteAsset_ClearsAlbumCover(t *testing.T) {
	repo, albumsRepo, cleanup := setupTestDB(t)
	defer cleanup()

	album, err := albumsRepo.CreateAlbum("Trip", "", nil)
	require.NoError(t, err)
	created, err := repo.InsertAssets(album.ID, []NewAsset{photo("a")})
	require.NoError(t, err)

	require.NoError(t, repo.SetAlbumCover(album.ID, created[0].ID))
	require.NoError(t, repo.DeleteAsset(created[0].ID))

	detail, err := albumsRepo.GetAlbumByID(album.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.CoverAssetID)
}

func TestRepository_UpdateAssetOrder_Swap(t *testing.T) {
	repo, albumsRepo, cleanup := setupTestDB(t)
	defer cleanup()

	album, err := albumsRepo.CreateAlbum("Trip", "", nil)
	require.NoError(t, err)
	created, err := repo.InsertAssets(album.ID, []NewAsset{photo("a"), photo("b")})
	require.NoError(t, err)

	a, b := created[0], created[1]
	require.NoError(t, repo.UpdateAssetOrder(album.ID, []string{b.ID, a.ID}))

	listed, err := repo.GetAssetsByAlbum(album.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, b.ID, listed[0].ID)
	assert.Equal(t, a.ID, listed[1].ID)

	// Dense zero-based sequence after the reorder
	assert.Equal(t, 0, listed[0].OrderIndex)
	assert.Equal(t, 1, listed[1].OrderIndex)
}

func TestRepository_UpdateAssetOrder_SetMismatch(t *testing.T) {
	repo, albumsRepo, cleanup := setupTestDB(t)
	defer cleanup()

	album, err := albumsRepo.CreateAlbum("Trip", "", nil)
	require.NoError(t, err)
	created, err := repo.InsertAssets(album.ID, []NewAsset{photo("a"), photo("b")})
	require.NoError(t, err)

	a, b := created[0], created[1]

	// Subset
	err = repo.UpdateAssetOrder(album.ID, []string{a.ID})
	assert.ErrorIs(t, err, database.ErrInvalidReference)

	// Superset
	err = repo.UpdateAssetOrder(album.ID, []string{a.ID, b.ID, ids.NewID()})
	assert.ErrorIs(t, err, database.ErrInvalidReference)

	// Duplicate hiding a missing id
	err = repo.UpdateAssetOrder(album.ID, []string{a.ID, a.ID})
	assert.ErrorIs(t, err, database.ErrInvalidReference)

	// Existing ordering is untouched after the failures
	listed, err := repo.GetAssetsByAlbum(album.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, listed[0].ID)
	assert.Equal(t, b.ID, listed[1].ID)
}

func TestRepository_SetAlbumCover_ForeignAsset(t *testing.T) {
	repo, albumsRepo, cleanup := setupTestDB(t)
	defer cleanup()

	album, err := albumsRepo.CreateAlbum("Trip", "", nil)
	require.NoError(t, err)
	other, err := albumsRepo.CreateAlbum("Other", "", nil)
	require.NoError(t, err)
	foreign, err := repo.InsertAssets(other.ID, []NewAsset{photo("x")})
	require.NoError(t, err)

	err = repo.SetAlbumCover(album.ID, foreign[0].ID)
	assert.ErrorIs(t, err, database.ErrInvalidReference)

	detail, err := albumsRepo.GetAlbumByID(album.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.CoverAssetID)
}

func TestRepository_SetAlbumCover_MissingAlbum(t *testing.T) {
	repo, albumsRepo, cleanup := setupTestDB(t)
	defer cleanup()

	album, err := albumsRepo.CreateAlbum("Trip", "", nil)
	require.NoError(t, err)
	created, err := repo.InsertAssets(album.ID, []NewAsset{photo("a")})
	require.NoError(t, err)

	err = repo.SetAlbumCover(ids.NewID(), created[0].ID)
	assert.ErrorIs(t, err, database.ErrNotFound)
}
