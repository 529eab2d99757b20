// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, idempotent schema initialization
//	├── errors.go        # Shared store error taxonomy
//	├── ids/             # Identifier generation and collision retry
//	├── albums/          # Album tree CRUD and cascading delete
//	├── assets/          # Ordered asset CRUD, reordering, cover linkage
//	├── stats/           # Recursive asset counts over the album tree
//	└── settings/        # Single-row user preferences
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./shoebox.db")
//
//	// Create domain-specific repositories
//	albumsRepo := albums.NewRepository(db.DB)
//	assetsRepo := assets.NewRepository(db.DB)
//
//	// Use repositories
//	album, err := albumsRepo.GetAlbumByID(id)
//	items, err := assetsRepo.GetAssetsByAlbum(album.ID)
//
// # Error Handling
//
// Repositories return the sentinel errors declared in errors.go wrapped
// with context. Callers classify them with errors.Is:
//
//	if errors.Is(err, database.ErrNotFound) { ... }
//
// Multi-statement operations (cascading delete, batch insertion,
// reordering, cover updates) run inside a single gorm transaction so a
// failure mid-operation leaves the store exactly as it was.
package database
