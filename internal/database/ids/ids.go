// Package ids generates primary keys for new album and asset rows.
//
// Identifiers are random UUIDs, so collisions are vanishingly rare, but
// the write path never assumes global uniqueness: inserts go through
// InsertWithRetry, which regenerates the identifier on a duplicate-key
// error instead of ever overwriting a sibling row.
package ids

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dkasyanov/shoebox/internal/database"
)

// MaxInsertAttempts bounds the collision retry loop.
const MaxInsertAttempts = 3

// NewID returns a new globally unique identifier.
func NewID() string {
	return uuid.NewString()
}

// InsertWithRetry runs insert with a fresh identifier until it succeeds,
// fails with a non-collision error, or the attempt budget is exhausted.
// Requires the connection to be opened with TranslateError so duplicate
// keys surface as gorm.ErrDuplicatedKey.
func InsertWithRetry(insert func(id string) error) error {
	var err error
	for attempt := 0; attempt < MaxInsertAttempts; attempt++ {
		err = insert(NewID())
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	return fmt.Errorf("%w after %d attempts: %v", database.ErrCollision, MaxInsertAttempts, err)
}
