package ids

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dkasyanov/shoebox/internal/database"
)

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		assert.Len(t, id, 36)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestInsertWithRetry_FirstAttemptSucceeds(t *testing.T) {
	var attempts int
	err := InsertWithRetry(func(id string) error {
		attempts++
		assert.NotEmpty(t, id)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestInsertWithRetry_RetriesOnCollision(t *testing.T) {
	var ids []string
	err := InsertWithRetry(func(id string) error {
		ids = append(ids, id)
		if len(ids) < 2 {
			return gorm.ErrDuplicatedKey
		}
		return nil
	})
	require.NoError(t, err)
	require.Len(t, ids, 2)
	// A fresh identifier is generated for every attempt
	assert.NotEqual(t, ids[0], ids[1])
}

func TestInsertWithRetry_ExhaustsBudget(t *testing.T) {
	var attempts int
	err := InsertWithRetry(func(id string) error {
		attempts++
		return gorm.ErrDuplicatedKey
	})
	assert.ErrorIs(t, err, database.ErrCollision)
	assert.Equal(t, MaxInsertAttempts, attempts)
}

func TestInsertWithRetry_PassesThroughOtherErrors(t *testing.T) {
	storageErr := errors.New("disk full")
	var attempts int
	err := InsertWithRetry(func(id string) error {
		attempts++
		return storageErr
	})
	assert.ErrorIs(t, err, storageErr)
	assert.Equal(t, 1, attempts)
}
