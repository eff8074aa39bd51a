package postgres

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taiwoajasa245/verbum-dei-api/internal/database/dbtest"
	"github.com/taiwoajasa245/verbum-dei-api/internal/storage"
	"github.com/taiwoajasa245/verbum-dei-api/internal/storage/storagetest"
)

func TestStore(t *testing.T) {
	srv := dbtest.StartPostgres(t)
	ctx := context.Background()

	s, err := New(ctx, srv)
	require.NoError(t, err)

	// every subtest gets a clean namespace on the shared table
	n := 0
	storagetest.Run(t, func(t *testing.T) storage.Store {
		n++
		return storage.Prefixed(s, fmt.Sprintf("run-%d", n))
	})

	// schema creation is idempotent
	_, err = New(ctx, srv)
	require.NoError(t, err)
}
