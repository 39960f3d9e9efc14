package supabase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/lfs-pipeline/internal/domain/models"
)

type fakeClient struct {
	table, onConflict string
	rows              any
	err               error
}

func (f *fakeClient) Upsert(_ context.Context, table, onConflict string, rows any) error {
	f.table, f.onConflict, f.rows = table, onConflict, rows
	return f.err
}

func TestUpsertLabourForce(t *testing.T) {
	fc := &fakeClient{}
	repo := NewSupabaseRepository(fc, "malaysia_labour_force", nil)
	rows := []models.LabourForceRow{{Date: "2024-01-01", LF: 100}}

	require.NoError(t, repo.UpsertLabourForce(context.Background(), rows))
	assert.Equal(t, "malaysia_labour_force", fc.table)
	assert.Equal(t, "date", fc.onConflict)
	assert.Equal(t, rows, fc.rows)
}

func TestUpsertLabourForce_WrapsClientError(t *testing.T) {
	boom := errors.New("boom")
	repo := NewSupabaseRepository(&fakeClient{err: boom}, "t", nil)

	err := repo.UpsertLabourForce(context.Background(), []models.LabourForceRow{{Date: "2024-01-01"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
}
