package sheets

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/lfs-pipeline/internal/domain/models"
)

type memoryRepo struct {
	values  [][]interface{}
	readErr error
	writes  int
}

func (m *memoryRepo) ReadRange(_ context.Context, _ string) ([][]interface{}, error) {
	return m.values, m.readErr
}

func (m *memoryRepo) WriteRange(_ context.Context, _ string, values [][]interface{}) error {
	m.writes++
	m.values = values
	return nil
}

func TestUpsertLabourForce_EmptySheet(t *testing.T) {
	repo := &memoryRepo{}
	sheet := NewLabourForceSheet(repo, "LabourForce!A:H")

	rows := []models.LabourForceRow{{Date: "2024-01-01", LF: 100}}
	require.NoError(t, sheet.UpsertLabourForce(context.Background(), rows))

	require.Len(t, repo.values, 2)
	assert.Equal(t, "date", repo.values[0][0])
	assert.Equal(t, rows[0].Values(), repo.values[1])
	assert.Equal(t, 1, repo.writes)
}

func TestUpsertLabourForce_ReplacesMatchingDates(t *testing.T) {
	repo := &memoryRepo{values: [][]interface{}{
		{"date", "lf", "lf_employed", "lf_unemployed", "lf_outside", "u_rate", "p_rate", "ep_ratio"},
		{"2023-12-01", "99", "89", "10", "5", "10", "50", "90"},
		{"2024-01-01", "1", "1", "1", "1", "1", "1", "1"},
	}}
	sheet := NewLabourForceSheet(repo, "LabourForce!A:H")

	rows := []models.LabourForceRow{
		{Date: "2024-01-01", LF: 100},
		{Date: "2024-02-01", LF: 101},
	}
	require.NoError(t, sheet.UpsertLabourForce(context.Background(), rows))

	require.Len(t, repo.values, 4)
	assert.Equal(t, "2023-12-01", repo.values[1][0])
	assert.Equal(t, rows[0].Values(), repo.values[2])
	assert.Equal(t, rows[1].Values(), repo.values[3])
}

func TestUpsertLabourForce_IsIdempotent(t *testing.T) {
	repo := &memoryRepo{}
	sheet := NewLabourForceSheet(repo, "LabourForce!A:H")
	rows := []models.LabourForceRow{{Date: "2024-01-01", LF: 100}, {Date: "2024-02-01", LF: 101}}

	require.NoError(t, sheet.UpsertLabourForce(context.Background(), rows))
	first := repo.values
	require.NoError(t, sheet.UpsertLabourForce(context.Background(), rows))

	assert.Equal(t, first, repo.values)
}

func TestUpsertLabourForce_ReadError(t *testing.T) {
	boom := errors.New("quota exceeded")
	repo := &memoryRepo{readErr: boom}
	sheet := NewLabourForceSheet(repo, "LabourForce!A:H")

	err := sheet.UpsertLabourForce(context.Background(), []models.LabourForceRow{{Date: "2024-01-01"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Zero(t, repo.writes)
}
