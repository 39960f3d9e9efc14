package loader

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mamadbah2/lfs-pipeline/internal/domain/models"
)

type recordingRepo struct {
	calls [][]models.LabourForceRow
	err   error
}

func (r *recordingRepo) UpsertLabourForce(_ context.Context, rows []models.LabourForceRow) error {
	r.calls = append(r.calls, rows)
	return r.err
}

func TestLoad_SendsWholeBatchToEachSink(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	primary, mirror := &recordingRepo{}, &recordingRepo{}
	svc := NewService("malaysia_labour_force", []Sink{
		{Name: "supabase", Repo: primary},
		{Name: "postgres", Repo: mirror},
	}, zap.New(core))

	rows := []models.LabourForceRow{{Date: "2024-01-01"}, {Date: "2024-02-01"}}
	require.NoError(t, svc.Load(context.Background(), rows))

	require.Len(t, primary.calls, 1)
	assert.Equal(t, rows, primary.calls[0])
	require.Len(t, mirror.calls, 1)

	loading := logs.FilterMessage("loading rows").All()
	require.Len(t, loading, 1)
	assert.EqualValues(t, 2, loading[0].ContextMap()["rows"])
	assert.Equal(t, 1, logs.FilterMessage("upload settled").Len())
}

func TestLoad_StopsAtFirstFailure(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	boom := errors.New("invalid api key")
	primary, mirror := &recordingRepo{err: boom}, &recordingRepo{}
	svc := NewService("malaysia_labour_force", []Sink{
		{Name: "supabase", Repo: primary},
		{Name: "postgres", Repo: mirror},
	}, zap.New(core))

	err := svc.Load(context.Background(), []models.LabourForceRow{{Date: "2024-01-01"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "sink supabase")
	assert.Empty(t, mirror.calls)
	assert.Zero(t, logs.FilterMessage("upload settled").Len())
}

func TestLoad_EmptyBatch(t *testing.T) {
	repo := &recordingRepo{}
	svc := NewService("t", []Sink{{Name: "supabase", Repo: repo}}, nil)

	require.NoError(t, svc.Load(context.Background(), nil))
	assert.Empty(t, repo.calls)
}

func TestLoad_NoSinks(t *testing.T) {
	svc := NewService("t", nil, nil)
	require.Error(t, svc.Load(context.Background(), []models.LabourForceRow{{Date: "2024-01-01"}}))
}
