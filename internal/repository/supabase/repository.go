package supabase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/lfs-pipeline/internal/domain/models"
	client "github.com/mamadbah2/lfs-pipeline/pkg/clients/supabase"
)

const conflictColumn = "date"

// SupabaseRepository upserts labour force rows through the Supabase REST API.
type SupabaseRepository struct {
	client client.Client
	table  string
	logger *zap.Logger
}

// NewSupabaseRepository wires the repository on top of a Supabase client.
func NewSupabaseRepository(c client.Client, table string, logger *zap.Logger) *SupabaseRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupabaseRepository{client: c, table: table, logger: logger}
}

// UpsertLabourForce writes all rows in one request, resolving conflicts on date.
func (r *SupabaseRepository) UpsertLabourForce(ctx context.Context, rows []models.LabourForceRow) error {
	if err := r.client.Upsert(ctx, r.table, conflictColumn, rows); err != nil {
		return fmt.Errorf("failed to upsert labour force rows: %w", err)
	}
	r.logger.Debug("rows upserted", zap.String("table", r.table), zap.Int("rows", len(rows)))
	return nil
}
