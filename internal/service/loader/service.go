package loader

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/lfs-pipeline/internal/domain/models"
)

// Repository is implemented by every persistence backend able to upsert rows keyed by date.
type Repository interface {
	UpsertLabourForce(ctx context.Context, rows []models.LabourForceRow) error
}

// Sink pairs a repository with the name used in logs and errors.
type Sink struct {
	Name string
	Repo Repository
}

// Service uploads transformed rows to every configured sink.
type Service struct {
	sinks  []Sink
	table  string
	logger *zap.Logger
}

// NewService wires a new loader. table is only used for diagnostics.
func NewService(table string, sinks []Sink, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{sinks: sinks, table: table, logger: logger}
}

// Load sends the full batch to each sink in turn. The first failure aborts the
// load; rows are trusted as-is.
func (s *Service) Load(ctx context.Context, rows []models.LabourForceRow) error {
	if len(s.sinks) == 0 {
		return errors.New("no sinks configured")
	}

	s.logger.Info("loading rows", zap.Int("rows", len(rows)), zap.String("table", s.table))

	if len(rows) == 0 {
		s.logger.Info("nothing to upload")
		return nil
	}

	for _, sink := range s.sinks {
		if err := sink.Repo.UpsertLabourForce(ctx, rows); err != nil {
			return fmt.Errorf("sink %s: %w", sink.Name, err)
		}
		s.logger.Debug("sink upserted", zap.String("sink", sink.Name), zap.Int("rows", len(rows)))
	}

	s.logger.Info("upload settled", zap.Int("rows", len(rows)), zap.Int("sinks", len(s.sinks)))
	return nil
}
