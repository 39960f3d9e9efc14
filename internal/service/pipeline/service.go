package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/mamadbah2/lfs-pipeline/internal/domain/models"
)

// Fetcher retrieves the raw catalogue payload.
type Fetcher interface {
	FetchDataset(ctx context.Context) (models.RawData, error)
}

// Transformer cleans the raw payload into rows.
type Transformer interface {
	Transform(raw models.RawData) ([]models.LabourForceRow, models.QualityReport, error)
}

// Loader persists the cleaned rows.
type Loader interface {
	Load(ctx context.Context, rows []models.LabourForceRow) error
}

// Service runs fetch, transform and load once, in that order.
type Service struct {
	fetcher     Fetcher
	transformer Transformer
	loader      Loader
	logger      *zap.Logger
}

// NewService wires a new pipeline instance.
func NewService(fetcher Fetcher, transformer Transformer, loader Loader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fetcher:     fetcher,
		transformer: transformer,
		loader:      loader,
		logger:      logger,
	}
}

// Run executes the pipeline. Failures are logged and reported through the
// returned Outcome instead of being propagated.
func (s *Service) Run(ctx context.Context) Outcome {
	raw, err := s.fetcher.FetchDataset(ctx)
	if err != nil {
		return s.fail(StatusFetchFailed, err, models.QualityReport{})
	}

	rows, report, err := s.transformer.Transform(raw)
	if err != nil {
		return s.fail(StatusTransformFailed, err, report)
	}

	if err := s.loader.Load(ctx, rows); err != nil {
		return s.fail(StatusLoadFailed, err, report)
	}

	s.logger.Info("pipeline succeeded",
		zap.Int("input", report.Input),
		zap.Int("dropped", report.Dropped),
		zap.Int("logic_errors", report.LogicErrors),
		zap.Int("boundary_errors", report.BoundaryErrors),
		zap.Int("loaded", len(rows)))

	return Outcome{Status: StatusSucceeded, Report: report, Loaded: len(rows)}
}

func (s *Service) fail(status Status, err error, report models.QualityReport) Outcome {
	s.logger.Error("pipeline failed", zap.String("status", string(status)), zap.Error(err))
	return Outcome{Status: status, Err: err, Report: report}
}
