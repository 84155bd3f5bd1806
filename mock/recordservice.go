package mock

import (
	"context"

	"github.com/fwojciec/modelcat"
)

var _ modelcat.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of modelcat.RecordService.
type RecordService struct {
	CreateRunFn        func(ctx context.Context, source string) (string, error)
	CreateRecordFn     func(ctx context.Context, runID string, record *modelcat.Record) error
	FindRecordsByRunFn func(ctx context.Context, runID string) ([]*modelcat.Record, error)
}

func (s *RecordService) CreateRun(ctx context.Context, source string) (string, error) {
	return s.CreateRunFn(ctx, source)
}

func (s *RecordService) CreateRecord(ctx context.Context, runID string, record *modelcat.Record) error {
	return s.CreateRecordFn(ctx, runID, record)
}

func (s *RecordService) FindRecordsByRun(ctx context.Context, runID string) ([]*modelcat.Record, error) {
	return s.FindRecordsByRunFn(ctx, runID)
}
