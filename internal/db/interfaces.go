package db

import (
	"context"

	"github.com/supby/zclext/internal/types"
)

// RunJournal keeps the report of every install run.
type RunJournal interface {
	SaveRun(ctx context.Context, run types.RunReport) error
	// GetRuns returns all runs, oldest first.
	GetRuns(ctx context.Context) ([]types.RunReport, error)
	GetRun(ctx context.Context, id string) (types.RunReport, error)
	DeleteRun(ctx context.Context, id string) error
	Close(ctx context.Context) error
}
