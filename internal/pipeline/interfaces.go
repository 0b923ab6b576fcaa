package pipeline

import (
	"context"

	"github.com/supby/zclext/internal/types"
)

// Installer integrates a cluster extension into a Matter tree.
type Installer interface {
	SubscribeOnStepStarted(callback func(e types.StepEvent))
	SubscribeOnStepFinished(callback func(e types.StepEvent))

	// Install runs every step in order and stops at the first failure.
	Install(ctx context.Context) (types.RunReport, error)
	// PatchZapFile only splices the cluster descriptor into the ZAP document.
	PatchZapFile(ctx context.Context) (types.RunReport, error)
}
