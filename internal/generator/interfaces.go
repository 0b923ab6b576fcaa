package generator

import "context"

// Runner invokes the Matter tree's ZAP generator.
type Runner interface {
	// GenerateAppCommon regenerates zzz_generated/app-common from the controller clusters document.
	GenerateAppCommon(ctx context.Context) error
	// GenerateFromZap regenerates the output of one application's .zap document.
	GenerateFromZap(ctx context.Context, zapFile string) error
}
