package generator

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/supby/zclext/internal/configuration"
	"github.com/supby/zclext/internal/layout"
	"github.com/supby/zclext/internal/logger"
)

var ErrGeneratorFailed = errors.New("generator failed")

type runner struct {
	repo   layout.Repo
	config configuration.GeneratorConfiguration
	logger logger.Logger
}

func NewRunner(repo layout.Repo, config configuration.GeneratorConfiguration, log logger.Logger) Runner {
	return &runner{
		repo:   repo,
		config: config,
		logger: log,
	}
}

func (r *runner) GenerateAppCommon(ctx context.Context) error {
	return r.run(ctx, layout.ControllerZap, "-t", layout.AppCommonTemplates, "-o", layout.AppCommonOutput)
}

func (r *runner) GenerateFromZap(ctx context.Context, zapFile string) error {
	rel, err := RelativeToRepo(r.repo.Root, zapFile)
	if err != nil {
		return err
	}
	return r.run(ctx, rel)
}

// RelativeToRepo expresses zapFile relative to root, which is how generate.py expects it.
func RelativeToRepo(root, zapFile string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", root)
	}
	absZap, err := filepath.Abs(zapFile)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", zapFile)
	}

	rel, err := filepath.Rel(absRoot, absZap)
	if err != nil {
		return "", errors.Wrapf(err, "%s is not reachable from %s", zapFile, root)
	}
	return filepath.ToSlash(rel), nil
}

func (r *runner) command(ctx context.Context, args []string) *exec.Cmd {
	script := r.repo.Generator(r.config.Script)
	if r.config.Interpreter != "" {
		return exec.CommandContext(ctx, r.config.Interpreter, append([]string{script}, args...)...)
	}
	return exec.CommandContext(ctx, script, args...)
}

func (r *runner) run(ctx context.Context, args ...string) error {
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	cmd := r.command(ctx, args)
	cmd.Dir = r.repo.Root
	cmd.Stdout = r.logger.GetWriter()
	cmd.Stderr = r.logger.GetWriter()

	commandLine := strings.Join(cmd.Args, " ")
	r.logger.Info("Running %s", commandLine)

	err := cmd.Run()
	if err == nil {
		return nil
	}

	if ctx.Err() != nil {
		return errors.Wrapf(ctx.Err(), "%s", commandLine)
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return errors.Wrapf(err, "starting %s", commandLine)
	}

	if r.config.IgnoreFailures {
		r.logger.Warn("%s: %v, continuing", commandLine, exitErr)
		return nil
	}

	return errors.Wrapf(ErrGeneratorFailed, "%s: %v", commandLine, exitErr)
}
