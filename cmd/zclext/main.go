package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/supby/zclext/internal/configuration"
	"github.com/supby/zclext/internal/db"
	"github.com/supby/zclext/internal/generator"
	"github.com/supby/zclext/internal/layout"
	"github.com/supby/zclext/internal/logger"
	"github.com/supby/zclext/internal/mqtt"
	"github.com/supby/zclext/internal/pipeline"
	"github.com/supby/zclext/internal/types"
)

var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configFile string
	zapFile    string
	matterRepo string
	logLevel   string
	journalDir string
}

func run(ctx context.Context, out io.Writer, args []string) error {
	root := newRootCommand(out)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCommand(out io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "zclext",
		Short: "Install a vendor cluster extension into a Matter tree's ZAP pipeline",
		Long: "zclext copies a cluster extension's XML and server implementation into a Matter tree,\n" +
			"registers them in zcl.json and zap_cluster_list.json, adds the cluster to the root\n" +
			"endpoint of a .zap document and runs the ZAP generator.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstaller(cmd.Context(), out, opts, func(ctx context.Context, inst pipeline.Installer) (types.RunReport, error) {
				return inst.Install(ctx)
			})
		},
	}
	root.SetOut(out)
	root.SetErr(out)

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configFile, "config", "c", "./zclext.yaml", "path to config file")
	pf.StringVar(&opts.logLevel, "log-level", "", "error, warn, info or debug")
	pf.StringVar(&opts.journalDir, "journal-dir", "", "directory of the run journal; no journal when empty")

	addTargetFlags(root, opts)

	patch := &cobra.Command{
		Use:   "patch-zap",
		Short: "Only add the cluster to the .zap document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstaller(cmd.Context(), out, opts, func(ctx context.Context, inst pipeline.Installer) (types.RunReport, error) {
				return inst.PatchZapFile(ctx)
			})
		},
	}
	addTargetFlags(patch, opts)

	root.AddCommand(patch, newHistoryCommand(out, opts), newVersionCommand(out))

	return root
}

func addTargetFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVar(&opts.zapFile, "zap-file-path", "", "the .zap file to add the cluster to")
	cmd.Flags().StringVar(&opts.matterRepo, "matter-repo", "", "root of the Matter tree (default: working directory)")
}

// loadConfiguration layers flags over the configuration file and environment.
func loadConfiguration(opts *options) (configuration.Configuration, error) {
	configService, err := configuration.Init(opts.configFile)
	if err != nil {
		return configuration.Configuration{}, err
	}

	cfg := configService.GetConfiguration()
	if opts.zapFile != "" {
		cfg.ZapFile = opts.zapFile
	}
	if opts.matterRepo != "" {
		cfg.MatterRepo = opts.matterRepo
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.journalDir != "" {
		cfg.Journal.Dir = opts.journalDir
	}

	if cfg.MatterRepo == "" {
		wd, err := os.Getwd()
		if err != nil {
			return configuration.Configuration{}, errors.Wrap(err, "resolving working directory")
		}
		cfg.MatterRepo = wd
	}

	if err := configService.Update(cfg); err != nil {
		return configuration.Configuration{}, err
	}

	return configService.GetConfiguration(), nil
}

func runInstaller(ctx context.Context, out io.Writer, opts *options,
	execute func(ctx context.Context, inst pipeline.Installer) (types.RunReport, error)) error {
	cfg, err := loadConfiguration(opts)
	if err != nil {
		return err
	}

	level := logger.ParseLevel(cfg.LogLevel)
	log := logger.NewLogger(out, "[main]", level)

	var journal db.RunJournal
	if cfg.Journal.Dir != "" {
		journal, err = db.NewRunJournal(cfg.Journal.Dir, db.RunJournalOptions{
			Logger: logger.NewLogger(out, "[journal]", level),
		})
		if err != nil {
			return err
		}
		defer journal.Close(ctx)
	}

	progress := newProgressPublisher(cfg, out, level, log)

	gen := generator.NewRunner(layout.Repo{Root: cfg.MatterRepo}, cfg.Generator, logger.NewLogger(out, "[generator]", level))
	inst := pipeline.NewInstaller(cfg, gen, logger.NewLogger(out, "[pipeline]", level))

	setupSubscriptions(inst, progress)

	report, runErr := execute(ctx, inst)

	progress.PublishRun(report)
	if journal != nil {
		if err := journal.SaveRun(context.Background(), report); err != nil {
			log.Warn("Failed to save run %s: %v", report.ID, err)
		}
	}

	if runErr != nil {
		return runErr
	}

	log.Info("Run %s finished: %s", report.ID, report.Status)
	return nil
}

// newProgressPublisher connects to the configured broker. Progress is optional, so a broker
// that cannot be reached only costs a warning.
func newProgressPublisher(cfg configuration.Configuration, out io.Writer, level int, log logger.Logger) mqtt.ProgressPublisher {
	mqttLogger := logger.NewLogger(out, "[MQTT Client]", level)

	if cfg.MqttConfiguration.Address == "" {
		return mqtt.NewProgressPublisher(nil, mqttLogger)
	}

	client, err := mqtt.NewClient(cfg.MqttConfiguration, uuid.New().String()[:8], mqttLogger)
	if err != nil {
		log.Warn("Progress will not be published: %v", err)
		return mqtt.NewProgressPublisher(nil, mqttLogger)
	}

	return &disposingPublisher{ProgressPublisher: mqtt.NewProgressPublisher(client, mqttLogger), client: client}
}

// disposingPublisher disconnects once the final run report is out.
type disposingPublisher struct {
	mqtt.ProgressPublisher
	client mqtt.MqttClient
}

func (p *disposingPublisher) PublishRun(r types.RunReport) {
	p.ProgressPublisher.PublishRun(r)
	p.client.Dispose()
}

func setupSubscriptions(inst pipeline.Installer, progress mqtt.ProgressPublisher) {
	inst.SubscribeOnStepStarted(func(e types.StepEvent) {
		progress.PublishStep(e)
	})
	inst.SubscribeOnStepFinished(func(e types.StepEvent) {
		progress.PublishStep(e)
	})
}
