package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shimmeringbee/zcl"
	"github.com/shimmeringbee/zigbee"

	"github.com/supby/zclext/internal/configuration"
	"github.com/supby/zclext/internal/generator"
	"github.com/supby/zclext/internal/jsondoc"
	"github.com/supby/zclext/internal/layout"
	"github.com/supby/zclext/internal/logger"
	"github.com/supby/zclext/internal/manifest"
	"github.com/supby/zclext/internal/types"
	"github.com/supby/zclext/internal/utils"
	"github.com/supby/zclext/internal/zap"
	"github.com/supby/zclext/internal/zcldef"
)

var ErrMissingZAPFile = errors.New("ZAP file not found")

type installer struct {
	config    configuration.Configuration
	repo      layout.Repo
	generator generator.Runner
	logger    logger.Logger

	onStepStarted  func(e types.StepEvent)
	onStepFinished func(e types.StepEvent)

	// clusterName is filled in once the cluster XML has been parsed.
	clusterName string
}

func NewInstaller(config configuration.Configuration, gen generator.Runner, log logger.Logger) Installer {
	return &installer{
		config:    config,
		repo:      layout.Repo{Root: config.MatterRepo},
		generator: gen,
		logger:    log,
	}
}

func (i *installer) SubscribeOnStepStarted(callback func(e types.StepEvent)) {
	i.onStepStarted = callback
}

func (i *installer) SubscribeOnStepFinished(callback func(e types.StepEvent)) {
	i.onStepFinished = callback
}

func (i *installer) clusterXMLPath() string {
	return filepath.Join(i.config.Extension.PayloadDir, i.config.Extension.ClusterXML)
}

func (i *installer) implementationPath() string {
	return filepath.Join(i.config.Extension.PayloadDir, i.config.Extension.ImplementationFile)
}

func (i *installer) Install(ctx context.Context) (types.RunReport, error) {
	skipGenerator := i.config.Generator.Skip

	return i.execute(ctx, []step{
		{name: StepValidateInput, run: func() error {
			return i.validateInput(i.clusterXMLPath(), i.implementationPath())
		}},
		{name: StepCopyClusterXML, run: i.copyClusterXML},
		{name: StepUpdateZclJSON, run: i.updateZclJSON},
		{name: StepGenerateAppCommon, skip: skipGenerator, run: func() error {
			return i.generator.GenerateAppCommon(ctx)
		}},
		{name: StepUpdateClusterList, run: i.updateClusterList},
		{name: StepCopyImplementation, run: i.copyImplementation},
		{name: StepPatchZapFile, run: i.patchZapFile},
		{name: StepGenerateZapFile, skip: skipGenerator, run: func() error {
			return i.generator.GenerateFromZap(ctx, i.config.ZapFile)
		}},
	})
}

func (i *installer) PatchZapFile(ctx context.Context) (types.RunReport, error) {
	return i.execute(ctx, []step{
		{name: StepValidateInput, run: func() error {
			return i.validateInput(i.clusterXMLPath())
		}},
		{name: StepPatchZapFile, run: i.patchZapFile},
	})
}

func (i *installer) execute(ctx context.Context, steps []step) (types.RunReport, error) {
	report := types.RunReport{
		ID:         uuid.New().String(),
		MatterRepo: i.config.MatterRepo,
		ZapFile:    i.config.ZapFile,
		Started:    time.Now().UTC(),
		Status:     types.RunRunning,
	}

	emit := func(name string, status types.StepStatus, err error) {
		e := types.StepEvent{
			RunID:  report.ID,
			Step:   name,
			Status: status,
			Time:   time.Now().UTC(),
		}
		if err != nil {
			e.Error = err.Error()
		}
		report.Steps = append(report.Steps, e)

		if status == types.StepStarted {
			if i.onStepStarted != nil {
				i.onStepStarted(e)
			}
			return
		}
		if i.onStepFinished != nil {
			i.onStepFinished(e)
		}
	}

	fail := func(name string, err error) (types.RunReport, error) {
		err = errors.Wrapf(err, "step %s", name)
		emit(name, types.StepFailed, err)
		report.Status = types.RunFailed
		report.Error = err.Error()
		report.ClusterName = i.clusterName
		report.Finished = time.Now().UTC()
		return report, err
	}

	for _, s := range steps {
		emit(s.name, types.StepStarted, nil)

		if err := ctx.Err(); err != nil {
			return fail(s.name, err)
		}

		if s.skip {
			i.logger.Info("Skipping %s", s.name)
			emit(s.name, types.StepSkipped, nil)
			continue
		}

		i.logger.Debug("Running %s", s.name)
		if err := s.run(); err != nil {
			i.logger.Error("%s failed: %v", s.name, err)
			return fail(s.name, err)
		}

		emit(s.name, types.StepSucceeded, nil)
	}

	report.Status = types.RunSucceeded
	report.ClusterName = i.clusterName
	report.Finished = time.Now().UTC()

	return report, nil
}

func (i *installer) validateInput(payload ...string) error {
	if i.config.ZapFile == "" || !utils.IsRegularFile(i.config.ZapFile) {
		return errors.Wrapf(ErrMissingZAPFile, "%q", i.config.ZapFile)
	}

	for _, p := range payload {
		if !utils.IsRegularFile(p) {
			return errors.Errorf("extension file %s not found", p)
		}
	}

	return nil
}

func (i *installer) copyClusterXML() error {
	dst, err := utils.CopyFileToDir(i.clusterXMLPath(), i.repo.DataModelDir(i.config.Extension.DataModelDir))
	if err != nil {
		return err
	}
	i.logger.Info("Copied cluster XML to %s", dst)
	return nil
}

func (i *installer) updateZclJSON() error {
	n, err := manifest.AppendToArrays(i.repo.ZclJSON(), jsondoc.ZclManifest, []manifest.ArrayEntry{
		{Field: "xmlRoot", Value: layout.XMLRootEntry(i.config.Extension.DataModelDir)},
		{Field: "xmlFile", Value: filepath.Base(i.config.Extension.ClusterXML)},
	}, i.config.DedupeManifestEntries)
	if err != nil {
		return err
	}
	i.logger.Info("Added %d entries to %s", n, layout.ZclJSON)
	return nil
}

func (i *installer) updateClusterList() error {
	ext := i.config.Extension
	err := manifest.SetMapEntry(i.repo.ClusterListJSON(), jsondoc.ClusterList, serverDirectoriesField,
		ext.ServerDirectoryKey, []string{ext.ImplementationDir})
	if err != nil {
		return err
	}
	i.logger.Info("Registered %s in %s", ext.ServerDirectoryKey, layout.ClusterListJSON)
	return nil
}

func (i *installer) copyImplementation() error {
	dst, err := utils.CopyFileToDir(i.implementationPath(), i.repo.ClusterImplementationDir(i.config.Extension.ImplementationDir))
	if err != nil {
		return err
	}
	i.logger.Info("Copied cluster implementation to %s", dst)
	return nil
}

func (i *installer) patchZapFile() error {
	cluster, err := zcldef.LoadCluster(i.clusterXMLPath())
	if err != nil {
		return err
	}
	i.clusterName = cluster.Name

	globals, err := zcldef.LoadGlobalAttributes(i.repo.GlobalAttributesXML())
	if err != nil {
		return err
	}

	for _, a := range append(append([]zcldef.AttributeDefinition{}, cluster.Attributes...), globals...) {
		if a.DataType == zcl.TypeUnknown {
			i.logger.Warn("Attribute %s has type %q with no ZCL equivalent", a.Name, a.Type)
		}
	}

	attrs := i.config.Attributes
	d := zap.BuildClusterDescriptor(cluster, globals, zap.Options{
		Attributes: zap.AttributeDefaults{
			StorageOption:        attrs.StorageOption,
			Reportable:           attrs.Reportable,
			MinInterval:          attrs.MinInterval,
			MaxInterval:          attrs.MaxInterval,
			ReportableChange:     attrs.ReportableChange,
			ExplicitDefaultValue: attrs.ExplicitDefaultValue,
		},
		Manufacturer: zigbee.ManufacturerCode(i.config.Extension.ManufacturerCode),
	})

	changed, err := zap.PatchFile(i.config.ZapFile, d)
	if err != nil {
		return err
	}

	if changed {
		i.logger.Info("Added cluster %q with %d attributes to %s", d.Name, len(d.Attributes), i.config.ZapFile)
	} else {
		i.logger.Info("Cluster %q already present in %s", d.Name, i.config.ZapFile)
	}

	return nil
}
