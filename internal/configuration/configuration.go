package configuration

import (
	"os"
	"path/filepath"
	"strings"

	env "github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/supby/zclext/internal/layout"
)

const EnvPrefix = "ZCLEXT_"

type configurationService struct {
	configuration Configuration
	loadedFrom    string
}

// Defaults installs the Apple device information cluster, which is what the tool was
// first written for.
func Defaults() Configuration {
	return Configuration{
		LogLevel: "info",
		Extension: ExtensionConfiguration{
			ClusterXML:         "apple-device-information-cluster.xml",
			ImplementationFile: "apple-device-information-server.cpp",
			ImplementationDir:  "apple-device-information-server",
			ServerDirectoryKey: "APPLE_DEVICE_INFORMATION_CLUSTER",
			DataModelDir:       "apple",
		},
		Generator: GeneratorConfiguration{
			Script: layout.GeneratorScript,
		},
		Attributes: AttributeDefaultsConfiguration{
			StorageOption:        "RAM",
			Reportable:           1,
			MinInterval:          0,
			MaxInterval:          1,
			ReportableChange:     0,
			ExplicitDefaultValue: "1",
		},
		MqttConfiguration: MqttConfiguration{
			Port:      1883,
			RootTopic: "zclext",
		},
	}
}

// Init layers defaults, the YAML file (when it exists) and ZCLEXT_* environment variables.
func Init(filename string) (ConfigurationService, error) {
	cfg := Defaults()
	loadedFrom := ""

	if filename != "" {
		data, err := os.ReadFile(filename)
		switch {
		case err == nil:
			if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
				return nil, errors.Wrapf(err, "parsing config file %s", filename)
			}
			loadedFrom = filename
		case os.IsNotExist(err):
		default:
			return nil, errors.Wrapf(err, "reading config file %s", filename)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.Wrap(err, "parsing environment")
	}

	if cfg.Extension.PayloadDir == "" && loadedFrom != "" {
		cfg.Extension.PayloadDir = filepath.Dir(loadedFrom)
	}

	ret := &configurationService{loadedFrom: loadedFrom}
	if err := ret.Update(cfg); err != nil {
		return nil, err
	}

	return ret, nil
}

func (cs *configurationService) Update(updatedConfig Configuration) error {
	if err := Validate(updatedConfig); err != nil {
		return err
	}

	cs.configuration = updatedConfig

	return nil
}

func (cs *configurationService) GetConfiguration() Configuration {
	return cs.configuration
}

func (cs *configurationService) LoadedFrom() string {
	return cs.loadedFrom
}

// Validate checks the fields that end up as path segments or manifest keys.
// MatterRepo and ZapFile are checked later by the pipeline, since flags may still fill them in.
func Validate(cfg Configuration) error {
	required := []struct {
		name  string
		value string
	}{
		{"extension.clusterXml", cfg.Extension.ClusterXML},
		{"extension.implementationFile", cfg.Extension.ImplementationFile},
		{"extension.implementationDir", cfg.Extension.ImplementationDir},
		{"extension.serverDirectoryKey", cfg.Extension.ServerDirectoryKey},
		{"extension.dataModelDir", cfg.Extension.DataModelDir},
		{"generator.script", cfg.Generator.Script},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return errors.Errorf("configuration: %s must not be empty", r.name)
		}
	}

	for _, dir := range []string{cfg.Extension.ImplementationDir, cfg.Extension.DataModelDir} {
		if strings.ContainsAny(dir, `/\`) || dir == "." || dir == ".." {
			return errors.Errorf("configuration: %q must be a single directory name", dir)
		}
	}

	if cfg.Generator.Timeout < 0 {
		return errors.Errorf("configuration: generator.timeout must not be negative")
	}

	return nil
}
