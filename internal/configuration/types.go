package configuration

import "time"

// ExtensionConfiguration names the payload files of the cluster extension and where they go
// inside the Matter tree.
type ExtensionConfiguration struct {
	PayloadDir         string `yaml:"payloadDir" env:"PAYLOAD_DIR"`
	ClusterXML         string `yaml:"clusterXml" env:"CLUSTER_XML"`
	ImplementationFile string `yaml:"implementationFile" env:"IMPLEMENTATION_FILE"`
	ImplementationDir  string `yaml:"implementationDir" env:"IMPLEMENTATION_DIR"`
	ServerDirectoryKey string `yaml:"serverDirectoryKey" env:"SERVER_DIRECTORY_KEY"`
	DataModelDir       string `yaml:"dataModelDir" env:"DATA_MODEL_DIR"`
	ManufacturerCode   uint16 `yaml:"manufacturerCode" env:"MANUFACTURER_CODE"`
}

type GeneratorConfiguration struct {
	Script         string        `yaml:"script" env:"SCRIPT"`
	Interpreter    string        `yaml:"interpreter" env:"INTERPRETER"`
	Timeout        time.Duration `yaml:"timeout" env:"TIMEOUT"`
	IgnoreFailures bool          `yaml:"ignoreFailures" env:"IGNORE_FAILURES"`
	Skip           bool          `yaml:"skip" env:"SKIP"`
}

// AttributeDefaultsConfiguration holds the static reporting and storage flags stamped on
// every synthesized attribute.
type AttributeDefaultsConfiguration struct {
	StorageOption        string `yaml:"storageOption" env:"STORAGE_OPTION"`
	Reportable           int    `yaml:"reportable" env:"REPORTABLE"`
	MinInterval          int    `yaml:"minInterval" env:"MIN_INTERVAL"`
	MaxInterval          int    `yaml:"maxInterval" env:"MAX_INTERVAL"`
	ReportableChange     int    `yaml:"reportableChange" env:"REPORTABLE_CHANGE"`
	ExplicitDefaultValue string `yaml:"explicitDefaultValue" env:"EXPLICIT_DEFAULT_VALUE"`
}

type MqttConfiguration struct {
	Address   string `yaml:"address" env:"ADDRESS"`
	Port      uint16 `yaml:"port" env:"PORT"`
	RootTopic string `yaml:"rootTopic" env:"ROOT_TOPIC"`
	Username  string `yaml:"username" env:"USERNAME"`
	Password  string `yaml:"password" env:"PASSWORD"`
}

type JournalConfiguration struct {
	Dir string `yaml:"dir" env:"DIR"`
}

type Configuration struct {
	MatterRepo            string                         `yaml:"matterRepo" env:"MATTER_REPO"`
	ZapFile               string                         `yaml:"zapFile" env:"ZAP_FILE"`
	DedupeManifestEntries bool                           `yaml:"dedupeManifestEntries" env:"DEDUPE_MANIFEST_ENTRIES"`
	LogLevel              string                         `yaml:"logLevel" env:"LOG_LEVEL"`
	Extension             ExtensionConfiguration         `yaml:"extension" envPrefix:"EXTENSION_"`
	Generator             GeneratorConfiguration         `yaml:"generator" envPrefix:"GENERATOR_"`
	Attributes            AttributeDefaultsConfiguration `yaml:"attributes" envPrefix:"ATTRIBUTES_"`
	MqttConfiguration     MqttConfiguration              `yaml:"mqtt" envPrefix:"MQTT_"`
	Journal               JournalConfiguration           `yaml:"journal" envPrefix:"JOURNAL_"`
}
