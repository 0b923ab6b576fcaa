package configuration

type ConfigurationService interface {
	// Update validates and replaces the active configuration, typically after CLI flags
	// have been layered on top of the loaded file.
	Update(updatedConfig Configuration) error
	GetConfiguration() Configuration
	// LoadedFrom is the config file actually read, empty when defaults were used.
	LoadedFrom() string
}
