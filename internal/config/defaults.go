package config

const (
	defaultStateDir        = "~/.local/state/stacks"
	defaultOthersFolder    = "Others"
	defaultLogFormat       = "console"
	defaultLogLevel        = "warn"
	defaultContentSniffing = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Folders: Folders{
			Others: defaultOthersFolder,
		},
		Classify: Classify{
			ContentSniffing: defaultContentSniffing,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
