package types

// CLIArgs represents the command-line arguments.
// Config only carries the flags the user actually set, so it can be merged
// over the config file without clobbering it with flag defaults.
type CLIArgs struct {
	ConfigFile string
	EnvFiles   []string
	Debug      bool
	Config     Config
}
