package config

const (
	defaultNotesFolder    = "YouTube"
	defaultStateDir       = "~/.local/share/ytvault"
	defaultLogDir         = "~/.local/share/ytvault/logs"
	defaultYouTubeBaseURL = "https://youtube.googleapis.com"
	defaultPageSize       = 50
	defaultRequestTimeout = 10
	defaultDateFormat     = "1/2/2006"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"

	// MaxPageSize is the largest maxResults value the playlistItems endpoint accepts.
	MaxPageSize = 50
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			NotesFolder: defaultNotesFolder,
			StateDir:    defaultStateDir,
			LogDir:      defaultLogDir,
		},
		YouTube: YouTube{
			BaseURL:        defaultYouTubeBaseURL,
			PageSize:       defaultPageSize,
			RequestTimeout: defaultRequestTimeout,
		},
		Templates: Templates{
			DateFormat: defaultDateFormat,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
