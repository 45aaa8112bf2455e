package config

const (
	defaultDataDir       = "~/.local/share/layoutkit"
	defaultCanvasWidth   = 1920
	defaultCanvasHeight  = 1080
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultStoreFileName = "layout.db"
	defaultSocketName    = "layoutkit.sock"
	defaultLockName      = "layoutkit.lock"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Canvas: Canvas{
			Width:  defaultCanvasWidth,
			Height: defaultCanvasHeight,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
