package config

import "github.com/alexshpunt/zwift-workouts-parser/internal/workout"

const (
	defaultConfigPath = "~/.config/zwoparse/config.toml"
	projectConfigName = "zwoparse.toml"
	defaultExportDir  = "export"
	defaultStateDir   = "~/.local/share/zwoparse"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
	historyFileName   = "history.db"
	logFileName       = "zwoparse.log"

	// EnvExportDir overrides paths.export_dir when set.
	EnvExportDir = "ZWOPARSE_EXPORT_DIR"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ExportDir: defaultExportDir,
			StateDir:  defaultStateDir,
		},
		Workout: Workout{
			Author:      workout.DefaultAuthor,
			Name:        workout.DefaultName,
			Description: workout.DefaultDescription,
			SportType:   workout.DefaultSportType,
		},
		Parsing: Parsing{
			BikeOnly: true,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
