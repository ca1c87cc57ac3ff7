package config

import "github.com/spf13/pflag"

// Flag names shared by the CLI commands.
const (
	FlagConfig    = "config"
	FlagDebug     = "debug"
	FlagLogLevel  = "log-level"
	FlagLogFile   = "log-file"
	FlagHeight    = "height"
	FlagPitch     = "pitch"
	FlagDirection = "direction"
	FlagScale     = "scale"
	FlagSpeed     = "speed"
	FlagFast      = "fast"
	FlagRetryStep = "retry-step"
	FlagWorkers   = "workers"
	FlagFormat    = "format"
	FlagOutput    = "output"
	FlagMetrics   = "metrics-file"
)

// BindGlobalFlags registers the flags that apply to every command.
func BindGlobalFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "Path to config file")
	fs.Bool(FlagDebug, false, "Enable debug logging")
	fs.String(FlagLogLevel, "", "Log level (debug, info, warn, error)")
	fs.String(FlagLogFile, "", "Also write logs to this rotating file")
}

// BindSliceFlags registers the slice parameter flags. Defaults shown in
// help are the built-in ones; only flags set explicitly override the file.
func BindSliceFlags(fs *pflag.FlagSet) {
	d := Default().Slice
	fs.Float64(FlagHeight, d.Height, "Z step between layers")
	fs.Float64(FlagPitch, d.Pitch, "Spacing between scanlines")
	fs.String(FlagDirection, d.Direction, "Slicing axis: +X, -X, +Y, -Y, +Z or -Z")
	fs.Float64(FlagScale, d.Scale, "Uniform scale applied before slicing")
	fs.Float64(FlagSpeed, d.Speed, "Scanning feed speed")
	fs.Float64(FlagFast, d.Fast, "Rapid traverse speed")
	fs.Float64(FlagRetryStep, d.RetryStep, "Retry nudge as a fraction of height or pitch")
	fs.Int(FlagWorkers, d.Workers, "Z levels sliced concurrently")
}

// BindOutputFlags registers the result and metrics output flags.
func BindOutputFlags(fs *pflag.FlagSet) {
	fs.String(FlagFormat, Default().Output.Format, "Result format: xml or yaml")
	fs.StringP(FlagOutput, "o", "", "Result file (stdout when empty, gzip for .gz)")
	fs.String(FlagMetrics, "", "Write Prometheus metrics to this textfile")
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath(fs *pflag.FlagSet) string {
	if fs == nil {
		return ""
	}
	path, _ := fs.GetString(FlagConfig)
	return path
}

// applyFlags applies explicitly set CLI flags to the config.
func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case FlagDebug:
			var debug bool
			if debug, err = fs.GetBool(f.Name); debug {
				cfg.Logging.Level = "debug"
			}
		case FlagLogLevel:
			cfg.Logging.Level, err = fs.GetString(f.Name)
		case FlagLogFile:
			cfg.Logging.LogFile, err = fs.GetString(f.Name)
		case FlagHeight:
			cfg.Slice.Height, err = fs.GetFloat64(f.Name)
		case FlagPitch:
			cfg.Slice.Pitch, err = fs.GetFloat64(f.Name)
		case FlagDirection:
			cfg.Slice.Direction, err = fs.GetString(f.Name)
		case FlagScale:
			cfg.Slice.Scale, err = fs.GetFloat64(f.Name)
		case FlagSpeed:
			cfg.Slice.Speed, err = fs.GetFloat64(f.Name)
		case FlagFast:
			cfg.Slice.Fast, err = fs.GetFloat64(f.Name)
		case FlagRetryStep:
			cfg.Slice.RetryStep, err = fs.GetFloat64(f.Name)
		case FlagWorkers:
			cfg.Slice.Workers, err = fs.GetInt(f.Name)
		case FlagFormat:
			cfg.Output.Format, err = fs.GetString(f.Name)
		case FlagOutput:
			cfg.Output.Path, err = fs.GetString(f.Name)
		case FlagMetrics:
			cfg.Metrics.Textfile, err = fs.GetString(f.Name)
		}
	})
	return err
}
