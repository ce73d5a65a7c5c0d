package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ak7sky/cidrsum/internal/core/model"
	"github.com/ak7sky/cidrsum/internal/logger"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "CIDRSUM"

const (
	ExcludeKey  = "exclude"
	LogLevelKey = "log-level"
	LogFileKey  = "log-file"
)

const DefaultLogLevel = "error"

type Config struct {
	InputPath   string
	Prefix      int
	OutputPath  string
	ExcludePath string
	LogLevel    string
	LogFile     string
}

// Load builds a Config from positional args (<input_path> <prefix> [output_path])
// and from flags, falling back to CIDRSUM_* environment variables for unset flags.
func Load(args []string, flags *pflag.FlagSet) (Config, error) {
	if len(args) < 2 || len(args) > 3 {
		return Config{}, fmt.Errorf("%w: expected <input_path> <prefix> [output_path], got %d arguments",
			model.ErrUsage, len(args))
	}

	prefix, err := strconv.Atoi(args[1])
	if err != nil {
		return Config{}, fmt.Errorf("%w: prefix must be an integer (16 or 24), got %q", model.ErrParse, args[1])
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(LogLevelKey, DefaultLogLevel)
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("%w: %v", model.ErrUsage, err)
		}
	}

	cfg := Config{
		InputPath:   args[0],
		Prefix:      prefix,
		ExcludePath: v.GetString(ExcludeKey),
		LogLevel:    v.GetString(LogLevelKey),
		LogFile:     v.GetString(LogFileKey),
	}
	if len(args) == 3 {
		cfg.OutputPath = args[2]
	}
	if _, err := logger.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("%w: %v", model.ErrUsage, err)
	}
	return cfg, nil
}
