package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the CLI logger. Logs always go to stderr so command output on
// stdout stays pipeable. development switches to the human readable console
// encoder used for --verbose.
func New(level string, development bool) (*zap.Logger, error) {
	if level == "" {
		level = "warn"
	}

	atomic, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Sampling = nil
	}
	cfg.Level = atomic
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
