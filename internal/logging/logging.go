// Package logging centralizes zap.Logger construction from a
// config.Config into its own package; main.go builds the process
// logger through New.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tareqmamari/logs-mcp-server/internal/config"
)

// New builds a zap.Logger from a config.Config. LogFormat selects the
// encoder (json for production, console for development) and LogLevel
// sets the minimum enabled level.
func New(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	var zcfg zap.Config
	if cfg.LogFormat == "console" {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	return zcfg.Build()
}
