package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/exertrack/apiserver/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the application logger: JSON output, level from config,
// and rotating file output alongside stdout when LOG_DIR is set.
func New(cfg config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, 0o755); err == nil {
			fileWriter := &lumberjack.Logger{
				Filename:   filepath.Join(cfg.LogDir, "apiserver.log"),
				MaxSize:    100,
				MaxBackups: 3,
				MaxAge:     28,
				Compress:   true,
			}
			logger.SetOutput(io.MultiWriter(os.Stdout, fileWriter))
		} else {
			logger.Warnf("failed to create log directory %s: %v", cfg.LogDir, err)
		}
	}

	return logger
}
