// Package log provides structured logging backed by logrus, persisted to a daily file under the logs directory.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/eggdl-cli/eggdl/filesystem"
	"github.com/eggdl-cli/eggdl/key"
	"github.com/eggdl-cli/eggdl/where"
	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Fields is an alias so callers do not import logrus directly.
type Fields = logrus.Fields

func init() {
	// Nothing is written until Setup decides otherwise.
	logrus.SetOutput(io.Discard)
}

// Setup initializes the logging subsystem from the logs.* configuration keys.
// With logs.write disabled every entry is discarded.
func Setup() error {
	if !viper.GetBool(key.LogsWrite) {
		logrus.SetOutput(io.Discard)
		return nil
	}

	dir := where.Logs()
	if dir == "" {
		return errors.New("log directory path is empty")
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)

	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	return nil
}

// With returns an entry carrying the given fields.
func With(fields Fields) *logrus.Entry {
	return logrus.WithFields(fields)
}

func Error(args ...any)                 { logrus.Error(args...) }
func Errorf(format string, args ...any) { logrus.Errorf(format, args...) }
func Warn(args ...any)                  { logrus.Warn(args...) }
func Warnf(format string, args ...any)  { logrus.Warnf(format, args...) }
func Info(args ...any)                  { logrus.Info(args...) }
func Infof(format string, args ...any)  { logrus.Infof(format, args...) }
func Debug(args ...any)                 { logrus.Debug(args...) }
func Debugf(format string, args ...any) { logrus.Debugf(format, args...) }
