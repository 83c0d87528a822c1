package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/sustainlog/internal/constants"
)

// Rotation limits for the log file.
const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 28
)

// Logger is the process-wide logger. It stays nil until Init runs and the
// package helpers drop records until then.
var Logger *log.Logger

var file *lumberjack.Logger

type Config struct {
	Debug     bool
	ConfigDir string
	// Stderr mirrors records to stderr in debug mode. The TUI leaves it off
	// so log lines do not tear the alt screen.
	Stderr bool
}

// Path is where Init writes the log for a config directory.
func Path(configDir string) string {
	return filepath.Join(configDir, "logs", constants.LogFileName)
}

// Init points the package logger at a rotating file under cfg.ConfigDir.
// Calling it again closes the previous file.
func Init(cfg Config) error {
	path := Path(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	if err := Close(); err != nil {
		return err
	}

	file = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}

	Logger = log.NewWithOptions(output(cfg, file), log.Options{
		Level:           levelFor(cfg.Debug),
		Formatter:       log.LogfmtFormatter,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		ReportCaller:    cfg.Debug,
		// Skip emit and the exported helper that called it.
		CallerOffset: 2,
		Prefix:       constants.AppName,
	})
	return nil
}

// Close flushes and releases the log file. Records logged afterwards are
// dropped until the next Init.
func Close() error {
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	Logger = nil
	return err
}

func levelFor(debug bool) log.Level {
	if debug {
		return log.DebugLevel
	}
	return log.WarnLevel
}

func output(cfg Config, w io.Writer) io.Writer {
	if cfg.Debug && cfg.Stderr {
		return io.MultiWriter(os.Stderr, w)
	}
	return w
}

func emit(level log.Level, msg string, keyvals []interface{}) {
	if Logger == nil {
		return
	}
	Logger.Log(level, msg, keyvals...)
}

func Debug(msg string, keyvals ...interface{}) { emit(log.DebugLevel, msg, keyvals) }

func Info(msg string, keyvals ...interface{}) { emit(log.InfoLevel, msg, keyvals) }

func Warn(msg string, keyvals ...interface{}) { emit(log.WarnLevel, msg, keyvals) }

func Error(msg string, keyvals ...interface{}) { emit(log.ErrorLevel, msg, keyvals) }
