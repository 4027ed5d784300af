// Package logger holds the process-wide logger. Output goes to a rotating
// file under the config directory, and to stderr as well with --debug.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/daychain/internal/constants"
)

// Logger is nil until Init; the helpers below drop messages until then.
var Logger *log.Logger

type Config struct {
	Debug     bool
	ConfigDir string
	// Stderr overrides os.Stderr for debug output.
	Stderr io.Writer
}

// Path returns the log file location for configDir.
func Path(configDir string) string {
	return filepath.Join(configDir, "logs", constants.AppName+".log")
}

func Init(cfg Config) error {
	file := Path(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return err
	}

	var w io.Writer = &lumberjack.Logger{
		Filename:   file,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
		Compress:   true,
	}
	level := log.WarnLevel
	if cfg.Debug {
		// the TUI owns the terminal otherwise
		stderr := cfg.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		w = io.MultiWriter(stderr, w)
		level = log.DebugLevel
	}

	Logger = log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

func at(level log.Level, msg string, keyvals []interface{}) {
	if Logger != nil {
		Logger.Log(level, msg, keyvals...)
	}
}

func Debug(msg string, keyvals ...interface{}) { at(log.DebugLevel, msg, keyvals) }
func Info(msg string, keyvals ...interface{})  { at(log.InfoLevel, msg, keyvals) }
func Warn(msg string, keyvals ...interface{})  { at(log.WarnLevel, msg, keyvals) }
func Error(msg string, keyvals ...interface{}) { at(log.ErrorLevel, msg, keyvals) }
