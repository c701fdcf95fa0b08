// FILE: logger.go
// Package main – Logging setup (console + rotating file).
//
// initLogger configures the global logrus logger to write to stdout and to a
// size-rotated file via lumberjack (default logs/schwabbot.log, 2MB × 3
// backups). All files log through the logrus package-level functions, so this
// is the single place output is wired.

package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// initLogger sets level, format, and output for the process-wide logger.
// An empty file path keeps console-only output.
func initLogger(level, file string) error {
	lv, err := logrus.ParseLevel(level)
	if err != nil {
		lv = logrus.InfoLevel
	}
	logrus.SetLevel(lv)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "06-01-02 15:04:05",
	})

	writers := []io.Writer{os.Stdout}
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return err
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    2, // MB
			MaxBackups: 3,
			Compress:   false,
		})
	}
	logrus.SetOutput(io.MultiWriter(writers...))
	return nil
}
