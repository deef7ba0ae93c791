// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup applies the level and output destination. Logs go to stderr unless a
// file path is given, in which case they are rotated through lumberjack.
// Stdout is left to the console session.
func Setup(level, filePath string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	out, err := output(filePath)
	if err != nil {
		return err
	}
	log.SetOutput(out)
	return nil
}

func output(filePath string) (io.Writer, error) {
	if filePath == "" {
		return os.Stderr, nil
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure log dir: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	}, nil
}
