package main

import (
	"io"
	"os"
	"strings"

	logging "github.com/op/go-logging"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log = logging.MustGetLogger("main")

var stdoutLogFormat = logging.MustStringFormatter(
	`%{color:reset}%{color}%{time:15:04:05.000} [%{level}] [%{module}/%{shortfunc}] %{message}`,
)

var fileLogFormat = logging.MustStringFormatter(
	`%{time:2006-01-02 15:04:05.000} [%{level}] [%{module}/%{shortfunc}] %{message}`,
)

func parseLevel(s string) logging.Level {
	switch strings.ToLower(s) {
	case "debug":
		return logging.DEBUG
	case "notice":
		return logging.NOTICE
	case "warning":
		return logging.WARNING
	case "error":
		return logging.ERROR
	case "critical":
		return logging.CRITICAL
	default:
		return logging.INFO
	}
}

// setupLogging installs the stdout backend and, when file is set, a rotated
// file backend. The returned closer is nil without a file.
func setupLogging(level, file string) io.Closer {
	backendStdout := logging.NewLogBackend(os.Stdout, "", 0)
	backends := []logging.Backend{logging.NewBackendFormatter(backendStdout, stdoutLogFormat)}

	var closer io.Closer
	if file != "" {
		w := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10, // Megabytes
			MaxBackups: 3,
			MaxAge:     30, // Days
		}
		backendFile := logging.NewLogBackend(w, "", 0)
		backends = append(backends, logging.NewBackendFormatter(backendFile, fileLogFormat))
		closer = w
	}

	logging.SetBackend(backends...).SetLevel(parseLevel(level), "")
	return closer
}
