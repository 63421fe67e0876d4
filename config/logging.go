package config

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogging points the standard logger at the destination the logging
// configuration asks for. File outputs rotate via lumberjack. The returned
// writer is handed to the HTTP access logger as well when access logging
// writes to a file.
func SetupLogging(cfg LoggingConfig) io.Writer {
	var out io.Writer

	switch cfg.Output {
	case "file":
		out = rotatingWriter(cfg.FilePath, cfg)
	case "both":
		out = io.MultiWriter(os.Stdout, rotatingWriter(cfg.FilePath, cfg))
	default: // stdout
		out = os.Stdout
	}

	flags := log.LstdFlags | log.LUTC
	if cfg.EnableCaller {
		flags |= log.Lshortfile
	}
	log.SetFlags(flags)
	log.SetOutput(out)

	return out
}

// AccessLogWriter returns the destination for HTTP access logs. When access
// logging is disabled or configured for stdout, it falls back to stdout.
func AccessLogWriter(cfg LoggingConfig) io.Writer {
	if !cfg.EnableAccessLog || cfg.AccessLogPath == "" || cfg.Output == "stdout" {
		return os.Stdout
	}
	return rotatingWriter(cfg.AccessLogPath, cfg)
}

func rotatingWriter(path string, cfg LoggingConfig) io.Writer {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
}
