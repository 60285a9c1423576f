/*
Copyright 2024 The Forge Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package log

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// DebugLevel is the debug log level, i.e. the most verbose.
	DebugLevel LogLevel = "debug"
	// InfoLevel is the default log level.
	InfoLevel LogLevel = "info"
	// ErrorLevel is a log level where only errors are logged.
	ErrorLevel LogLevel = "error"
)

type LogLevel string
type Format string

const (
	FormatJSON    Format = "JSON"
	FormatConsole Format = "Console"
)

var (
	// AllLogLevels is a slice of all available log levels.
	AllLogLevels = []LogLevel{DebugLevel, InfoLevel, ErrorLevel}
	// AllLogFormats is a slice of all available log formats.
	AllLogFormats = []Format{FormatJSON, FormatConsole}
)

func setCommonEncoderConfigOptions(encoderConfig *zapcore.EncoderConfig) {
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder
}

// MustNewZapLogger is like NewZapLogger but panics on invalid input.
func MustNewZapLogger(level LogLevel, format Format) logr.Logger {
	logger, err := NewZapLogger(level, format)
	if err != nil {
		panic(err)
	}

	return logger
}

// NewZapLogger creates a new logr.Logger backed by Zap. There is no
// controller-manager here to supply a logzap.Opts chain, so the zap.Config
// is built directly and adapted to logr.Logger via zapr.NewLogger.
func NewZapLogger(level LogLevel, format Format) (logr.Logger, error) {
	var zapLevel zapcore.Level

	switch level {
	case DebugLevel:
		zapLevel = zap.DebugLevel
	case ErrorLevel:
		zapLevel = zap.ErrorLevel
	case "", InfoLevel:
		zapLevel = zap.InfoLevel
	default:
		return logr.Logger{}, fmt.Errorf("invalid log level %q", level)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	setCommonEncoderConfigOptions(&cfg.EncoderConfig)

	switch format {
	case FormatJSON:
		cfg.Encoding = "json"
	case "", FormatConsole:
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return logr.Logger{}, fmt.Errorf("invalid log format %q", format)
	}

	zapLog, err := cfg.Build()
	if err != nil {
		return logr.Logger{}, fmt.Errorf("building zap logger: %w", err)
	}

	return zapr.NewLogger(zapLog), nil
}

// NewDefault creates new default logger.
func NewDefault() logr.Logger {
	return MustNewZapLogger(InfoLevel, FormatJSON)
}

// Type returns the type name (optional for flag.Value)
func (f *Format) Type() string {
	return "logFormat"
}

// Set implements the cli.Value and flag.Value interfaces.
func (f *Format) Set(s string) error {
	switch strings.ToLower(s) {
	case "json":
		*f = FormatJSON
		return nil
	case "console":
		*f = FormatConsole
		return nil
	default:
		return fmt.Errorf("invalid format '%s'", s)
	}
}

// String implements the cli.Value and flag.Value interfaces.
func (f *Format) String() string {
	return string(*f)
}

// Type returns the type name (optional for flag.Value)
func (f *LogLevel) Type() string {
	return "logLevel"
}

// Set implements the cli.Value and flag.Value interfaces.
func (f *LogLevel) Set(s string) error {
	switch strings.ToLower(s) {
	case "info":
		*f = InfoLevel
		return nil
	case "debug":
		*f = DebugLevel
		return nil
	case "error":
		*f = ErrorLevel
		return nil
	default:
		return fmt.Errorf("invalid level '%s'", s)
	}
}

// String implements the cli.Value and flag.Value interfaces.
func (f *LogLevel) String() string {
	return string(*f)
}
