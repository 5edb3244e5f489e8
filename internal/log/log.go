// Package log provides centralized logging functionality using zap logger.
package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for file logging
const (
	maxSizeMB  = 50
	maxBackups = 5
	maxAgeDays = 28
)

var log *zap.SugaredLogger
var baseLogger *zap.Logger

// Init initializes the package-level logger
func Init(debug bool) error {
	var zapLogger *zap.Logger
	var err error

	if debug {
		zapLogger, err = zap.NewDevelopment(zap.AddCallerSkip(1))
	} else {
		zapLogger, err = zap.NewProduction(zap.AddCallerSkip(1))
	}
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %v", err)
	}

	set(zapLogger)
	return nil
}

// InitFile initializes the package-level logger to write to stderr and to a
// size-rotated JSON log file at path.
func InitFile(debug bool, path string) error {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	consoleCfg := zap.NewProductionEncoderConfig()
	if debug {
		level.SetLevel(zapcore.DebugLevel)
		consoleCfg = zap.NewDevelopmentEncoderConfig()
	}

	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}

	fileCfg := zap.NewProductionEncoderConfig()
	fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stderr), level),
		zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(rotator), level),
	)
	set(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)))
	return nil
}

func set(zapLogger *zap.Logger) {
	baseLogger = zapLogger
	log = zapLogger.Sugar()
}

// GetZapLogger returns the base zap logger
func GetZapLogger() *zap.Logger {
	if baseLogger == nil {
		// Fallback logger if not initialized
		baseLogger, _ = zap.NewProduction(zap.AddCallerSkip(1))
		log = baseLogger.Sugar()
	}
	return baseLogger
}

// GetSugaredLogger returns the sugared logger instance for handing to
// library constructors. It carries no caller skip, unlike the package-level
// helpers below.
func GetSugaredLogger() *zap.SugaredLogger {
	return GetZapLogger().WithOptions(zap.AddCallerSkip(-1)).Sugar()
}

// Sync flushes any buffered log entries
func Sync() {
	if log != nil {
		log.Sync()
	}
}

// Package-level convenience functions
func Debugw(msg string, keysAndValues ...interface{}) {
	GetZapLogger()
	log.Debugw(msg, keysAndValues...)
}

func Info(args ...interface{}) {
	GetZapLogger()
	log.Info(args...)
}

func Infow(msg string, keysAndValues ...interface{}) {
	GetZapLogger()
	log.Infow(msg, keysAndValues...)
}

func Errorf(template string, args ...interface{}) {
	GetZapLogger()
	log.Errorf(template, args...)
}

func Errorw(msg string, keysAndValues ...interface{}) {
	GetZapLogger()
	log.Errorw(msg, keysAndValues...)
}

