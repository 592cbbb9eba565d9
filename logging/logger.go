package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures NewLogger.
type Options struct {
	// Development selects coloured console output instead of JSON.
	Development bool

	// Level is the minimum enabled level.
	Level zapcore.Level

	// FilePath is the rotated JSON log file. Empty disables file output.
	FilePath string

	// Rotation bounds the log file. Zero fields use DefaultRotation.
	Rotation Rotation

	// Console receives console output. Defaults to os.Stdout.
	Console io.Writer
}

// Logger wraps zap.Logger with the console and rotated-file tee the server
// runs with.
//
// Example:
//
//	logger, err := NewLogger(Options{Development: true, Level: DebugLevel, FilePath: "bookforge.log"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
//
//	logger.Info("server started", zap.String("addr", ":3000"))
type Logger struct {
	zap   *zap.Logger
	level zap.AtomicLevel

	isDevelopment bool
	logFilePath   string
}

// NewLogger creates a Logger from opts. The file, when configured, is
// created up front so a bad path fails here rather than on first write.
func NewLogger(opts Options) (*Logger, error) {
	level := zap.NewAtomicLevelAt(opts.Level)

	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	var fileWriter zapcore.WriteSyncer
	if opts.FilePath != "" {
		f, err := os.OpenFile(opts.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		f.Close()
		fileWriter = NewFileWriter(opts.FilePath, opts.Rotation)
	}

	core := NewMultiCore(level, zapcore.AddSync(console), fileWriter, opts.Development)

	zapLogger := zap.New(core, zap.AddCaller())
	if opts.Development {
		zapLogger = zapLogger.WithOptions(zap.AddStacktrace(zapcore.ErrorLevel))
	}

	return &Logger{
		zap:           zapLogger,
		level:         level,
		isDevelopment: opts.Development,
		logFilePath:   opts.FilePath,
	}, nil
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	if l == nil || l.zap == nil {
		return nil
	}
	return l.zap.Sync()
}

// Zap returns the underlying zap.Logger. Components take *zap.Logger.
func (l *Logger) Zap() *zap.Logger {
	return l.zap
}

// Named returns the underlying logger with a sub-logger name.
func (l *Logger) Named(name string) *zap.Logger {
	return l.zap.Named(name)
}

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.zap.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...zap.Field)  { l.zap.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zap.Field)  { l.zap.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...zap.Field) { l.zap.Error(msg, fields...) }

// SetLevel changes the minimum level at runtime.
func (l *Logger) SetLevel(level zapcore.Level) {
	l.level.SetLevel(level)
}

// Level returns the current minimum level.
func (l *Logger) Level() zapcore.Level {
	return l.level.Level()
}

// IsDevelopment returns true if the logger is configured for development mode.
func (l *Logger) IsDevelopment() bool {
	return l.isDevelopment
}

// LogFilePath returns the path to the log file.
func (l *Logger) LogFilePath() string {
	return l.logFilePath
}
