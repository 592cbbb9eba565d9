package logging

import (
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation bounds the on-disk size of the JSON log file. Zero fields take
// the values from DefaultRotation.
type Rotation struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	LocalTime  bool
}

// DefaultRotation keeps one live file and three compressed backups of 50 MB.
func DefaultRotation() Rotation {
	return Rotation{MaxSizeMB: 50, MaxBackups: 3, MaxAgeDays: 14, Compress: true}
}

func (r Rotation) withDefaults() Rotation {
	d := DefaultRotation()
	if r.MaxSizeMB <= 0 {
		r.MaxSizeMB = d.MaxSizeMB
	}
	if r.MaxBackups <= 0 {
		r.MaxBackups = d.MaxBackups
	}
	if r.MaxAgeDays <= 0 {
		r.MaxAgeDays = d.MaxAgeDays
	}
	return r
}

// Footprint is the most disk the live file and its backups can take,
// ignoring compression.
func (r Rotation) Footprint() int64 {
	r = r.withDefaults()
	return int64(r.MaxBackups+1) * int64(r.MaxSizeMB) << 20
}

// NewFileWriter returns a WriteSyncer that rotates path under r.
func NewFileWriter(path string, r Rotation) zapcore.WriteSyncer {
	r = r.withDefaults()
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    r.MaxSizeMB,
		MaxBackups: r.MaxBackups,
		MaxAge:     r.MaxAgeDays,
		Compress:   r.Compress,
		LocalTime:  r.LocalTime,
	})
}
