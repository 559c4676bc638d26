// Package config defines the configuration contract used across the service
// and a Viper-backed implementation.
package config

import (
	"io"
	"time"
)

// Config is the read-only configuration surface the application depends on.
//
// Implementations return zero values for missing keys; callers supply their
// own defaults where a zero value is not acceptable.
type Config interface {
	io.Closer

	// GetString returns the value for key as a string.
	GetString(key string) string
	// GetBool returns the value for key as a bool.
	GetBool(key string) bool
	// GetInt returns the value for key as an int.
	GetInt(key string) int
	// GetInt32 returns the value for key as an int32.
	GetInt32(key string) int32
	// GetInt64 returns the value for key as an int64.
	GetInt64(key string) int64
	// GetUint returns the value for key as a uint.
	GetUint(key string) uint
	// GetUint16 returns the value for key as a uint16.
	GetUint16(key string) uint16
	// GetFloat64 returns the value for key as a float64.
	GetFloat64(key string) float64
	// GetArray returns the value for key split on commas.
	GetArray(key string) []string

	// GetSecond interprets the integer value for key as seconds.
	GetSecond(key string) time.Duration
	// GetMinute interprets the integer value for key as minutes.
	GetMinute(key string) time.Duration
	// GetHour interprets the integer value for key as hours.
	GetHour(key string) time.Duration
	// GetMillisecond interprets the integer value for key as milliseconds.
	GetMillisecond(key string) time.Duration
}
