package config

import (
	"io"
	"time"
)

// TimeConfig reads integer values and scales them into durations.
type TimeConfig interface {
	// GetSecond reads key as a number of seconds.
	GetSecond(key string) time.Duration
	// GetMinute reads key as a number of minutes.
	GetMinute(key string) time.Duration
}

// Config is the read side of the application configuration.
//
// Missing keys yield the zero value of the requested type; callers validate
// the values they care about once at startup.
type Config interface {
	io.Closer
	TimeConfig

	GetBool(key string) bool
	GetInt(key string) int
	GetInt64(key string) int64
	GetFloat64(key string) float64
	GetString(key string) string

	// GetArray reads key as a list. Both YAML sequences and the
	// comma separated form used in environment variables are accepted.
	GetArray(key string) []string

	// GetMap reads key from "k:v,k:v" pairs.
	GetMap(key string) map[string]string
}
