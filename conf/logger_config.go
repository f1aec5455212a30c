// Copyright 2022-2026 The Starkstore Authors
// This file is part of the Starkstore Node library.
//
// The Starkstore Node library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The Starkstore Node library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the Starkstore Node library. If not, see <http://www.gnu.org/licenses/>.

package conf

// LoggerConfig defines the logging configuration.
//
// Rotation policy:
//   - once a single file passes MaxSize MB, it is rotated to a new file.
//   - the old file is renamed to name-timestamp.ext.
//   - files past MaxBackups count or MaxAge days are removed automatically.
//   - with Compress enabled, rotated files are gzipped to save space.
//
// Recommended settings:
//   - production: MaxSize=100, MaxBackups=10, MaxAge=30, Compress=true
//   - development: MaxSize=10, MaxBackups=3, MaxAge=7, Compress=false
//   - tight disk budget: MaxSize=50, MaxBackups=5, MaxAge=7, Compress=true, TotalSizeCap=500
type LoggerConfig struct {
	// LogFile is the log file name (empty means console-only).
	// It is always joined under DataDir/log/, absolute paths included.
	LogFile string `json:"name" yaml:"name"`

	// Level is the log level: trace, debug, info, warn, error, fatal.
	Level string `json:"level" yaml:"level"`

	// MaxSize is the max size in MB of a single log file before it
	// rotates to a new file. Default: 100.
	MaxSize int `json:"max_size" yaml:"max_size"`

	// MaxBackups is how many rotated files to keep. 0 means unlimited
	// count (still bounded by MaxAge). Default: 10.
	MaxBackups int `json:"max_count" yaml:"max_count"`

	// MaxAge is how many days to keep rotated files. 0 means no
	// age-based deletion (still bounded by MaxBackups). Default: 30.
	MaxAge int `json:"max_day" yaml:"max_day"`

	// Compress gzips rotated files, saving roughly 90% of their space.
	// Default: true.
	Compress bool `json:"compress" yaml:"compress"`

	// TotalSizeCap bounds the combined size in MB of all log files;
	// once exceeded, the oldest files are deleted. 0 means unlimited
	// (use MaxBackups/MaxAge instead). Default: 0.
	TotalSizeCap int `json:"total_size_cap" yaml:"total_size_cap"`

	// LocalTime names rotated files using local time instead of UTC.
	// Default: true.
	LocalTime bool `json:"local_time" yaml:"local_time"`

	// Console also writes to stdout even when LogFile is set.
	// Default: true.
	Console bool `json:"console" yaml:"console"`

	// JSONFormat writes file output as JSON lines. When Console is also
	// set, the console copy uses the same format; console-only output
	// (empty LogFile) is always plain text. Default: true.
	JSONFormat bool `json:"json_format" yaml:"json_format"`
}

// DefaultLoggerConfig returns the default logging configuration.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		LogFile:      "", // console-only by default
		Level:        "info",
		MaxSize:      100, // 100 MB
		MaxBackups:   10,
		MaxAge:       30, // 30 days
		Compress:     true,
		TotalSizeCap: 0, // unlimited
		LocalTime:    true,
		Console:      true,
		JSONFormat:   true,
	}
}

// Validate replaces a non-positive MaxSize and a negative MaxBackups or
// MaxAge with their defaults; other fields are left as they are.
func (c *LoggerConfig) Validate() error {
	if c.MaxSize <= 0 {
		c.MaxSize = 100
	}
	if c.MaxBackups < 0 {
		c.MaxBackups = 10
	}
	if c.MaxAge < 0 {
		c.MaxAge = 30
	}
	return nil
}
