// Package logging provides structured logging utilities for farmview components.
//
// # Overview
//
// This package wraps the standard library slog package with farmview-specific defaults
// and conventions for consistent logging across all components. It supports
// environment-based log level configuration, module/version context injection,
// and automatic source location tracking for debug logs.
//
// # Features
//
//   - Structured JSON logging to stderr
//   - Environment-based log level configuration (LOG_LEVEL)
//   - Automatic module and version context
//   - Source location tracking for debug logs
//   - Flexible log level parsing
//   - Integration with standard library log package
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// The CLI installs the default logger before any command runs, with the
// level taken from --log-level or LOG_LEVEL:
//
//	logging.SetDefaultStructuredLoggerWithLevel("farmview", version, logLevel)
//
// Components then log through slog directly:
//
//	slog.Debug("device tree listed", "disks", len(forest))
//	slog.Warn("mount table unavailable, reporting fallback entries only", "error", err)
//
// Creating a logger for a single component or test:
//
//	logger := logging.NewStructuredLogger("farmview", "v1.0.0", "debug")
//	logger.Debug("smartctl detected", "version", "7.3", "json", true)
//
// Converting standard library logger:
//
//	stdLogger := logging.NewLogLogger(slog.LevelInfo, false)
//	stdLogger.Println("legacy log message")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug farmview collect
//	LOG_LEVEL=error farmview collect --format yaml
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// # Output Format
//
// All logs are written to stderr in JSON format:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "WARN",
//	    "msg": "traffic sample unavailable",
//	    "module": "farmview",
//	    "version": "v1.0.0",
//	    "error": "vnstat: executable file not found in $PATH"
//	}
//
// Debug logs include source location:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "DEBUG",
//	    "source": {
//	        "function": "github.com/farmview/farmview/pkg/disk.Resolve",
//	        "file": "resolve.go",
//	        "line": 118
//	    },
//	    "msg": "disks resolved",
//	    "module": "farmview",
//	    "version": "v1.0.0"
//	}
//
// # Conventions
//
// A source that cannot be queried degrades the section and logs a warning
// naming what is reported instead:
//
//	slog.Warn("device tree unavailable, reporting no disks", "error", err)
//
// Skipped records log at WARN with the offending input:
//
//	slog.Warn("skipping df row", "row", line, "error", err)
//
// Counts of collected items log at DEBUG:
//
//	slog.Debug("disks collected", "entries", len(entries))
//
// # Integration
//
// This package is used by:
//   - pkg/cli - CLI command logging
//   - pkg/command - External utility invocation logging
//   - pkg/collector - Section collection logging
//   - pkg/disk - Disk resolution logging
//   - pkg/snapshotter - Report assembly logging
//
// All components share consistent logging format and configuration.
package logging
