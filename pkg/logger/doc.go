// Package logger provides a structured logging interface for the vanity
// name scanner.
//
// It wraps the zerolog library to provide a clean, easy-to-use API with support for:
// - Multiple log levels (Debug, Info, Warn, Error, Fatal)
// - Structured logging with fields
// - Pretty console output
// - Optional file output alongside the console
// - Global logger instance for easy access
//
// Basic Usage:
//
//	import "vanityscan/pkg/logger"
//
//	// Initialize the global logger
//	cfg := &config.LoggingConfig{
//	    Level: "info",
//	}
//	err := logger.Initialize(cfg)
//
//	// Use the global logger
//	logger.GetLogger().Info("scan started")
//	logger.WithField("identifier", "ABC").Info("checked")
//	logger.WithError(err).Error("lookup failed")
package logger
