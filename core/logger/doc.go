// Package logger provides a structured logging facility based on Zap.
//
// Development (debug) and production configurations are supported, with
// json or console encoding. Every component of the resource manager takes
// the *zap.Logger built here.
//
// # Context Awareness
//
// WithRayID extracts the RayID set by the rayid middleware from a Fiber
// context and attaches it to the log entry, so all logs of one admin request
// can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Flush failed", zap.Error(err))
package logger
