// Package logger provides structured logging on top of the Zap library.
// Loggers travel through the context: the package exposes context-first
// logging helpers, a process-wide logger with an adjustable level, and
// log level parsing for the configuration layer.
package logger
