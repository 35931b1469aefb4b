// Package utils provides a collection of helper functions and utilities for common tasks,
// such as content type validation and User-Agent provisioning.
// It is designed to simplify repetitive operations and ensure consistency across the application.
package utils
