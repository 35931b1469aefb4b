// Package output serializes the run result record to stdout or a file,
// as indented JSON or YAML.
package output
