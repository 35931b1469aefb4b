package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yfe404/actor-adopte-get-auth-token/internal/config"
	"github.com/yfe404/actor-adopte-get-auth-token/internal/constants"
)

// jsonIndent is the indentation used for JSON output.
const jsonIndent = "  "

// ErrUnsupportedFormat is returned when the output format is not recognized.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// RecordWriter writes the run result record to its destination.
type RecordWriter interface {
	// Write serializes the record and delivers it to the configured destination.
	Write(record any) error
}

// RecordWriterImpl implements the RecordWriter interface.
type RecordWriterImpl struct {
	// format is the serialization format, one of the config output format constants.
	format string
	// path is the destination file; empty means stdout.
	path string
	// stdout is the writer used when no path is configured.
	stdout io.Writer
}

// NewRecordWriter creates a writer for the configured format and destination.
func NewRecordWriter(cfg *config.Config) *RecordWriterImpl {
	return &RecordWriterImpl{
		format: cfg.OutputFormat,
		path:   cfg.OutputPath,
		stdout: os.Stdout,
	}
}

// Write serializes the record and writes it to the file or stdout.
func (w *RecordWriterImpl) Write(record any) error {
	data, err := w.marshal(record)
	if err != nil {
		return fmt.Errorf("failed to serialize run result: %w", err)
	}

	if w.path == "" {
		_, err = w.stdout.Write(data)

		return err
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err = os.MkdirAll(dir, constants.DefaultFolderPermissions); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err = os.WriteFile(w.path, data, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write run result: %w", err)
	}

	return nil
}

func (w *RecordWriterImpl) marshal(record any) ([]byte, error) {
	switch w.format {
	case config.OutputFormatJSON:
		data, err := json.MarshalIndent(record, "", jsonIndent)
		if err != nil {
			return nil, err
		}

		return append(data, '\n'), nil
	case config.OutputFormatYAML:
		return yaml.Marshal(record)
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedFormat, w.format)
	}
}
