package tariff

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"go.uber.org/zap"
)

// DefaultPath is used when no tariff file is configured.
const DefaultPath = "data/delivery_tariffs.csv"

// Loader builds tariff tables from a configured source file.
type Loader struct {
	path   string
	logger *zap.Logger
}

// NewLoader creates a Loader. An empty path falls back to DefaultPath.
func NewLoader(path string, logger *zap.Logger) *Loader {
	if path == "" {
		path = DefaultPath
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{path: path, logger: logger}
}

// Path returns the resolved source path.
func (l *Loader) Path() string {
	return l.path
}

// Load reads the source file and merges it over the built-in defaults. It
// never fails: a missing, unreadable or unrecognized file yields a table of
// defaults only, and malformed rows are skipped.
func (l *Loader) Load() *Table {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("Tariff file not found, using default tariffs", zap.String("path", l.path))
		} else {
			l.logger.Warn("Cannot open tariff file, using default tariffs", zap.String("path", l.path), zap.Error(err))
		}
		return NewTable(Defaults(), "", SchemaUnknown)
	}
	defer f.Close()

	entries, schema, issues, err := parse(f, l.path)
	if err != nil {
		l.logger.Warn("Cannot parse tariff file, using default tariffs", zap.String("path", l.path), zap.Error(err))
		return NewTable(Defaults(), "", SchemaUnknown)
	}

	for _, issue := range issues {
		if issue.Kind == IssueEmptyRow {
			l.logger.Debug("Skipping empty tariff row", zap.String("path", l.path), zap.Int("row", issue.Row))
			continue
		}
		l.logger.Warn("Skipping invalid tariff row",
			zap.String("path", l.path),
			zap.Int("row", issue.Row),
			zap.String("kind", string(issue.Kind)),
			zap.String("value", issue.Value))
	}

	if len(entries) == 0 {
		l.logger.Warn("Tariff file has no valid rows, using default tariffs", zap.String("path", l.path))
	}

	table := NewTable(append(Defaults(), entries...), l.path, schema)
	l.logger.Info("Loaded delivery tariffs",
		zap.String("path", l.path),
		zap.String("schema", schema.String()),
		zap.Int("rows", len(entries)),
		zap.Int("zones", table.Len()))
	return table
}

// parse reads a whole tariff source. An error means the source as a whole is
// unusable; row-level problems are returned as issues.
func parse(r io.Reader, name string) ([]Entry, Schema, []RowIssue, error) {
	rows, err := readRows(r, name)
	if err != nil {
		return nil, SchemaUnknown, nil, err
	}
	if len(rows) == 0 {
		return nil, SchemaUnknown, nil, fmt.Errorf("%w: file is empty", ErrUnknownSchema)
	}

	schema, cols := detectSchema(rows[0])
	if schema == SchemaUnknown {
		return nil, SchemaUnknown, nil, fmt.Errorf("%w: header %q", ErrUnknownSchema, rows[0])
	}

	entries, issues := parseRows(schema, cols, rows[1:])
	return entries, schema, issues, nil
}
