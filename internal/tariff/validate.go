package tariff

import (
	"fmt"
	"io"
	"os"
)

// Report summarizes a tariff source without loading it.
type Report struct {
	Name      string     `json:"name"`
	Schema    string     `json:"schema"`
	TotalRows int        `json:"total_rows"`
	ValidRows int        `json:"valid_rows"`
	Zones     int        `json:"zones"`
	Issues    []RowIssue `json:"issues,omitempty"`
}

// ValidateFile checks the tariff file at path.
func ValidateFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tariff file: %w", err)
	}
	defer f.Close()

	return Validate(f, path)
}

// Validate checks a tariff source. Unlike Loader.Load it fails when the
// source as a whole is unusable. name selects the format, as for files.
func Validate(r io.Reader, name string) (*Report, error) {
	entries, schema, issues, err := parse(r, name)
	if err != nil {
		return nil, err
	}

	return &Report{
		Name:      name,
		Schema:    schema.String(),
		TotalRows: len(entries) + len(issues),
		ValidRows: len(entries),
		Zones:     len(build(entries)),
		Issues:    issues,
	}, nil
}
