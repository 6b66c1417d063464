package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/flowers-delivery/internal/tariff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	chdirTemp(t)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeTariffs(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tariffs.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidate(t *testing.T) {
	path := writeTariffs(t, "aliases,cost,label\nуфа,1000,Уфа\nким,abc,Ким\n")

	out, err := run(t, "validate", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Schema:     flat")
	assert.Contains(t, out, "Valid rows: 1")
	assert.Contains(t, out, "row 3: bad_cost")

	out, err = run(t, "validate", "--file", path, "--json")
	require.NoError(t, err)
	var report tariff.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.TotalRows)

	_, err = run(t, "validate", "--file", path, "--min-valid", "2")
	assert.ErrorContains(t, err, "1 valid rows")
}

func TestValidate_Errors(t *testing.T) {
	_, err := run(t, "validate")
	assert.Error(t, err, "--file is required")

	_, err = run(t, "validate", "--file", writeTariffs(t, "a,b\n1,2\n"))
	assert.ErrorIs(t, err, tariff.ErrUnknownSchema)
}

func TestShow(t *testing.T) {
	path := writeTariffs(t, "aliases,cost,label\nуфа|уфа город,1000,Уфа\nким,300,Ким\n")

	out, err := run(t, "show", "--tariffs", path)
	require.NoError(t, err)
	assert.Contains(t, out, "3 zones")
	assert.Contains(t, out, "1000.00")
	assert.Contains(t, out, "уфа город | уфа")
	assert.Contains(t, out, "Раевка / Раевский")

	out, err = run(t, "show", "--tariffs", filepath.Join(t.TempDir(), "absent.csv"))
	require.NoError(t, err)
	assert.Contains(t, out, "built-in defaults")
}

func TestQuote(t *testing.T) {
	path := writeTariffs(t, "aliases,cost,label\nуфа,1000,Уфа\n")

	out, err := run(t, "quote", "--tariffs", path, "г. Уфа,", "ул. Ленина 1")
	require.NoError(t, err)
	assert.Contains(t, out, "Доставка: 1000.00 ₽")
	assert.Contains(t, out, "Source: fixed-tariff")
	assert.Contains(t, out, "Zone:   Уфа")

	out, err = run(t, "quote", "--tariffs", path, "Москва")
	require.NoError(t, err)
	assert.Contains(t, out, "Source: manual")

	_, err = run(t, "quote")
	assert.Error(t, err)
}

// chdirTemp changes into a fresh temp dir and restores the previous working
// directory on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdirTemp(t *testing.T) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
