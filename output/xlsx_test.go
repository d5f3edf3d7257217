package output_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/shanto12/google-search/output"
)

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.xlsx")
	require.NoError(t, output.WriteXLSX(sampleResults(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Results")
	require.NoError(t, err)
	require.Len(t, rows, 4, "header plus one row per (URL, email) pair")

	assert.Equal(t, []string{"URL", "Email"}, rows[0])
	assert.Equal(t, []string{"https://a.example/", "info@a.example"}, rows[1])
	assert.Equal(t, []string{"https://a.example/", "shared@x.example"}, rows[2])
	assert.Equal(t, []string{"https://b.example/about", "shared@x.example"}, rows[3])
}

func TestWriteXLSX_EmptyResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, output.WriteXLSX(nil, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Results")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"URL", "Email"}, rows[0])
}
