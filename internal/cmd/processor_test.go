package cmd

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func buildTestArchive(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)
	for name, content := range entries {
		writer, err := zipWriter.Create(name)
		require.NoError(t, err)
		_, err = writer.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zipWriter.Close())
	return buf.Bytes()
}

func TestWriteCertificateDir(t *testing.T) {
	archive := buildTestArchive(t, map[string]string{
		"Certificate_014501.docx": "one",
		"Certificate_014502.docx": "two",
	})
	outputDir := filepath.Join(t.TempDir(), "out")

	require.NoError(t, writeCertificateDir(zap.NewNop(), archive, outputDir))

	one, err := os.ReadFile(filepath.Join(outputDir, "Certificate_014501.docx"))
	require.NoError(t, err)
	assert.Equal(t, "one", string(one))

	two, err := os.ReadFile(filepath.Join(outputDir, "Certificate_014502.docx"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(two))
}

func TestWriteCertificateDir_InvalidArchive(t *testing.T) {
	err := writeCertificateDir(zap.NewNop(), []byte("not a zip"), t.TempDir())
	assert.Error(t, err)
}
