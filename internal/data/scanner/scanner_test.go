package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileScanner(t *testing.T) {
	baseDir := "/tmp/test"
	scanner := NewFileScanner(baseDir)

	assert.NotNil(t, scanner)
	assert.Equal(t, baseDir, scanner.baseDir)
	assert.Equal(t, []string{".json", ".jsonl"}, scanner.extensions)
}

func TestFileScannerScanEmptyDirectory(t *testing.T) {
	files, err := NewFileScanner(t.TempDir()).Scan()

	require.NoError(t, err)
	assert.Empty(t, files, "Empty directory should return no files")
}

func TestFileScannerScanNonExistentDirectory(t *testing.T) {
	files, err := NewFileScanner("/path/that/does/not/exist").Scan()

	require.NoError(t, err, "Scanner should handle non-existent directory gracefully")
	assert.Empty(t, files)
}

func TestFileScannerScanWithLogFiles(t *testing.T) {
	tempDir := t.TempDir()

	testFiles := []struct {
		path    string
		matched bool
	}{
		{"2024-03-02.json", true},
		{"2024-03-01.json", true},
		{"TRIP.JSON", true},
		{"week.jsonl", true},
		{"readme.txt", false},
		{"subdir/2024-03-03.json", true},
		{"subdir/other.log", false},
	}

	var expected []string
	for _, file := range testFiles {
		fullPath := filepath.Join(tempDir, file.path)
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0755))
		require.NoError(t, os.WriteFile(fullPath, []byte("{}"), 0644))
		if file.matched {
			expected = append(expected, fullPath)
		}
	}

	files, err := NewFileScanner(tempDir).Scan()
	require.NoError(t, err)
	assert.ElementsMatch(t, expected, files)

	// Results come back sorted so dates stay in order.
	assert.Equal(t, filepath.Join(tempDir, "2024-03-01.json"), files[0])
	assert.Equal(t, filepath.Join(tempDir, "2024-03-02.json"), files[1])
}
