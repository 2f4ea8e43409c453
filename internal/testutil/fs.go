package testutil

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// CreateTestCBZ creates a CBZ file whose members have the given names and
// contents. It's useful for testing metadata reads and archive rewrites.
func CreateTestCBZ(t *testing.T, dir, name string, members map[string]string) string {
	t.Helper()
	filePath := filepath.Join(dir, name)
	file, err := os.Create(filePath)
	if err != nil {
		t.Fatalf("Failed to create temp cbz file: %v", err)
	}
	defer file.Close()

	zipWriter := zip.NewWriter(file)
	defer zipWriter.Close()

	for memberName, contents := range members {
		w, err := zipWriter.Create(memberName)
		if err != nil {
			t.Fatalf("Failed to create entry '%s' in zip: %v", memberName, err)
		}
		if _, err := w.Write([]byte(contents)); err != nil {
			t.Fatalf("Failed to write entry '%s' in zip: %v", memberName, err)
		}
	}
	return filePath
}

// ReadCBZMembers returns the contents of every member in a CBZ archive,
// keyed by member name.
func ReadCBZMembers(t *testing.T, path string) map[string]string {
	t.Helper()
	reader, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("Failed to open cbz '%s': %v", path, err)
	}
	defer reader.Close()

	members := make(map[string]string, len(reader.File))
	for _, member := range reader.File {
		rc, err := member.Open()
		if err != nil {
			t.Fatalf("Failed to open member '%s': %v", member.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("Failed to read member '%s': %v", member.Name, err)
		}
		members[member.Name] = string(data)
	}
	return members
}
