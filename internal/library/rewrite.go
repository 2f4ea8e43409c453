package library

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mangotag/mangotag/internal/comicinfo"
)

// ReplaceComicInfo rewrites an archive so its metadata member holds the
// record's XML form. Every other member is copied through byte-identical
// (raw, without recompression). The new archive is written to a temp file
// in the same directory and swapped in with a single rename, so an error
// or interruption at any point leaves the original archive untouched.
func ReplaceComicInfo(path string, record *comicinfo.Record) (err error) {
	// Serialize before touching the filesystem.
	xmlData, err := record.ToXML()
	if err != nil {
		return err
	}

	reader, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", path, err)
	}
	defer reader.Close()

	tmp, err := os.CreateTemp(filepath.Dir(path), ".mangotag-*.cbz")
	if err != nil {
		return fmt.Errorf("creating temp archive: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	writer := zip.NewWriter(tmp)
	for _, member := range reader.File {
		if member.Name == comicinfo.MetadataFilename {
			continue
		}
		if err = writer.Copy(member); err != nil {
			return fmt.Errorf("copying member %s: %w", member.Name, err)
		}
	}

	w, err := writer.Create(comicinfo.MetadataFilename)
	if err != nil {
		return fmt.Errorf("creating %s member: %w", comicinfo.MetadataFilename, err)
	}
	if _, err = w.Write(append(xmlData, '\n')); err != nil {
		return fmt.Errorf("writing %s member: %w", comicinfo.MetadataFilename, err)
	}

	if err = writer.Close(); err != nil {
		return fmt.Errorf("finishing temp archive: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp archive: %w", err)
	}

	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing archive %s: %w", path, err)
	}
	return nil
}
