// Package library updates the metadata embedded in CBZ archives on disk.
// Series, volume and chapter are inferred from the archive's filename,
// fresh metadata is fetched from a source, and the archive's metadata
// member is rewritten atomically.
package library

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Archive filenames follow the convention "<name> v<digits> c<digits>.cbz",
// with an optional trailing letter on the chapter (e.g. "c015a").
var archiveNameRe = regexp.MustCompile(`^(.+)\s+v(\d+)\s+c(\d+[a-z]?)\.cbz$`)

// ErrKeyFormat is returned for filenames that don't follow the naming
// convention.
var ErrKeyFormat = errors.New("cannot parse name/volume/chapter from archive name")

// ArchiveKey is the series/volume/chapter triple derived from an archive
// filename. The filename is authoritative: these values override anything
// a source or prior metadata held.
type ArchiveKey struct {
	Series  string
	Volume  string
	Chapter string
}

// ParseArchiveKey extracts an ArchiveKey from an archive path. The volume
// drops leading zeros ("v03" becomes "3"); the chapter is kept verbatim
// ("c015" stays "015").
func ParseArchiveKey(path string) (ArchiveKey, error) {
	base := strings.TrimSpace(filepath.Base(path))
	match := archiveNameRe.FindStringSubmatch(base)
	if match == nil {
		return ArchiveKey{}, fmt.Errorf("%w: '%s'", ErrKeyFormat, base)
	}

	volume, err := strconv.Atoi(match[2])
	if err != nil {
		return ArchiveKey{}, fmt.Errorf("%w: '%s'", ErrKeyFormat, base)
	}

	return ArchiveKey{
		Series:  strings.TrimSpace(match[1]),
		Volume:  strconv.Itoa(volume),
		Chapter: match[3],
	}, nil
}
