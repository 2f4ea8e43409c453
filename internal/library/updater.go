package library

import (
	"fmt"
	"log"
	"os"

	"github.com/mangotag/mangotag/internal/comicinfo"
	"github.com/mangotag/mangotag/internal/match"
	"github.com/mangotag/mangotag/internal/source"
)

// Status is the terminal state of one archive update.
type Status string

const (
	StatusDone    Status = "done"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Updater runs the per-archive update flow: parse the filename key, load
// any existing metadata, fetch and select fresh metadata, merge, and
// atomically rewrite the archive's metadata member.
type Updater struct {
	provider  source.Provider
	selector  *match.Selector
	noClobber bool
}

// NewUpdater creates an updater. With noClobber set, archives that
// already carry metadata are skipped untouched.
func NewUpdater(provider source.Provider, selector *match.Selector, noClobber bool) *Updater {
	return &Updater{
		provider:  provider,
		selector:  selector,
		noClobber: noClobber,
	}
}

// UpdateArchive updates one archive and reports its terminal status. On
// StatusFailed and StatusSkipped the archive is untouched; all of
// fetch and merge happen before the first write.
func (u *Updater) UpdateArchive(path string) (Status, error) {
	info, err := os.Stat(path)
	if err != nil {
		return StatusFailed, fmt.Errorf("no archive to update at '%s': %w", path, err)
	}
	if info.IsDir() {
		return StatusFailed, fmt.Errorf("'%s' is a directory, not an archive", path)
	}

	key, err := ParseArchiveKey(path)
	if err != nil {
		return StatusFailed, err
	}

	existing, hasMetadata, err := comicinfo.FromArchive(path)
	if err != nil {
		return StatusFailed, err
	}
	if u.noClobber && hasMetadata {
		return StatusSkipped, nil
	}

	fetched, err := u.fetchMetadata(key.Series)
	if err != nil {
		return StatusFailed, fmt.Errorf("fetching metadata for '%s': %w", key.Series, err)
	}

	merged := existing.Copy()
	merged.Merge(fetched)
	// The filename-derived values always win over whatever the source or
	// prior metadata held.
	merged.Set(comicinfo.FieldVolume, key.Volume)
	merged.Set(comicinfo.FieldNumber, key.Chapter)

	if err := ReplaceComicInfo(path, merged); err != nil {
		return StatusFailed, err
	}
	return StatusDone, nil
}

func (u *Updater) fetchMetadata(name string) (*comicinfo.Record, error) {
	results, err := u.provider.Search(name)
	if err != nil {
		return nil, err
	}
	picked, err := u.selector.Pick(name, results)
	if err != nil {
		return nil, err
	}
	return u.provider.Fetch(picked.Identifier)
}

// UpdateAll runs the updater over every path independently and returns
// the number of failures. Per-item errors are logged with the offending
// path; one bad archive never aborts the batch.
func (u *Updater) UpdateAll(paths []string) int {
	failures := 0
	for _, path := range paths {
		status, err := u.UpdateArchive(path)
		switch status {
		case StatusDone:
			log.Printf("Updated metadata in '%s'.", path)
		case StatusSkipped:
			log.Printf("Skipped '%s': archive already has metadata.", path)
		case StatusFailed:
			log.Printf("ERROR: failed to update '%s': %v", path, err)
			failures++
		}
	}
	return failures
}
