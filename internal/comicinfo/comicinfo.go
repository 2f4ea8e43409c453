// Package comicinfo implements the ComicInfo.xml metadata record used by
// comic archive tools. A Record tracks which fields have been explicitly
// set, so serialization can omit unknown fields instead of emitting them
// as empty strings.
package comicinfo

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MetadataFilename is the archive member name used for embedded metadata.
// The name is case-exact.
const MetadataFilename = "ComicInfo.xml"

// Field names referenced directly by code. The full vocabulary lives in
// keyOrder below.
const (
	FieldTitle     = "Title"
	FieldSeries    = "Series"
	FieldNumber    = "Number"
	FieldVolume    = "Volume"
	FieldSummary   = "Summary"
	FieldNotes     = "Notes"
	FieldYear      = "Year"
	FieldWriter    = "Writer"
	FieldPenciller = "Penciller"
	FieldPublisher = "Publisher"
	FieldGenre     = "Genre"
	FieldTags      = "Tags"
	FieldWeb       = "Web"
	FieldManga     = "Manga"
)

// keyOrder is the canonical serialization order for ComicInfo fields.
// Only keys listed here are valid record fields.
var keyOrder = []string{
	FieldTitle, FieldSeries, FieldNumber, "Count", FieldVolume,
	"AlternateSeries", "AlternateNumber", "AlternateCount",
	FieldSummary, FieldNotes, FieldYear, "Month", "Day",
	FieldWriter, FieldPenciller, "Inker", "Colorist", "Letterer", "CoverArtist", "Editor", FieldPublisher,
	"Imprint", FieldGenre, FieldTags, FieldWeb, "PageCount", "LanguageISO", "Format", "BlackAndWhite", FieldManga,
	"Characters", "Teams", "Locations", "ScanInformation", "StoryArc", "SeriesGroup", "AgeRating",
	"Pages", "CommunityRating", "MainCharacterOrTeam", "Review",
}

var knownFields = func() map[string]bool {
	m := make(map[string]bool, len(keyOrder))
	for _, k := range keyOrder {
		m[k] = true
	}
	return m
}()

var (
	// ErrUnknownField is returned when a key outside the ComicInfo
	// vocabulary is used.
	ErrUnknownField = errors.New("unknown comicinfo field")
	// ErrFieldNotSet is returned by Get for a valid field that has not
	// been set on this record. It indicates a logic bug in the caller,
	// not bad user input.
	ErrFieldNotSet = errors.New("comicinfo field not set")
)

// Record is an ordered set of ComicInfo fields plus a structured notes
// map. Notes are kept as a real map and only encoded to JSON when the
// record crosses the XML boundary.
type Record struct {
	fields map[string]string
	notes  map[string]any
}

// New returns a record with the two default fields every record carries:
// Manga set to "Yes" and an empty notes map.
func New() *Record {
	return &Record{
		fields: map[string]string{FieldManga: "Yes"},
		notes:  map[string]any{},
	}
}

// Has reports whether the field has been set. The Notes field is always
// present.
func (r *Record) Has(key string) bool {
	if key == FieldNotes {
		return true
	}
	_, ok := r.fields[key]
	return ok
}

// Get returns the value of a set field. Asking for the Notes field
// returns the JSON encoding of the notes map.
func (r *Record) Get(key string) (string, error) {
	if !knownFields[key] {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	if key == FieldNotes {
		return r.encodedNotes()
	}
	value, ok := r.fields[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrFieldNotSet, key)
	}
	return value, nil
}

// Set assigns a field value. Setting the Notes field expects a JSON
// object and replaces the notes map with its contents.
func (r *Record) Set(key, value string) error {
	if !knownFields[key] {
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	if key == FieldNotes {
		notes := map[string]any{}
		if err := json.Unmarshal([]byte(value), &notes); err != nil {
			return fmt.Errorf("invalid notes payload: %w", err)
		}
		r.notes = notes
		return nil
	}
	r.fields[key] = value
	return nil
}

// PutNote stores a structured value in the notes map. The value must be
// JSON-serializable.
func (r *Record) PutNote(key string, value any) {
	r.notes[key] = value
}

// Note returns a note value and whether it exists.
func (r *Record) Note(key string) (any, bool) {
	v, ok := r.notes[key]
	return v, ok
}

// Merge folds other into r: every field set on other overwrites the
// corresponding field of r, and fields of r that other never set are left
// alone. The default fields count as set, so merging a fresh record
// overwrites Manga and the notes map. Merge never deletes a field.
func (r *Record) Merge(other *Record) {
	for key, value := range other.fields {
		r.fields[key] = value
	}
	r.notes = cloneNotes(other.notes)
}

// Copy returns an independent record with the same field values. Mutating
// either record afterwards does not affect the other.
func (r *Record) Copy() *Record {
	dup := &Record{
		fields: make(map[string]string, len(r.fields)),
		notes:  cloneNotes(r.notes),
	}
	for key, value := range r.fields {
		dup.fields[key] = value
	}
	return dup
}

func (r *Record) encodedNotes() (string, error) {
	data, err := json.Marshal(r.notes)
	if err != nil {
		return "", fmt.Errorf("encoding notes: %w", err)
	}
	return string(data), nil
}

// cloneNotes deep-copies a notes map through a JSON round trip, so nested
// slices and maps are not shared.
func cloneNotes(notes map[string]any) map[string]any {
	data, err := json.Marshal(notes)
	if err != nil {
		// Notes only ever hold JSON-serializable values; a failure here
		// is a programming error.
		panic(fmt.Sprintf("comicinfo: unserializable notes: %v", err))
	}
	dup := map[string]any{}
	if err := json.Unmarshal(data, &dup); err != nil {
		panic(fmt.Sprintf("comicinfo: cloning notes: %v", err))
	}
	return dup
}
