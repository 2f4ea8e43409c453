// XML and JSON forms of a Record, plus reading the metadata member out of
// a CBZ archive.

package comicinfo

import (
	"archive/zip"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

const xmlIndent = "    "

type xmlField struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

type xmlDocument struct {
	XMLName xml.Name   `xml:"ComicInfo"`
	Fields  []xmlField `xml:",any"`
}

// ToXML serializes the record as a ComicInfo document. Children appear in
// the canonical key order; unset fields are omitted entirely. The result
// carries no trailing newline.
func (r *Record) ToXML() ([]byte, error) {
	doc := xmlDocument{}
	for _, key := range keyOrder {
		if !r.Has(key) {
			continue
		}
		value, err := r.Get(key)
		if err != nil {
			return nil, err
		}
		doc.Fields = append(doc.Fields, xmlField{
			XMLName: xml.Name{Local: key},
			Value:   value,
		})
	}

	out, err := xml.MarshalIndent(doc, "", xmlIndent)
	if err != nil {
		return nil, fmt.Errorf("serializing comicinfo: %w", err)
	}
	return out, nil
}

// WriteFile writes the XML form to a sidecar file with a trailing newline.
func (r *Record) WriteFile(path string) error {
	out, err := r.ToXML()
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(out, '\n'), 0644)
}

// ToJSON renders the record for stdout output: one key per set field,
// with the notes map nested as a real JSON object. Keys are sorted.
func (r *Record) ToJSON() ([]byte, error) {
	out := make(map[string]any, len(r.fields)+1)
	for key, value := range r.fields {
		out[key] = value
	}
	out[FieldNotes] = r.notes
	return json.MarshalIndent(out, "", xmlIndent)
}

// FromXML parses a ComicInfo document into a record. Tags outside the
// canonical vocabulary are ignored.
func FromXML(data []byte) (*Record, error) {
	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing comicinfo: %w", err)
	}

	record := New()
	for _, field := range doc.Fields {
		key := field.XMLName.Local
		if !knownFields[key] {
			continue
		}
		if err := record.Set(key, field.Value); err != nil {
			return nil, err
		}
	}
	return record, nil
}

// FromArchive reads the metadata member of a CBZ archive. The boolean
// reports whether the archive held any metadata at all: a fresh record
// and a record parsed from an empty document are otherwise
// indistinguishable, and the updater's no-clobber policy depends on the
// difference.
func FromArchive(path string) (*Record, bool, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, false, fmt.Errorf("opening archive %s: %w", path, err)
	}
	defer reader.Close()

	for _, member := range reader.File {
		if member.Name != MetadataFilename {
			continue
		}
		rc, err := member.Open()
		if err != nil {
			return nil, false, fmt.Errorf("opening %s in %s: %w", MetadataFilename, path, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, false, fmt.Errorf("reading %s in %s: %w", MetadataFilename, path, err)
		}
		record, err := FromXML(data)
		if err != nil {
			return nil, false, err
		}
		return record, true, nil
	}

	return New(), false, nil
}
