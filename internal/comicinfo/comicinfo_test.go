package comicinfo_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/mangotag/mangotag/internal/comicinfo"
	"github.com/mangotag/mangotag/internal/testutil"
)

func TestRecordDefaults(t *testing.T) {
	record := comicinfo.New()

	manga, err := record.Get(comicinfo.FieldManga)
	if err != nil {
		t.Fatalf("Get(Manga) returned an error: %v", err)
	}
	if manga != "Yes" {
		t.Errorf("Expected default Manga 'Yes', got '%s'", manga)
	}

	notes, err := record.Get(comicinfo.FieldNotes)
	if err != nil {
		t.Fatalf("Get(Notes) returned an error: %v", err)
	}
	if notes != "{}" {
		t.Errorf("Expected empty notes '{}', got '%s'", notes)
	}
}

func TestRecordGetSet(t *testing.T) {
	record := comicinfo.New()

	t.Run("Unset Field", func(t *testing.T) {
		_, err := record.Get(comicinfo.FieldTitle)
		if !errors.Is(err, comicinfo.ErrFieldNotSet) {
			t.Errorf("Expected ErrFieldNotSet, got %v", err)
		}
	})

	t.Run("Unknown Field", func(t *testing.T) {
		if _, err := record.Get("NotAField"); !errors.Is(err, comicinfo.ErrUnknownField) {
			t.Errorf("Expected ErrUnknownField from Get, got %v", err)
		}
		if err := record.Set("NotAField", "x"); !errors.Is(err, comicinfo.ErrUnknownField) {
			t.Errorf("Expected ErrUnknownField from Set, got %v", err)
		}
	})

	t.Run("Set Then Get", func(t *testing.T) {
		if err := record.Set(comicinfo.FieldTitle, "One Piece"); err != nil {
			t.Fatalf("Set returned an error: %v", err)
		}
		title, err := record.Get(comicinfo.FieldTitle)
		if err != nil {
			t.Fatalf("Get returned an error: %v", err)
		}
		if title != "One Piece" {
			t.Errorf("Expected 'One Piece', got '%s'", title)
		}
	})

	t.Run("Known Empty Is Set", func(t *testing.T) {
		if err := record.Set(comicinfo.FieldSummary, ""); err != nil {
			t.Fatalf("Set returned an error: %v", err)
		}
		if !record.Has(comicinfo.FieldSummary) {
			t.Error("Expected Summary to be set after Set(\"\")")
		}
	})
}

func TestRecordNotes(t *testing.T) {
	record := comicinfo.New()
	record.PutNote("associated_names", []string{"OP", "Wan Pisu"})

	notes, err := record.Get(comicinfo.FieldNotes)
	if err != nil {
		t.Fatalf("Get(Notes) returned an error: %v", err)
	}
	if notes != `{"associated_names":["OP","Wan Pisu"]}` {
		t.Errorf("Unexpected notes encoding: %s", notes)
	}

	if err := record.Set(comicinfo.FieldNotes, `{"score": 8}`); err != nil {
		t.Fatalf("Set(Notes) returned an error: %v", err)
	}
	if _, ok := record.Note("associated_names"); ok {
		t.Error("Expected Set(Notes) to replace the notes map")
	}
	if score, ok := record.Note("score"); !ok || score != float64(8) {
		t.Errorf("Expected score note 8, got %v (present=%v)", score, ok)
	}

	if err := record.Set(comicinfo.FieldNotes, "not json"); err == nil {
		t.Error("Expected an error for a non-JSON notes payload")
	}
}

func TestRecordMerge(t *testing.T) {
	a := comicinfo.New()
	a.Set(comicinfo.FieldSeries, "Berserk")
	a.Set(comicinfo.FieldYear, "1989")

	b := comicinfo.New()
	b.Set(comicinfo.FieldSeries, "Berserk (1989)")
	b.Set(comicinfo.FieldWriter, "Kentaro Miura")

	a.Merge(b)

	series, _ := a.Get(comicinfo.FieldSeries)
	if series != "Berserk (1989)" {
		t.Errorf("Expected merged series to win, got '%s'", series)
	}
	writer, _ := a.Get(comicinfo.FieldWriter)
	if writer != "Kentaro Miura" {
		t.Errorf("Expected writer from merged record, got '%s'", writer)
	}
	// Fields the other record never touched survive.
	year, err := a.Get(comicinfo.FieldYear)
	if err != nil || year != "1989" {
		t.Errorf("Expected untouched year '1989', got '%s' (err=%v)", year, err)
	}
}

func TestRecordCopy(t *testing.T) {
	original := comicinfo.New()
	original.Set(comicinfo.FieldTitle, "Akira")
	original.PutNote("associated_names", []string{"AKIRA"})

	dup := original.Copy()
	dup.Set(comicinfo.FieldTitle, "Dominion")
	dup.PutNote("associated_names", []string{"changed"})

	title, _ := original.Get(comicinfo.FieldTitle)
	if title != "Akira" {
		t.Errorf("Mutating the copy changed the original title: '%s'", title)
	}
	notes, _ := original.Get(comicinfo.FieldNotes)
	if notes != `{"associated_names":["AKIRA"]}` {
		t.Errorf("Mutating the copy changed the original notes: %s", notes)
	}
}

func TestXMLRoundTrip(t *testing.T) {
	record := comicinfo.New()
	record.Set(comicinfo.FieldTitle, "Planetes")
	record.Set(comicinfo.FieldSeries, "Planetes")
	record.Set(comicinfo.FieldVolume, "1")
	record.Set(comicinfo.FieldSummary, "Space debris collectors & dreams.")
	record.Set(comicinfo.FieldWriter, "Makoto Yukimura")
	record.PutNote("associated_names", []string{"Puranetesu"})

	out, err := record.ToXML()
	if err != nil {
		t.Fatalf("ToXML returned an error: %v", err)
	}

	parsed, err := comicinfo.FromXML(out)
	if err != nil {
		t.Fatalf("FromXML returned an error: %v", err)
	}

	for _, key := range []string{
		comicinfo.FieldTitle, comicinfo.FieldSeries, comicinfo.FieldVolume,
		comicinfo.FieldSummary, comicinfo.FieldWriter, comicinfo.FieldNotes,
		comicinfo.FieldManga,
	} {
		want, err := record.Get(key)
		if err != nil {
			t.Fatalf("Get(%s) on original failed: %v", key, err)
		}
		got, err := parsed.Get(key)
		if err != nil {
			t.Fatalf("Get(%s) on parsed record failed: %v", key, err)
		}
		if got != want {
			t.Errorf("Field %s: expected '%s', got '%s'", key, want, got)
		}
	}
}

func TestXMLCanonicalOrder(t *testing.T) {
	record := comicinfo.New()
	// Set in reverse of canonical order on purpose.
	record.Set(comicinfo.FieldWeb, "https://example.com")
	record.Set(comicinfo.FieldSummary, "A summary.")
	record.Set(comicinfo.FieldTitle, "Monster")

	out, err := record.ToXML()
	if err != nil {
		t.Fatalf("ToXML returned an error: %v", err)
	}
	xml := string(out)

	titleIdx := strings.Index(xml, "<Title>")
	summaryIdx := strings.Index(xml, "<Summary>")
	webIdx := strings.Index(xml, "<Web>")
	if titleIdx == -1 || summaryIdx == -1 || webIdx == -1 {
		t.Fatalf("Missing expected elements in output:\n%s", xml)
	}
	if !(titleIdx < summaryIdx && summaryIdx < webIdx) {
		t.Errorf("Fields are not in canonical order:\n%s", xml)
	}
	if strings.Contains(xml, "<Year>") {
		t.Errorf("Unset field was serialized:\n%s", xml)
	}
}

func TestFromArchive(t *testing.T) {
	dir := t.TempDir()

	t.Run("With Metadata", func(t *testing.T) {
		record := comicinfo.New()
		record.Set(comicinfo.FieldSeries, "Yotsuba&!")
		out, err := record.ToXML()
		if err != nil {
			t.Fatalf("ToXML returned an error: %v", err)
		}
		path := testutil.CreateTestCBZ(t, dir, "with-meta.cbz", map[string]string{
			"001.jpg":                  "page one",
			comicinfo.MetadataFilename: string(out) + "\n",
		})

		parsed, found, err := comicinfo.FromArchive(path)
		if err != nil {
			t.Fatalf("FromArchive returned an error: %v", err)
		}
		if !found {
			t.Fatal("Expected metadata to be reported as present")
		}
		series, _ := parsed.Get(comicinfo.FieldSeries)
		if series != "Yotsuba&!" {
			t.Errorf("Expected series 'Yotsuba&!', got '%s'", series)
		}
	})

	t.Run("Without Metadata", func(t *testing.T) {
		path := testutil.CreateTestCBZ(t, dir, "no-meta.cbz", map[string]string{
			"001.jpg": "page one",
		})

		record, found, err := comicinfo.FromArchive(path)
		if err != nil {
			t.Fatalf("FromArchive returned an error: %v", err)
		}
		if found {
			t.Error("Expected metadata to be reported as absent")
		}
		if record == nil || !record.Has(comicinfo.FieldManga) {
			t.Error("Expected a default-constructed record for an archive without metadata")
		}
	})
}

func TestToJSON(t *testing.T) {
	record := comicinfo.New()
	record.Set(comicinfo.FieldTitle, "Vinland Saga")
	record.PutNote("associated_names", []string{"Vinrando Saga"})

	out, err := record.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON returned an error: %v", err)
	}
	text := string(out)
	if !strings.Contains(text, `"Title": "Vinland Saga"`) {
		t.Errorf("Missing title in JSON output:\n%s", text)
	}
	// Notes must be a nested object, not an encoded string.
	if !strings.Contains(text, `"associated_names": [`) {
		t.Errorf("Notes were not nested in JSON output:\n%s", text)
	}
}
