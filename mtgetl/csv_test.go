package mtgetl

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var rawSnapshot = `Name,Edition,Price,Type,Mana Cost
+2 Mace,Cheapest Recent Printing - Adventures in the Forgotten Realms,0.05,Artifact - Equipment,sym_1 sym_W
A Display of My Dark Power,Cheapest Recent Printing - Archenemy,22.95,Scheme,
`

func TestLoadRawCSV(t *testing.T) {
	listings, err := LoadRawCSV(strings.NewReader(rawSnapshot))
	if err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}
	if len(listings) != 2 {
		t.Fatalf("FAIL: Expected 2 listings, got %d", len(listings))
	}
	if listings[0].Name != "+2 Mace" || listings[0].ManaCost != "sym_1 sym_W" {
		t.Errorf("FAIL: unexpected first listing: %+v", listings[0])
	}
	if listings[1].Price != "22.95" || listings[1].ManaCost != "" {
		t.Errorf("FAIL: unexpected second listing: %+v", listings[1])
	}
}

func TestLoadRawCSVBadHeader(t *testing.T) {
	_, err := LoadRawCSV(strings.NewReader("Name,Set,Price\nfoo,bar,baz\n"))
	if err == nil {
		t.Errorf("FAIL: Expected an error on a malformed header")
	}

	_, err = LoadRawCSV(strings.NewReader(""))
	if err == nil {
		t.Errorf("FAIL: Expected an error on an empty file")
	}
}

func TestRawCSVRoundTrip(t *testing.T) {
	listings, err := LoadRawCSV(strings.NewReader(rawSnapshot))
	if err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}

	var buf bytes.Buffer
	err = WriteRawCSV(listings, &buf)
	if err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}

	reloaded, err := LoadRawCSV(&buf)
	if err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}
	if len(reloaded) != len(listings) {
		t.Fatalf("FAIL: Expected %d listings after round trip, got %d", len(listings), len(reloaded))
	}
	for i := range listings {
		if listings[i] != reloaded[i] {
			t.Errorf("FAIL: listing %d changed in round trip: %+v vs %+v", i, listings[i], reloaded[i])
		}
	}
}

func TestLoadRawFileMissing(t *testing.T) {
	_, err := LoadRawFile(filepath.Join(t.TempDir(), "no_such_snapshot.csv"))
	if !errors.Is(err, ErrNoSourceFile) {
		t.Errorf("FAIL: Expected ErrNoSourceFile, got %v", err)
	}
}

func TestWriteDataset(t *testing.T) {
	dataset, err := NewNormalizer().Normalize(sampleListings)
	if err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}

	outputDir := t.TempDir()
	err = WriteDataset(dataset, outputDir)
	if err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}

	headers := map[string][]string{
		CardDetailsFile:     CardDetailsHeader,
		EditionLookupFile:   EditionLookupHeader,
		SubtypeLookupFile:   SubtypeLookupHeader,
		CardSubtypeLinkFile: CardSubtypeLinkHeader,
	}
	for fileName, header := range headers {
		data, err := os.ReadFile(filepath.Join(outputDir, fileName))
		if err != nil {
			t.Fatalf("FAIL: cannot read %s: %s", fileName, err)
		}
		firstLine := strings.SplitN(string(data), "\n", 2)[0]
		expected := strings.Join(header, ",")
		if firstLine != expected {
			t.Errorf("FAIL %s: Expected header '%s' got '%s'", fileName, expected, firstLine)
		}
	}
}

func TestNewSourceFromCSV(t *testing.T) {
	source, err := NewSourceFromCSV(strings.NewReader(rawSnapshot))
	if err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}

	listings, err := source.Listings()
	if err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}
	if len(listings) != 2 {
		t.Errorf("FAIL: Expected 2 listings, got %d", len(listings))
	}
	if source.Info().Shorthand != "CSV" {
		t.Errorf("FAIL: unexpected source info: %+v", source.Info())
	}
}
