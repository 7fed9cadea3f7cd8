package mtgetl

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

var (
	// The canonical header of a raw listing snapshot, as produced by
	// the scraping collaborator
	RawHeader = []string{
		"Name", "Edition", "Price", "Type", "Mana Cost",
	}

	// The canonical headers of the four normalized output tables
	CardDetailsHeader = []string{
		"Card_ID", "Edition_ID", "Name", "Super_Type", "Primary_Type",
		"CMC", "Is_Hybrid", "Generic_Mana", "Is_X",
		"Is_W", "Is_U", "Is_B", "Is_R", "Is_G", "Is_C",
	}
	EditionLookupHeader = []string{
		"Edition_Name", "Edition_ID",
	}
	SubtypeLookupHeader = []string{
		"Subtype_Name", "Subtype_ID",
	}
	CardSubtypeLinkHeader = []string{
		"Card_ID", "Subtype_ID",
	}
)

// File names used when a Dataset is written to a directory
const (
	CardDetailsFile     = "card_details.csv"
	EditionLookupFile   = "edition_lookup.csv"
	SubtypeLookupFile   = "subtype_lookup.csv"
	CardSubtypeLinkFile = "card_subtype_link.csv"
)

var ErrNoSourceFile = errors.New("source file not found")

func checkHeader(first, canonical []string) bool {
	if len(first) < len(canonical) {
		return false
	}
	for i, tag := range canonical {
		if tag != first[i] {
			return false
		}
	}
	return true
}

// LoadRawCSV reads a raw listing snapshot, validating the canonical header.
func LoadRawCSV(r io.Reader) ([]RawListing, error) {
	csvReader := csv.NewReader(r)
	first, err := csvReader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("Empty input file")
	}
	if err != nil {
		return nil, fmt.Errorf("Error reading header: %v", err)
	}

	if !checkHeader(first, RawHeader) {
		return nil, fmt.Errorf("Malformed raw listing file")
	}

	var listings []RawListing
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("Error reading record: %v", err)
		}

		listings = append(listings, RawListing{
			Name:     record[0],
			Edition:  record[1],
			Price:    record[2],
			Type:     record[3],
			ManaCost: record[4],
		})
	}

	return listings, nil
}

// LoadRawFile opens and reads a raw snapshot from disk. A missing file is
// reported as ErrNoSourceFile so callers can tell "not found" from any
// other read failure.
func LoadRawFile(path string) ([]RawListing, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoSourceFile, path)
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadRawCSV(file)
}

func WriteRawCSV(listings []RawListing, w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	err := csvWriter.Write(RawHeader)
	if err != nil {
		return err
	}

	for _, listing := range listings {
		err = csvWriter.Write([]string{
			listing.Name,
			listing.Edition,
			listing.Price,
			listing.Type,
			listing.ManaCost,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func WriteCardDetailsCSV(cards []CardDetail, w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	err := csvWriter.Write(CardDetailsHeader)
	if err != nil {
		return err
	}

	for _, card := range cards {
		err = csvWriter.Write([]string{
			strconv.Itoa(card.CardID),
			strconv.Itoa(card.EditionID),
			card.Name,
			card.SuperType,
			card.PrimaryType,
			strconv.Itoa(card.CMC),
			strconv.FormatBool(card.IsHybrid),
			strconv.Itoa(card.GenericMana),
			strconv.FormatBool(card.IsX),
			strconv.FormatBool(card.IsW),
			strconv.FormatBool(card.IsU),
			strconv.FormatBool(card.IsB),
			strconv.FormatBool(card.IsR),
			strconv.FormatBool(card.IsG),
			strconv.FormatBool(card.IsC),
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func WriteEditionLookupCSV(editions []Edition, w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	err := csvWriter.Write(EditionLookupHeader)
	if err != nil {
		return err
	}

	for _, edition := range editions {
		err = csvWriter.Write([]string{
			edition.Name,
			strconv.Itoa(edition.ID),
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func WriteSubtypeLookupCSV(subtypes []Subtype, w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	err := csvWriter.Write(SubtypeLookupHeader)
	if err != nil {
		return err
	}

	for _, subtype := range subtypes {
		err = csvWriter.Write([]string{
			subtype.Name,
			strconv.Itoa(subtype.ID),
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func WriteCardSubtypeLinkCSV(links []CardSubtypeLink, w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	err := csvWriter.Write(CardSubtypeLinkHeader)
	if err != nil {
		return err
	}

	for _, link := range links {
		err = csvWriter.Write([]string{
			strconv.Itoa(link.CardID),
			strconv.Itoa(link.SubtypeID),
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// WriteDataset saves all four tables under the given directory with their
// canonical file names, creating the directory if needed.
func WriteDataset(dataset *Dataset, outputDir string) error {
	err := os.MkdirAll(outputDir, 0755)
	if err != nil {
		return err
	}

	writers := []struct {
		fileName string
		write    func(io.Writer) error
	}{
		{CardDetailsFile, func(w io.Writer) error {
			return WriteCardDetailsCSV(dataset.Cards, w)
		}},
		{EditionLookupFile, func(w io.Writer) error {
			return WriteEditionLookupCSV(dataset.Editions, w)
		}},
		{SubtypeLookupFile, func(w io.Writer) error {
			return WriteSubtypeLookupCSV(dataset.Subtypes, w)
		}},
		{CardSubtypeLinkFile, func(w io.Writer) error {
			return WriteCardSubtypeLinkCSV(dataset.Links, w)
		}},
	}

	for _, table := range writers {
		file, err := os.Create(filepath.Join(outputDir, table.fileName))
		if err != nil {
			return err
		}
		err = table.write(file)
		file.Close()
		if err != nil {
			return err
		}
	}

	return nil
}

// baseSource replays a previously saved snapshot as a Source.
type baseSource struct {
	listings []RawListing
	loadDate time.Time
}

// NewSourceFromCSV returns a Source backed by a raw CSV snapshot.
func NewSourceFromCSV(r io.Reader) (Source, error) {
	listings, err := LoadRawCSV(r)
	if err != nil {
		return nil, err
	}
	return &baseSource{
		listings: listings,
		loadDate: time.Now(),
	}, nil
}

func (bs *baseSource) Listings() ([]RawListing, error) {
	return bs.listings, nil
}

func (bs *baseSource) Info() (info SourceInfo) {
	info.Name = "Raw CSV Snapshot"
	info.Shorthand = "CSV"
	info.ListingTimestamp = bs.loadDate
	return
}
