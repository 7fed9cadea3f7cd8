package mtgetl

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

var sampleListings = []RawListing{
	{
		Name:     "\"Brims\" Barone, Midway Mobster",
		Edition:  "Cheapest Recent Printing - Unfinity",
		Price:    "0.07",
		Type:     "Legendary Creature - Human Rogue",
		ManaCost: "sym_3 sym_W sym_B",
	},
	{
		Name:     "\"Lifetime\" Pass Holder",
		Edition:  "Cheapest Recent Printing - Unfinity",
		Price:    "0.22",
		Type:     "Creature - Zombie Guest",
		ManaCost: "sym_B",
	},
	{
		Name:     "\"Rumors of My Death . . .\"",
		Edition:  "Cheapest Recent Printing - Unstable",
		Price:    "0.10",
		Type:     "Enchantment",
		ManaCost: "sym_2 sym_B",
	},
	{
		Name:     "+2 Mace",
		Edition:  "Cheapest Recent Printing - Adventures in the Forgotten Realms",
		Price:    "0.05",
		Type:     "Artifact - Equipment",
		ManaCost: "sym_1 sym_W",
	},
	{
		Name:     "A Display of My Dark Power",
		Edition:  "Cheapest Recent Printing - Archenemy",
		Price:    "22.95",
		Type:     "Scheme",
		ManaCost: "",
	},
}

func findCard(t *testing.T, cards []CardDetail, name string) CardDetail {
	t.Helper()
	for _, card := range cards {
		if card.Name == name {
			return card
		}
	}
	t.Fatalf("FAIL: card %s not found in fact table", name)
	return CardDetail{}
}

func TestNormalizeSample(t *testing.T) {
	dataset, err := NewNormalizer().Normalize(sampleListings)
	if err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}

	if len(dataset.Cards) != len(sampleListings) {
		t.Fatalf("FAIL: Expected %d fact rows, got %d", len(sampleListings), len(dataset.Cards))
	}

	barone := findCard(t, dataset.Cards, "\"Brims\" Barone, Midway Mobster")
	if barone.SuperType != "Legendary" || barone.PrimaryType != "Creature" {
		t.Errorf("FAIL: unexpected types: %+v", barone)
	}
	if barone.CMC != 5 || barone.GenericMana != 3 || !barone.IsW || !barone.IsB {
		t.Errorf("FAIL: unexpected mana parse: %+v", barone)
	}

	scheme := findCard(t, dataset.Cards, "A Display of My Dark Power")
	if scheme.CMC != 0 || scheme.IsHybrid || scheme.IsX {
		t.Errorf("FAIL: costless card should stay all-zero: %+v", scheme)
	}

	// Edition prefix is stripped before the lookup is built
	editionNames := map[string]bool{}
	for _, edition := range dataset.Editions {
		if strings.Contains(edition.Name, "Cheapest Recent Printing") {
			t.Errorf("FAIL: edition prefix not stripped: %s", edition.Name)
		}
		editionNames[edition.Name] = true
	}
	for _, name := range []string{"Unfinity", "Unstable", "Adventures in the Forgotten Realms", "Archenemy"} {
		if !editionNames[name] {
			t.Errorf("FAIL: missing edition %s", name)
		}
	}
	if len(dataset.Editions) != 4 {
		t.Errorf("FAIL: Expected 4 distinct editions, got %d", len(dataset.Editions))
	}
}

func TestNormalizeSurrogateKeys(t *testing.T) {
	dataset, err := NewNormalizer().Normalize(sampleListings)
	if err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}

	// Card_ID is dense, 1-based, in processing order
	for i, card := range dataset.Cards {
		if card.CardID != i+1 {
			t.Errorf("FAIL: Expected Card_ID %d at position %d, got %d", i+1, i, card.CardID)
		}
	}
	for i, edition := range dataset.Editions {
		if edition.ID != i+1 {
			t.Errorf("FAIL: Expected Edition_ID %d at position %d, got %d", i+1, i, edition.ID)
		}
	}
	for i, subtype := range dataset.Subtypes {
		if subtype.ID != i+1 {
			t.Errorf("FAIL: Expected Subtype_ID %d at position %d, got %d", i+1, i, subtype.ID)
		}
	}

	// Every link resolves to existing fact and lookup rows
	for _, link := range dataset.Links {
		if link.CardID < 1 || link.CardID > len(dataset.Cards) {
			t.Errorf("FAIL: link Card_ID %d out of range", link.CardID)
		}
		if link.SubtypeID < 1 || link.SubtypeID > len(dataset.Subtypes) {
			t.Errorf("FAIL: link Subtype_ID %d out of range", link.SubtypeID)
		}
	}

	// Every fact row points at a real edition
	for _, card := range dataset.Cards {
		if card.EditionID < 1 || card.EditionID > len(dataset.Editions) {
			t.Errorf("FAIL: card %s Edition_ID %d out of range", card.Name, card.EditionID)
		}
	}
}

func TestNormalizeSubtypeFirstSeenOrder(t *testing.T) {
	dataset, err := NewNormalizer().Normalize(sampleListings)
	if err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}

	expected := []string{"Human", "Rogue", "Zombie", "Guest", "Equipment"}
	if len(dataset.Subtypes) != len(expected) {
		t.Fatalf("FAIL: Expected %d subtypes, got %d", len(expected), len(dataset.Subtypes))
	}
	for i, name := range expected {
		if dataset.Subtypes[i].Name != name {
			t.Errorf("FAIL: Expected subtype '%s' at position %d, got '%s'", name, i, dataset.Subtypes[i].Name)
		}
	}
}

func TestNormalizeSplitCard(t *testing.T) {
	listings := []RawListing{
		{
			Name:     "Split Face A // Split Face B",
			Edition:  "Invasion",
			Type:     "Instant // Sorcery",
			ManaCost: "sym_u // sym_2 sym_g",
		},
	}

	dataset, err := NewNormalizer().Normalize(listings)
	if err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}
	if len(dataset.Cards) != 2 {
		t.Fatalf("FAIL: Expected 2 fact rows, got %d", len(dataset.Cards))
	}

	first := dataset.Cards[0]
	if first.Name != "Split Face A" || first.PrimaryType != "Instant" || first.CMC != 1 || !first.IsU {
		t.Errorf("FAIL: unexpected first face: %+v", first)
	}
	second := dataset.Cards[1]
	if second.Name != "Split Face B" || second.PrimaryType != "Sorcery" || second.CMC != 3 || !second.IsG || second.GenericMana != 2 {
		t.Errorf("FAIL: unexpected second face: %+v", second)
	}
}

func TestNormalizeSkipsMalformedSplit(t *testing.T) {
	var warnings []string
	normalizer := NewNormalizer()
	normalizer.LogCallback = func(format string, a ...interface{}) {
		if strings.Contains(format, "Skipping") {
			warnings = append(warnings, fmt.Sprintf(format, a...))
		}
	}

	listings := []RawListing{
		{
			Name:     "Broken Card",
			Edition:  "Unstable",
			Type:     "Instant // Sorcery // Enchantment",
			ManaCost: "sym_u",
		},
		{
			Name:     "Fine Card",
			Edition:  "Unstable",
			Type:     "Instant",
			ManaCost: "sym_u",
		},
	}

	dataset, err := normalizer.Normalize(listings)
	if err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}

	if len(warnings) == 0 {
		t.Errorf("FAIL: Expected a warning for the skipped row")
	}

	if len(dataset.Cards) != 1 {
		t.Fatalf("FAIL: Expected the malformed row to be skipped, got %d rows", len(dataset.Cards))
	}
	if dataset.Cards[0].Name != "Fine Card" || dataset.Cards[0].CardID != 1 {
		t.Errorf("FAIL: unexpected surviving row: %+v", dataset.Cards[0])
	}
}

func TestNormalizeIdempotence(t *testing.T) {
	normalizer := NewNormalizer()

	first, err := normalizer.Normalize(sampleListings)
	if err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}
	second, err := normalizer.Normalize(sampleListings)
	if err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("FAIL: two runs over the same input differ")
	}

	// Byte-identical output files as well
	var bufFirst, bufSecond bytes.Buffer
	if err := WriteCardDetailsCSV(first.Cards, &bufFirst); err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}
	if err := WriteCardDetailsCSV(second.Cards, &bufSecond); err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}
	if !bytes.Equal(bufFirst.Bytes(), bufSecond.Bytes()) {
		t.Errorf("FAIL: fact table output differs between runs")
	}
}
