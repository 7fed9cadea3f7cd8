package mtgetl

import (
	"strings"

	"github.com/mtgetl/go-mtgetl/mtgcards"
)

// Known prefix that listing pages glue onto the edition text.
const editionPrefix = "Cheapest Recent Printing - "

// Normalizer drives the full batch pass: pre-cleaning raw fields,
// expanding faces, assigning surrogate card keys, and delegating to the
// subtype and edition normalization steps. The pass is a single
// synchronous sweep, running it twice on the same input reproduces
// identical tables and keys.
type Normalizer struct {
	LogCallback LogCallbackFunc
}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

func (n *Normalizer) printf(format string, a ...interface{}) {
	if n.LogCallback != nil {
		n.LogCallback("[ETL] "+format, a...)
	}
}

// Normalize transforms raw listings into the four output tables.
// Malformed split listings are skipped with a warning, one bad row must
// not abort the batch.
func (n *Normalizer) Normalize(listings []RawListing) (*Dataset, error) {
	n.printf("Normalizing %d raw listings", len(listings))

	faces := make([]mtgcards.CardFace, 0, len(listings))
	for _, listing := range listings {
		edition := strings.TrimSpace(strings.Replace(listing.Edition, editionPrefix, "", -1))
		typeLine := strings.TrimSpace(listing.Type)
		manaCost := strings.TrimSpace(listing.ManaCost)

		expanded, err := mtgcards.ExpandFaces(listing.Name, edition, typeLine, manaCost)
		if err != nil {
			n.printf("Skipping badly formatted split card: %s (%s)", listing.Name, err.Error())
			continue
		}

		// Card_ID is the 1-based position in this sequence, the
		// accumulation order is the key assignment order
		faces = append(faces, expanded...)
	}

	subtypes, links := normalizeSubtypes(faces)

	editions, editionIDs, err := normalizeEditions(faces)
	if err != nil {
		return nil, err
	}

	cards := make([]CardDetail, 0, len(faces))
	for i, face := range faces {
		cards = append(cards, newCardDetail(i+1, editionIDs[i], face))
	}

	n.printf("Normalization complete: %d cards, %d editions, %d subtypes, %d links",
		len(cards), len(editions), len(subtypes), len(links))

	return &Dataset{
		Cards:    cards,
		Editions: editions,
		Subtypes: subtypes,
		Links:    links,
	}, nil
}
