package mtgetl

import (
	"strings"

	"github.com/mtgetl/go-mtgetl/mtgcards"
)

// normalizeSubtypes explodes the comma-joined subtype lists across all
// faces into a deduplicated dimension table and a card/subtype bridge.
// Subtype_ID is 1-based in first-occurrence order over the exploded
// sequence, so the assignment only depends on input row order.
func normalizeSubtypes(faces []mtgcards.CardFace) ([]Subtype, []CardSubtypeLink) {
	var lookup []Subtype
	ids := map[string]int{}

	var links []CardSubtypeLink
	seen := map[CardSubtypeLink]bool{}

	for i, face := range faces {
		cardID := i + 1
		for _, name := range strings.Split(face.Subtypes, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}

			id, found := ids[name]
			if !found {
				id = len(lookup) + 1
				ids[name] = id
				lookup = append(lookup, Subtype{Name: name, ID: id})
			}

			// A card listing the same subtype twice yields one link
			link := CardSubtypeLink{CardID: cardID, SubtypeID: id}
			if seen[link] {
				continue
			}
			seen[link] = true
			links = append(links, link)
		}
	}

	return lookup, links
}
