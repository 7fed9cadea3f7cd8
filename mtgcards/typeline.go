package mtgcards

import (
	"regexp"
	"strings"
)

// The fixed vocabulary of super types that may precede the primary type.
var superTypes = map[string]bool{
	"BASIC":     true,
	"LEGENDARY": true,
	"ONGOING":   true,
	"SNOW":      true,
	"WORLD":     true,
	"TRIBAL":    true,
	"PLANE":     true,
}

// Only the first hyphen or em-dash separates main types from subtypes,
// any further dashes belong to the subtype segment.
var typeDashRegexp = regexp.MustCompile(`\s*[-—]\s*`)

// TypeLine is the decomposed form of a card type string.
type TypeLine struct {
	// Zero or more super types, space-joined in original order and casing
	SuperType string `json:"super_type"`

	// The main card types, space-joined
	PrimaryType string `json:"primary_type"`

	// Comma-joined subtype tokens, order-preserving, may be empty
	Subtypes string `json:"subtypes,omitempty"`
}

// ParseTypeLine decomposes a type string such as
// "Legendary Creature - Elf Warrior" into its three tiers.
// Empty input yields the zero value.
func ParseTypeLine(typeLine string) (out TypeLine) {
	typeLine = strings.TrimSpace(typeLine)
	if typeLine == "" {
		return
	}

	fields := typeDashRegexp.Split(typeLine, 2)
	if len(fields) > 1 {
		out.Subtypes = strings.Join(strings.Fields(fields[1]), ",")
	}

	var supers, primaries []string
	for _, token := range strings.Fields(fields[0]) {
		if superTypes[strings.ToUpper(token)] {
			supers = append(supers, token)
		} else {
			primaries = append(primaries, token)
		}
	}
	out.SuperType = strings.Join(supers, " ")
	out.PrimaryType = strings.Join(primaries, " ")

	return
}
