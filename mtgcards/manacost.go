package mtgcards

import (
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// Marker prefixing every mana token emitted by the listing scraper.
const symbolPrefix = "sym_"

// Colors tracked by the parser, WUBRG order plus colorless.
var Colors = []string{"W", "U", "B", "R", "G", "C"}

// ManaCost is the parsed form of a mana cost token string.
type ManaCost struct {
	// Converted mana cost, sum of colored, hybrid, and generic
	// contributions. X contributes zero.
	CMC int `json:"cmc"`

	// At least one symbol is payable by two alternatives
	IsHybrid bool `json:"is_hybrid,omitempty"`

	// Sum of the generic numeric symbols
	GenericMana int `json:"generic_mana,omitempty"`

	// The cost contains a variable X symbol
	IsX bool `json:"is_x,omitempty"`

	IsW bool `json:"is_w,omitempty"`
	IsU bool `json:"is_u,omitempty"`
	IsB bool `json:"is_b,omitempty"`
	IsR bool `json:"is_r,omitempty"`
	IsG bool `json:"is_g,omitempty"`
	IsC bool `json:"is_c,omitempty"`
}

func (mc *ManaCost) setColor(letter string) {
	switch letter {
	case "W":
		mc.IsW = true
	case "U":
		mc.IsU = true
	case "B":
		mc.IsB = true
	case "R":
		mc.IsR = true
	case "G":
		mc.IsG = true
	case "C":
		mc.IsC = true
	}
}

// HasColor reports whether the flag for the given color letter is set.
func (mc ManaCost) HasColor(letter string) bool {
	switch letter {
	case "W":
		return mc.IsW
	case "U":
		return mc.IsU
	case "B":
		return mc.IsB
	case "R":
		return mc.IsR
	case "G":
		return mc.IsG
	case "C":
		return mc.IsC
	}
	return false
}

type symbolKind int

const (
	symbolUnknown symbolKind = iota
	symbolColor
	symbolGeneric
	symbolHybrid
	symbolVariable
)

type manaSymbol struct {
	kind    symbolKind
	generic int
	colors  []string

	// The generic/color hybrid variant, the only hybrid that costs 2.
	// Every two-color hybrid costs 1, so no further distinction is needed.
	twoGeneric bool
}

// classifySymbol turns a single raw token into its tagged form. Symbol
// matching is case-insensitive, but the two-generic hybrid check runs on
// the raw token since the scraper emits that prefix verbatim.
func classifySymbol(token string) manaSymbol {
	payload := strings.TrimPrefix(token, symbolPrefix)
	upper := strings.ToUpper(payload)

	switch {
	case strings.Contains(upper, "/"):
		sym := manaSymbol{
			kind:       symbolHybrid,
			twoGeneric: strings.HasPrefix(token, symbolPrefix+"2/"),
		}
		for _, half := range strings.Split(upper, "/") {
			if slices.Contains(Colors, half) {
				sym.colors = append(sym.colors, half)
			}
		}
		return sym
	case slices.Contains(Colors, upper):
		return manaSymbol{kind: symbolColor, colors: []string{upper}}
	case isDigits(payload):
		generic, _ := strconv.Atoi(payload)
		return manaSymbol{kind: symbolGeneric, generic: generic}
	case upper == "X":
		return manaSymbol{kind: symbolVariable}
	}

	return manaSymbol{kind: symbolUnknown}
}

// ParseManaCost folds a whitespace-separated mana token string into the
// converted mana cost and its flags. Unrecognized tokens are skipped,
// scraped symbol streams are too noisy to treat them as errors.
// The empty string yields the zero value.
func ParseManaCost(cost string) (mc ManaCost) {
	for _, token := range strings.Fields(cost) {
		sym := classifySymbol(token)
		switch sym.kind {
		case symbolHybrid:
			mc.IsHybrid = true
			if sym.twoGeneric {
				mc.CMC += 2
			} else {
				mc.CMC++
			}
			for _, letter := range sym.colors {
				mc.setColor(letter)
			}
		case symbolColor:
			mc.CMC++
			mc.setColor(sym.colors[0])
		case symbolGeneric:
			mc.CMC += sym.generic
			mc.GenericMana += sym.generic
		case symbolVariable:
			mc.IsX = true
		default:
			logger.Println("Skipping unknown mana symbol", token)
		}
	}
	return
}

func isDigits(str string) bool {
	if str == "" {
		return false
	}
	for _, c := range str {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
