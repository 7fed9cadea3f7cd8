package mtgcards

import (
	"strings"
)

// FaceSeparator joins the two halves of split, adventure, and other
// multi-faced card listings.
const FaceSeparator = "//"

// CardFace is one independently playable side of a listing, carrying the
// parsed type line and mana cost. Single-faced cards produce exactly one.
type CardFace struct {
	Name    string `json:"name"`
	Edition string `json:"edition"`

	TypeLine
	ManaCost
}

func newFace(name, edition, typeLine, manaCost string) CardFace {
	return CardFace{
		Name:     name,
		Edition:  edition,
		TypeLine: ParseTypeLine(typeLine),
		ManaCost: ParseManaCost(manaCost),
	}
}

// ExpandFaces builds one CardFace per face of a raw listing. A listing is
// multi-faced when its type string contains the face separator; name and
// mana cost are then split the same way. A multi-faced listing whose name
// or type does not split into exactly two parts returns ErrMalformedSplit,
// callers are expected to skip the row and keep the batch going.
func ExpandFaces(name, edition, typeLine, manaCost string) ([]CardFace, error) {
	if !strings.Contains(typeLine, FaceSeparator) {
		return []CardFace{newFace(name, edition, typeLine, manaCost)}, nil
	}

	nameParts := strings.Split(name, FaceSeparator)
	typeParts := strings.Split(typeLine, FaceSeparator)

	// Some cards only pay mana on one of the faces
	manaParts := []string{manaCost, ""}
	if strings.Contains(manaCost, FaceSeparator) {
		manaParts = strings.Split(manaCost, FaceSeparator)
	}

	if len(nameParts) != 2 || len(typeParts) != 2 {
		return nil, ErrMalformedSplit
	}

	faces := make([]CardFace, 0, len(nameParts))
	for i := range nameParts {
		mana := ""
		if i < len(manaParts) {
			mana = manaParts[i]
		}
		faces = append(faces, newFace(
			strings.TrimSpace(nameParts[i]),
			edition,
			strings.TrimSpace(typeParts[i]),
			strings.TrimSpace(mana),
		))
	}

	return faces, nil
}
