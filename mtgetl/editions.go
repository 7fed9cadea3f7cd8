package mtgetl

import (
	"errors"
	"fmt"

	"github.com/mtgetl/go-mtgetl/mtgcards"
)

var ErrEditionNotFound = errors.New("unresolved edition name")

// normalizeEditions builds the edition dimension table and resolves the
// Edition_ID foreign key for every face. Edition_ID is 1-based in
// first-seen order. A face whose edition cannot be resolved is a data
// integrity fault and surfaces as an error rather than a dropped row.
func normalizeEditions(faces []mtgcards.CardFace) ([]Edition, []int, error) {
	var lookup []Edition
	ids := map[string]int{}

	for _, face := range faces {
		_, found := ids[face.Edition]
		if found {
			continue
		}
		id := len(lookup) + 1
		ids[face.Edition] = id
		lookup = append(lookup, Edition{Name: face.Edition, ID: id})
	}

	editionIDs := make([]int, len(faces))
	for i, face := range faces {
		id, found := ids[face.Edition]
		if !found {
			return nil, nil, fmt.Errorf("%w: %s", ErrEditionNotFound, face.Edition)
		}
		editionIDs[i] = id
	}

	return lookup, editionIDs, nil
}
