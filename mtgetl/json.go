package mtgetl

import (
	"io"

	"github.com/scizorman/go-ndjson"
)

// WriteCardDetailsNDJSON dumps the fact table as newline-delimited JSON,
// one card face per line.
func WriteCardDetailsNDJSON(cards []CardDetail, w io.Writer) error {
	output, err := ndjson.Marshal(cards)
	if err != nil {
		return err
	}

	_, err = w.Write(output)
	return err
}

// WriteEditionLookupNDJSON dumps the edition dimension table as
// newline-delimited JSON.
func WriteEditionLookupNDJSON(editions []Edition, w io.Writer) error {
	output, err := ndjson.Marshal(editions)
	if err != nil {
		return err
	}

	_, err = w.Write(output)
	return err
}
