package mtgetl

import (
	"errors"
	"strconv"
	"strings"
)

type LogCallbackFunc func(format string, a ...interface{})

var ErrEmptyPrice = errors.New("empty price string")

// ParsePrice reads a scraped price string, tolerating currency signs and
// thousands separators.
func ParsePrice(priceStr string) (float64, error) {
	priceStr = strings.TrimSpace(priceStr)
	priceStr = strings.TrimPrefix(priceStr, "$")
	priceStr = strings.Replace(priceStr, ",", "", -1)
	if priceStr == "" {
		return 0, ErrEmptyPrice
	}
	return strconv.ParseFloat(priceStr, 64)
}
