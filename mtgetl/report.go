package mtgetl

import (
	"time"

	"github.com/montanaflynn/stats"
)

// ExtractReport summarizes one extraction run over the raw snapshot,
// including the price distribution of the listings before the Price
// column is discarded by the transform.
type ExtractReport struct {
	Rows    int
	Elapsed time.Duration

	MeanPrice   float64
	MedianPrice float64
	StdDevPrice float64
}

// NewExtractReport computes the summary for a batch of raw listings.
// Listings with unparseable prices are left out of the distribution.
func NewExtractReport(listings []RawListing, elapsed time.Duration) ExtractReport {
	report := ExtractReport{
		Rows:    len(listings),
		Elapsed: elapsed,
	}

	var prices stats.Float64Data
	for _, listing := range listings {
		price, err := ParsePrice(listing.Price)
		if err != nil {
			continue
		}
		prices = append(prices, price)
	}
	if len(prices) == 0 {
		return report
	}

	report.MeanPrice, _ = stats.Mean(prices)
	report.MedianPrice, _ = stats.Median(prices)
	report.StdDevPrice, _ = stats.StandardDeviation(prices)

	return report
}

// Log emits the report through the given callback.
func (report ExtractReport) Log(cb LogCallbackFunc) {
	if cb == nil {
		return
	}
	cb("[ETL] Extracted %d rows in %v", report.Rows, report.Elapsed)
	cb("[ETL] Price distribution: mean %0.2f median %0.2f stddev %0.2f",
		report.MeanPrice, report.MedianPrice, report.StdDevPrice)
}
