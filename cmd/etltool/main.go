package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/mtgetl/go-mtgetl/deckbox"
	"github.com/mtgetl/go-mtgetl/mtgcards"
	"github.com/mtgetl/go-mtgetl/mtgetl"
)

var GlobalLogCallback mtgetl.LogCallbackFunc = log.Printf

var MaxConcurrency int

func init() {
	MaxConcurrency, _ = strconv.Atoi(os.Getenv("MAX_CONCURRENCY"))
}

func extract(inputPath string, pageLimit int) ([]mtgetl.RawListing, error) {
	if inputPath != "" {
		listings, err := mtgetl.LoadRawFile(inputPath)
		if errors.Is(err, mtgetl.ErrNoSourceFile) {
			log.Println("Raw snapshot missing, run without -input to scrape a fresh one")
		}
		return listings, err
	}

	scraper := deckbox.NewScraper()
	scraper.LogCallback = GlobalLogCallback
	scraper.PageLimit = pageLimit
	if MaxConcurrency != 0 {
		scraper.MaxConcurrency = MaxConcurrency
	}

	var source mtgetl.Source = scraper
	return source.Listings()
}

func saveRawSnapshot(listings []mtgetl.RawListing, path string) error {
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return mtgetl.WriteRawCSV(listings, file)
}

func dumpFactTableNDJSON(dataset *mtgetl.Dataset, outputDir string) error {
	file, err := os.Create(filepath.Join(outputDir, "card_details.ndjson"))
	if err != nil {
		return err
	}
	defer file.Close()

	return mtgetl.WriteCardDetailsNDJSON(dataset.Cards, file)
}

func main() {
	inputOpt := flag.String("input", "", "Load raw listings from a CSV snapshot instead of scraping")
	outputOpt := flag.String("output", "data/clean", "Directory where the normalized tables are saved")
	saveRawOpt := flag.String("save-raw", "", "Also save the raw snapshot to this file")
	ndjsonOpt := flag.Bool("ndjson", false, "Also dump the fact table as NDJSON")
	pageLimitOpt := flag.Int("page-limit", 0, "Crawl at most this many listing pages (0 = all)")
	verboseOpt := flag.Bool("v", false, "Enable parser debug logging")
	flag.Parse()

	if *verboseOpt {
		mtgcards.SetGlobalLogger(log.New(os.Stderr, "", 0))
	}

	start := time.Now()
	listings, err := extract(*inputOpt, *pageLimitOpt)
	if err != nil {
		log.Fatalln(err)
	}

	report := mtgetl.NewExtractReport(listings, time.Since(start))
	report.Log(GlobalLogCallback)

	if *saveRawOpt != "" {
		err = saveRawSnapshot(listings, *saveRawOpt)
		if err != nil {
			log.Fatalln(err)
		}
		log.Println("Raw snapshot saved to", *saveRawOpt)
	}

	normalizer := mtgetl.NewNormalizer()
	normalizer.LogCallback = GlobalLogCallback
	dataset, err := normalizer.Normalize(listings)
	if err != nil {
		log.Fatalln(err)
	}

	err = mtgetl.WriteDataset(dataset, *outputOpt)
	if err != nil {
		log.Fatalln(err)
	}

	if *ndjsonOpt {
		err = dumpFactTableNDJSON(dataset, *outputOpt)
		if err != nil {
			log.Fatalln(err)
		}
	}

	log.Println("All normalized tables saved to", *outputOpt)
}
