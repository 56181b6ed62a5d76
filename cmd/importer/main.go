package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"address-api/internal/config"
	"address-api/internal/models"
	"address-api/internal/repository"
	"address-api/internal/validation"
)

func main() {
	file := flag.String("file", "", "Path to the CSV file to import (columns: name,latitude,longitude)")
	configDir := flag.String("config", "configs", "Directory containing app.env")
	flag.Parse()

	if *file == "" {
		fmt.Println("Error: --file flag is required")
		os.Exit(1)
	}

	fmt.Printf("Starting import from file: %s\n", *file)

	f, err := os.Open(*file)
	if err != nil {
		fmt.Printf("Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	records, err := parseCSV(f)
	if err != nil {
		fmt.Printf("Error parsing CSV: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Parsed %d records\n", len(records))

	// Load config
	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Connect to DB; the addresses table is created if missing
	ctx := context.Background()
	store, err := repository.Open(ctx, cfg.DBDriver, cfg.DBSource)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	inserted, err := store.BulkInsert(ctx, records)
	if err != nil {
		fmt.Printf("Error inserting records: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully imported %d records\n", inserted)
}

// parseCSV reads name,latitude,longitude rows after a header line. Every row
// is validated so a bad file is rejected before anything is written.
func parseCSV(r io.Reader) ([]models.NewAddress, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3
	reader.TrimLeadingSpace = true

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var records []models.NewAddress
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		line, _ := reader.FieldPos(0)

		lat, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid latitude: %s", line, record[1])
		}

		lon, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid longitude: %s", line, record[2])
		}

		address := models.NewAddress{Name: record[0], Latitude: lat, Longitude: lon}
		if err := validation.CheckNewAddress(address); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		records = append(records, address)
	}

	return records, nil
}
