package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"adresse-geocoder/internal/config"
	"adresse-geocoder/internal/logger"
	"adresse-geocoder/internal/models"
	"adresse-geocoder/internal/provider/adresse"
	"adresse-geocoder/internal/service"

	"github.com/rs/zerolog/log"
)

var resultHeader = []string{"found", "status", "longitude", "latitude", "postcode", "citycode", "city", "label"}

func main() {
	file := flag.String("file", "", "Path to the CSV file of addresses")
	out := flag.String("out", "", "Path of the output CSV (stdout when empty)")
	addressColumn := flag.Int("address-column", 0, "Zero-based index of the address column")
	cityCodeColumn := flag.Int("citycode-column", -1, "Zero-based index of the citycode column, -1 when absent")
	configPath := flag.String("config", "configs", "Directory holding app.env")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Error: --file flag is required")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	logger := logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat, "adresse-geocoder-batch")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	logger.Info().Str("file", *file).Msg("starting batch geocoding")

	in, err := os.Open(*file)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot open input file")
	}
	defer in.Close()

	items, err := parseCSV(in, *addressColumn, *cityCodeColumn)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot parse input file")
	}
	logger.Info().Int("records", len(items)).Msg("parsed input")

	client := adresse.NewClient(
		adresse.WithBaseURL(cfg.BaseURL),
		adresse.WithUserAgent(cfg.UserAgent),
		adresse.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
	)
	svc := service.NewGeocodingService(client, logger,
		service.WithCourtesyDelay(cfg.CourtesyDelay),
		service.WithChunkSize(cfg.ChunkSize),
	)

	var results []models.LookupResult
	if *cityCodeColumn >= 0 {
		results = svc.ResolveBatchWithCityCodes(ctx, items)
	} else {
		addresses := make([]string, len(items))
		for i, item := range items {
			addresses[i] = item.Address
		}
		results = svc.ResolveBatch(ctx, addresses)
	}

	w := io.Writer(os.Stdout)
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			logger.Fatal().Err(err).Msg("cannot create output file")
		}
		defer f.Close()
		w = f
	}

	if err := writeCSV(w, items, results); err != nil {
		logger.Fatal().Err(err).Msg("cannot write results")
	}

	found := 0
	for _, r := range results {
		if r.Found {
			found++
		}
	}
	logger.Info().
		Int("records", len(results)).
		Int("found", found).
		Dur("elapsed", time.Since(start)).
		Msg("batch geocoding finished")
}

// parseCSV reads the address (and optionally citycode) column of every row
// after the header. A negative cityCodeColumn means the file has none.
func parseCSV(r io.Reader, addressColumn, cityCodeColumn int) ([]service.AddressCityCode, error) {
	if addressColumn < 0 {
		return nil, fmt.Errorf("invalid address column: %d", addressColumn)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	// Skip header
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var items []service.AddressCityCode
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		if addressColumn >= len(record) {
			return nil, fmt.Errorf("line %d: missing address column %d", line, addressColumn)
		}
		item := service.AddressCityCode{Address: record[addressColumn]}
		if cityCodeColumn >= 0 {
			if cityCodeColumn >= len(record) {
				return nil, fmt.Errorf("line %d: missing citycode column %d", line, cityCodeColumn)
			}
			item.CityCode = record[cityCodeColumn]
		}
		items = append(items, item)
	}

	return items, nil
}

// writeCSV writes one row per input, in input order, with the result columns
// appended to the address and citycode.
func writeCSV(w io.Writer, items []service.AddressCityCode, results []models.LookupResult) error {
	if len(items) != len(results) {
		return fmt.Errorf("result count mismatch: %d inputs, %d results", len(items), len(results))
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(append([]string{"address", "input_citycode"}, resultHeader...)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range results {
		row := []string{
			items[i].Address,
			items[i].CityCode,
			strconv.FormatBool(r.Found),
			string(r.Status),
			formatCoordinate(r.Longitude),
			formatCoordinate(r.Latitude),
			r.PostalCode,
			r.CityCode,
			r.City,
			r.Label,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatCoordinate(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
