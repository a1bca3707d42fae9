package main

import (
	"context"
	"encoding/csv"
	"io"
	"log"
	"os"
	"strings"
	"time"

	natsadapter "github.com/hyfac/catalog/internal/adapters/nats"
	"github.com/hyfac/catalog/internal/adapters/nominatim"
	"github.com/hyfac/catalog/internal/adapters/postgres"
	"github.com/hyfac/catalog/internal/core/ports"
	"github.com/hyfac/catalog/internal/core/usecases"
	"github.com/hyfac/catalog/internal/pkg/config"
	"github.com/hyfac/catalog/internal/pkg/logging"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: importer <stores.csv>")
	}
	csvPath := os.Args[1]

	cfg, err := config.Load("hyfac-importer")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")

	ctx := context.Background()

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	rows, err := readRows(csvPath)
	if err != nil {
		log.Fatalf("read %s: %v", csvPath, err)
	}
	log.Printf("Hyfac store importer — %d rows from %s", len(rows), csvPath)

	// Geocoder is optional: without it the commune table still resolves
	// every row to a wilaya and centroid.
	var geocoder ports.Geocoder
	if cfg.Geocoder.Enabled {
		geocoder = nominatim.New(
			cfg.Geocoder.BaseURL,
			cfg.Geocoder.UserAgent,
			cfg.Geocoder.CountryCodes,
			time.Duration(cfg.Geocoder.TimeoutSec)*time.Second,
		)
	}
	resolver := usecases.NewLocationResolver(geocoder)

	// Events are best-effort; the import proceeds without NATS.
	var events ports.EventPublisher
	if pub, err := natsadapter.NewPublisher(cfg.NATS.URL); err != nil {
		log.Printf("nats unavailable, events disabled: %v", err)
	} else {
		events = pub
		defer pub.Close()
	}

	importer := usecases.NewImportService(postgres.NewStoreRepo(db), resolver, events)
	importer.SetDelay(time.Duration(cfg.Geocoder.DelayMs) * time.Millisecond)

	summary := importer.Run(ctx, rows)

	log.Printf("import complete: %d imported, %d skipped, %d row errors",
		summary.Imported, summary.Skipped, len(summary.Errors))
	for _, e := range summary.Errors {
		log.Printf("  row %d: %s", e.Row, e.Message)
	}
}

// readRows parses a CSV file with a header row into one map per data row,
// keyed by column name.
func readRows(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	for i := range header {
		// Strip BOM from first column
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\xef\xbb\xbf"))
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
