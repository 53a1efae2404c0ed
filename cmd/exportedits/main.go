// Command exportedits dumps recent receipt edit log rows as CSV for
// offline analysis of OCR error patterns. Defaults to the past week;
// -days 0 exports the full log.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"kakeibo/internal/config"
	"kakeibo/internal/csvexport"
	"kakeibo/internal/domain"
	"kakeibo/internal/repository/postgres"
)

const batchSize = 5000

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	output := flag.String("o", "", "output file (default stdout)")
	days := flag.Int("days", 7, "export rows from the past N days (0 for all)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	editLogRepo := postgres.NewEditLogRepo(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	var entries []domain.EditLogEntry
	if *days > 0 {
		since := time.Now().AddDate(0, 0, -*days)
		entries, err = editLogRepo.ListSince(ctx, since)
		if err != nil {
			return fmt.Errorf("reading edit log: %w", err)
		}
	} else {
		var total int
		entries, total, err = editLogRepo.ListAll(ctx, 0, batchSize)
		if err != nil {
			return fmt.Errorf("reading edit log: %w", err)
		}
		for len(entries) < total {
			batch, _, err := editLogRepo.ListAll(ctx, len(entries), batchSize)
			if err != nil {
				return fmt.Errorf("reading edit log: %w", err)
			}
			if len(batch) == 0 {
				break
			}
			entries = append(entries, batch...)
		}
	}

	if err := csvexport.WriteEditLogCSV(out, entries); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	log.Printf("exported %d edit log rows", len(entries))
	return nil
}
