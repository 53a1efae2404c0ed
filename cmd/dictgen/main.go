// Command dictgen regenerates the auto-correction dictionary from the
// accumulated edit log. It is meant to run on a schedule (e.g. nightly cron).
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"kakeibo/internal/autodict"
	"kakeibo/internal/config"
	"kakeibo/internal/repository/postgres"
	"kakeibo/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	dictSvc := service.NewDictService(
		postgres.NewEditLogRepo(db),
		postgres.NewAutoDictRepo(db),
		autodict.MinerOptions{
			MinFrequency: cfg.Dict.MinFrequency,
			MaxLen:       cfg.Dict.MaxLen,
			Limit:        cfg.Dict.Limit,
		},
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	entries, err := dictSvc.Regenerate(ctx)
	if err != nil {
		return fmt.Errorf("dictionary regeneration failed: %w", err)
	}

	log.Printf("dictionary regenerated: %d rules", len(entries))
	for _, e := range entries {
		fmt.Printf("%s\t%s\t%d\n", e.From, e.To, e.Freq)
	}
	return nil
}
