// Package main provides a CLI tool for seeding a dataset with demo data.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"fieldbook/internal/config"
	"fieldbook/internal/core/model"
	"fieldbook/internal/domain/dataset"
	"fieldbook/internal/domain/entities"
	"fieldbook/internal/domain/fields"
	"fieldbook/internal/domain/records"
	"fieldbook/internal/domain/settings"
	"fieldbook/internal/infrastructure/storage/memory"
	"fieldbook/internal/infrastructure/storage/postgres"
	"fieldbook/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalw("failed to load configuration", "error", err)
	}

	ctx := logger.WithLogger(context.Background(), log)

	var store dataset.Store
	if cfg.DatabaseURL != "" {
		pgStore, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalw("failed to open postgres store", "error", err)
		}
		defer pgStore.Close()
		store = pgStore
	} else {
		memStore, err := memory.Open(cfg.DataFile)
		if err != nil {
			log.Fatalw("failed to open dataset file", "error", err)
		}
		store = memStore
	}

	if err := seed(ctx, store, log); err != nil {
		log.Fatalw("seeding failed", "error", err)
	}
	log.Info("seeding complete")
}

func seed(ctx context.Context, store dataset.Store, log *logger.Logger) error {
	fieldSvc := fields.NewService(store)
	entitySvc := entities.NewService(store)
	recordSvc := records.NewService(store)
	settingsSvc := settings.NewService(store)

	weight, err := fieldSvc.Create(ctx, fields.Spec{
		Name:                    "Weight",
		Type:                    model.TypeNumber,
		Required:                true,
		UseForRecordsTable:      true,
		UseForComparativeReport: true,
		IsCompareField:          true,
	})
	if err != nil {
		return err
	}
	mood, err := fieldSvc.Create(ctx, fields.Spec{
		Name:    "Mood",
		Type:    model.TypeSelect,
		Options: []string{"good", "neutral", "bad"},
	})
	if err != nil {
		return err
	}
	site, err := fieldSvc.Create(ctx, fields.Spec{
		Name:             "Site",
		Type:             model.TypeText,
		IsHorizontalAxis: true,
	})
	if err != nil {
		return err
	}
	log.Infow("fields created", "count", 3)

	names := []string{"Alpha", "Bravo", "Charlie"}
	ids := make([]string, 0, len(names))
	for _, name := range names {
		e, err := entitySvc.Create(ctx, name)
		if err != nil {
			return err
		}
		if _, err := entitySvc.AssignFields(ctx, e.ID, []string{weight.ID, mood.ID, site.ID}); err != nil {
			return err
		}
		ids = append(ids, e.ID)
	}
	log.Infow("entities created", "count", len(ids))

	moods := []string{"good", "neutral", "bad"}
	sites := []string{"north", "south"}
	now := time.Now().UTC()
	created := 0
	for day := 0; day < 14; day++ {
		for i, entityID := range ids {
			r, err := recordSvc.Create(ctx, entityID, map[string]any{
				weight.ID: 50 + float64(day) + float64(i)*2.5,
				mood.ID:   moods[(day+i)%len(moods)],
				site.ID:   sites[(day+i)%len(sites)],
			})
			if err != nil {
				return err
			}
			if _, err := recordSvc.UpdateDate(ctx, r.ID, now.AddDate(0, 0, -day)); err != nil {
				return err
			}
			created++
		}
	}
	log.Infow("records created", "count", created)

	if _, err := settingsSvc.Update(ctx, func(cfg *model.Config) {
		cfg.Title = "Fieldbook Demo"
		cfg.Description = "Generated demo dataset"
		cfg.KPIFields = []string{weight.ID}
	}); err != nil {
		return err
	}
	if _, err := settingsSvc.SetEntityGroup(ctx, "pilot", ids[:2]); err != nil {
		return err
	}
	return nil
}
