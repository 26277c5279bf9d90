package simulator

import (
	"context"
	"fmt"
	"log"

	"github.com/joaoppegoraro/garage-management/internal/app"
	"github.com/joaoppegoraro/garage-management/internal/domain"
)

// GarageStore is the slice of the garage service the loader needs.
type GarageStore interface {
	IsEmpty(ctx context.Context) (bool, error)
	CreateSector(ctx context.Context, in app.CreateSectorInput) (domain.Sector, error)
	CreateSpace(ctx context.Context, in app.CreateSpaceInput) (domain.Space, error)
}

type ConfigFetcher interface {
	FetchGarageConfig(ctx context.Context) (GarageConfig, error)
}

// Loader performs the one-time garage bootstrap.
type Loader struct {
	fetcher ConfigFetcher
	store   GarageStore
	logger  *log.Logger
}

func NewLoader(fetcher ConfigFetcher, store GarageStore, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{fetcher: fetcher, store: store, logger: logger}
}

// Run seeds sectors and spaces from the simulator feed when the store is
// empty. Spots referencing an unknown sector are logged and skipped.
func (l *Loader) Run(ctx context.Context) error {
	empty, err := l.store.IsEmpty(ctx)
	if err != nil {
		return fmt.Errorf("check store: %w", err)
	}
	if !empty {
		l.logger.Printf("garage already configured, skipping bootstrap")
		return nil
	}

	config, err := l.fetcher.FetchGarageConfig(ctx)
	if err != nil {
		return err
	}

	known := make(map[string]struct{}, len(config.Garage))
	for _, sc := range config.Garage {
		if _, err := l.store.CreateSector(ctx, app.CreateSectorInput{
			Name:                 sc.Sector,
			BasePrice:            sc.BasePrice,
			MaxCapacity:          sc.MaxCapacity,
			OpenHour:             sc.OpenHour,
			CloseHour:            sc.CloseHour,
			DurationLimitMinutes: sc.DurationLimitMinutes,
		}); err != nil {
			return fmt.Errorf("create sector %s: %w", sc.Sector, err)
		}
		known[sc.Sector] = struct{}{}
	}

	loaded := 0
	for _, spot := range config.Spots {
		if _, ok := known[spot.Sector]; !ok {
			l.logger.Printf("WARN: spot %d references unknown sector %q, skipping", spot.ID, spot.Sector)
			continue
		}
		if _, err := l.store.CreateSpace(ctx, app.CreateSpaceInput{
			ID:     spot.ID,
			Sector: spot.Sector,
			Lat:    spot.Lat,
			Lng:    spot.Lng,
		}); err != nil {
			return fmt.Errorf("create space %d: %w", spot.ID, err)
		}
		loaded++
	}

	l.logger.Printf("garage bootstrap complete: %d sectors, %d spaces", len(config.Garage), loaded)
	return nil
}
