package testutil

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/wanderplan/wanderplan-backend/internal/data/db"
	types "github.com/wanderplan/wanderplan-backend/internal/domain"
	"github.com/wanderplan/wanderplan-backend/internal/platform/logger"
)

var errMissingDSN = errors.New("missing TEST_POSTGRES_DSN")

var (
	dbOnce sync.Once
	gdb    *gorm.DB
	dbErr  error

	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dbOnce.Do(func() {
		dsn := os.Getenv("TEST_POSTGRES_DSN")
		if dsn == "" {
			dbErr = errMissingDSN
			return
		}

		var err error
		gdb, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
			Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if err != nil {
			dbErr = err
			return
		}

		if err := gdb.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
			dbErr = err
			return
		}

		if err := db.AutoMigrate(gdb); err != nil {
			dbErr = err
			return
		}
	})

	if errors.Is(dbErr, errMissingDSN) {
		tb.Skip("set TEST_POSTGRES_DSN to run repo integration tests")
	}
	if dbErr != nil {
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return gdb
}

func Tx(tb testing.TB, gdb *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := gdb.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

func PtrUUID(id uuid.UUID) *uuid.UUID { return &id }

func PtrFloat(f float64) *float64 { return &f }

func SeedDestination(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Destination {
	tb.Helper()
	d := &types.Destination{
		ID:       uuid.New(),
		Name:     name,
		Country:  "Testland",
		Timezone: "UTC",
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed destination: %v", err)
	}
	return d
}

func SeedActivity(tb testing.TB, ctx context.Context, tx *gorm.DB, destinationID uuid.UUID, name, category string, tags ...string) *types.Activity {
	tb.Helper()
	a := &types.Activity{
		ID:            uuid.New(),
		DestinationID: destinationID,
		Name:          name,
		Category:      category,
		PriceTier:     2,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed activity: %v", err)
	}
	for _, tag := range tags {
		row := &types.ActivityTag{
			ID:         uuid.New(),
			ActivityID: a.ID,
			Tag:        tag,
			Weight:     1,
		}
		if err := tx.WithContext(ctx).Create(row).Error; err != nil {
			tb.Fatalf("seed activity tag: %v", err)
		}
		a.Tags = append(a.Tags, *row)
	}
	return a
}

func SeedTrip(tb testing.TB, ctx context.Context, tx *gorm.DB, travelerID uuid.UUID, start time.Time, days int) *types.Trip {
	tb.Helper()
	trip := &types.Trip{
		ID:         uuid.New(),
		TravelerID: travelerID,
		Title:      "trip",
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, days-1),
		Status:     "planning",
	}
	if err := tx.WithContext(ctx).Create(trip).Error; err != nil {
		tb.Fatalf("seed trip: %v", err)
	}
	return trip
}

func SeedLeg(tb testing.TB, ctx context.Context, tx *gorm.DB, tripID, destinationID uuid.UUID, position int, start time.Time, days int) *types.TripLeg {
	tb.Helper()
	leg := &types.TripLeg{
		ID:            uuid.New(),
		TripID:        tripID,
		DestinationID: destinationID,
		Position:      position,
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, days-1),
	}
	if err := tx.WithContext(ctx).Create(leg).Error; err != nil {
		tb.Fatalf("seed trip leg: %v", err)
	}
	return leg
}
