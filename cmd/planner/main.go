package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	goredis "github.com/wanderplan/wanderplan-backend/internal/clients/redis"
	"github.com/wanderplan/wanderplan-backend/internal/data/db"
	"github.com/wanderplan/wanderplan-backend/internal/data/repos"
	"github.com/wanderplan/wanderplan-backend/internal/itinerary"
	"github.com/wanderplan/wanderplan-backend/internal/platform/envutil"
	"github.com/wanderplan/wanderplan-backend/internal/platform/logger"
	"github.com/wanderplan/wanderplan-backend/internal/platform/openai"
	"github.com/wanderplan/wanderplan-backend/internal/services"
)

// planner generates an itinerary for an existing trip. Dev/ops tool;
// the product request path invokes the same services.
func main() {
	var (
		tripFlag     = flag.String("trip", "", "trip id to generate for (required)")
		travelerFlag = flag.String("traveler", "", "traveler id (required)")
		pace         = flag.String("pace", itinerary.PaceModerate, "pace: packed|moderate|relaxed")
		wake         = flag.String("wake", itinerary.WakeMid, "wake time: early|mid|late")
		template     = flag.String("template", "", "named template, e.g. foodie_weekend")
		prefs        = flag.String("prefs", "", "comma-separated preference tags")
		freeText     = flag.String("notes", "", "freeform persona text")
		migrate      = flag.Bool("migrate", false, "run dev automigrate before generating")
		wait         = flag.Duration("wait", 0, "linger after generation so async enrichment can finish")
	)
	flag.Parse()

	tripID, err := uuid.Parse(strings.TrimSpace(*tripFlag))
	if err != nil {
		fmt.Println("invalid -trip id")
		os.Exit(1)
	}
	travelerID, err := uuid.Parse(strings.TrimSpace(*travelerFlag))
	if err != nil {
		fmt.Println("invalid -traveler id")
		os.Exit(1)
	}

	logg, err := logger.New(envutil.String("LOG_MODE", "dev"))
	if err != nil {
		fmt.Printf("init logger: %v\n", err)
		os.Exit(1)
	}
	defer logg.Sync()

	dbService, err := db.New(logg)
	if err != nil {
		logg.Fatal("open database", "error", err)
	}
	gdb := dbService.DB()

	if *migrate {
		if err := db.AutoMigrate(gdb); err != nil {
			logg.Fatal("automigrate", "error", err)
		}
	}

	cache, err := goredis.NewCache(logg)
	if err != nil {
		logg.Warn("redis unavailable, continuing without snapshot cache", "error", err)
		cache = nil
	}

	climate, err := itinerary.LoadClimateTable()
	if err != nil {
		logg.Fatal("load climate table", "error", err)
	}

	r := repos.New(gdb, logg)
	loader := itinerary.NewContextLoader(r.TravelerEvent, cache, climate, logg)

	var ai openai.Client
	if os.Getenv("OPENAI_API_KEY") != "" {
		ai, err = openai.NewClient(logg)
		if err != nil {
			logg.Warn("openai unavailable, skipping enrichment", "error", err)
		}
	}
	enricher := services.NewEnrichmentService(r.Itinerary, ai, logg)
	generator := services.NewGenerationService(gdb, r, loader, enricher, logg)

	seed := itinerary.PersonaSeed{
		Pace:     strings.TrimSpace(*pace),
		WakeTime: strings.TrimSpace(*wake),
		Template: strings.TrimSpace(*template),
		FreeText: strings.TrimSpace(*freeText),
	}
	for _, p := range strings.Split(*prefs, ",") {
		if p = strings.TrimSpace(p); p != "" {
			seed.Preferences = append(seed.Preferences, p)
		}
	}

	result, err := generator.GenerateForTrip(context.Background(), tripID, travelerID, seed)
	if err != nil {
		logg.Fatal("generate trip", "error", err)
	}

	for _, leg := range result.LegResults {
		fmt.Printf("leg %s: %d slots (%s)\n", leg.LegID, leg.SlotsCreated, leg.Source)
	}
	fmt.Printf("total slots created: %d\n", result.TotalSlotsCreated)

	if *wait > 0 {
		time.Sleep(*wait)
	}
}
