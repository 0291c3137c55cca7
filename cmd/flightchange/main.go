package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"flightchange-service/internal/infrastructure/config"
	"flightchange-service/internal/infrastructure/persistence"
	"flightchange-service/internal/interface/csvio"
	gormRepo "flightchange-service/internal/interface/repository"
	"flightchange-service/internal/usecase"
	"flightchange-service/pkg/logger"
	"flightchange-service/pkg/metrics"

	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

var outputPath string

var rootCmd = &cobra.Command{
	Use:   "flightchange <start_date> <end_date> <agency_id>",
	Short: "Detect week-over-week flight schedule changes for an agency",
	Long: `flightchange seeds the record store from CSV datasets on first run,
then reports flights that newly appear or disappear relative to the
schedule seven days earlier, for every route the agency subscribes to.
Dates use the yyyy-MM-dd format; the window is inclusive.`,
	Args:          cobra.ExactArgs(3),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func run(cmd *cobra.Command, args []string) error {
	startDate, err := time.Parse(dateLayout, args[0])
	if err != nil {
		return fmt.Errorf("invalid start date %q: expected yyyy-MM-dd", args[0])
	}
	endDate, err := time.Parse(dateLayout, args[1])
	if err != nil {
		return fmt.Errorf("invalid end date %q: expected yyyy-MM-dd", args[1])
	}
	agencyID, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid agency id %q: expected an integer", args[2])
	}

	log := logger.NewLogger()
	log.Info("Starting flight change detection", "start", args[0], "end", args[1], "agencyId", agencyID)

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()

	log.Info("Connecting to PostgreSQL")
	db, err := persistence.NewPostgresDB(cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	if err := persistence.Migrate(db); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	m := metrics.NewMetrics("flightchange")

	routeRepository := gormRepo.NewGormRouteRepository(db)
	flightRepository := gormRepo.NewGormFlightRepository(db)
	subscriptionRepository := gormRepo.NewGormSubscriptionRepository(db)

	// Seed the store from CSV only when it is empty; the importer stays a
	// first-run mechanism, not a continuous sync.
	seeded, err := routeRepository.Any(ctx)
	if err != nil {
		return fmt.Errorf("check route store: %w", err)
	}
	if !seeded {
		importer := usecase.NewImporter(routeRepository, flightRepository, subscriptionRepository, log, m, cfg.BatchSize)
		if err := importer.ImportAll(ctx, usecase.ImportPaths{
			Routes:        cfg.RoutesPath,
			Flights:       cfg.FlightsPath,
			Subscriptions: cfg.SubscriptionsPath,
		}); err != nil {
			return fmt.Errorf("seed record store: %w", err)
		}
		log.Info("Record store seeding completed")
	}

	detector := usecase.NewChangeDetector(
		subscriptionRepository,
		flightRepository,
		[]usecase.ChangeDetectionStrategy{
			usecase.NewFlightStrategy{},
			usecase.DiscontinuedFlightStrategy{},
		},
		log,
		m,
	)

	changes, err := detector.DetectChanges(ctx, startDate, endDate, agencyID)
	if err != nil {
		return fmt.Errorf("detect changes: %w", err)
	}

	out := cfg.OutputPath
	if outputPath != "" {
		out = outputPath
	}
	if err := csvio.WriteReport(out, changes); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	log.Info("Detection run completed", "changes", len(changes), "report", out)
	return nil
}

func main() {
	rootCmd.Flags().StringVar(&outputPath, "out", "", "report path (overrides OUTPUT_PATH)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "An error occurred: %v\n", err)
		os.Exit(1)
	}
}
