package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"flightchange-service/internal/domain/entity"
	"flightchange-service/internal/domain/repository"
	"flightchange-service/internal/interface/csvio"
	"flightchange-service/pkg/logger"
	"flightchange-service/pkg/metrics"
)

// DefaultBatchSize bounds memory and transaction size per persisted chunk.
// Any value >= 1 yields the same final stored state.
const DefaultBatchSize = 20_000

// ImportPaths names the three CSV sources consumed by one import run.
type ImportPaths struct {
	Routes        string
	Flights       string
	Subscriptions string
}

// Importer reconciles CSV datasets of routes, flights and subscriptions
// against the record store in fixed-size batches. Re-running it over the
// same files creates no duplicates and leaves matching rows unchanged.
type Importer struct {
	routeRepo        repository.RouteRepository
	flightRepo       repository.FlightRepository
	subscriptionRepo repository.SubscriptionRepository
	logger           logger.Logger
	metrics          *metrics.Metrics
	batchSize        int
}

// NewImporter creates a new importer. A batchSize below 1 falls back to
// DefaultBatchSize.
func NewImporter(
	routeRepo repository.RouteRepository,
	flightRepo repository.FlightRepository,
	subscriptionRepo repository.SubscriptionRepository,
	logger logger.Logger,
	metrics *metrics.Metrics,
	batchSize int,
) *Importer {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	return &Importer{
		routeRepo:        routeRepo,
		flightRepo:       flightRepo,
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
		metrics:          metrics,
		batchSize:        batchSize,
	}
}

// ImportAll loads all three sources. Routes must come before flights, which
// resolve route references; subscriptions are independent.
func (im *Importer) ImportAll(ctx context.Context, paths ImportPaths) error {
	if paths.Routes == "" || paths.Flights == "" || paths.Subscriptions == "" {
		return errors.New("import paths for routes, flights and subscriptions must all be configured")
	}

	if err := im.ImportRoutes(ctx, paths.Routes); err != nil {
		return fmt.Errorf("import routes: %w", err)
	}
	if err := im.ImportFlights(ctx, paths.Flights); err != nil {
		return fmt.Errorf("import flights: %w", err)
	}
	if err := im.ImportSubscriptions(ctx, paths.Subscriptions); err != nil {
		return fmt.Errorf("import subscriptions: %w", err)
	}
	return nil
}

// ImportRoutes reconciles the route CSV against the store. The full current
// route set is indexed by natural key up front; rows staged for insert are
// registered in the index immediately so later rows in the same run match
// them as existing instead of creating duplicates.
func (im *Importer) ImportRoutes(ctx context.Context, path string) error {
	defer im.observeDuration("routes", time.Now())

	f, err := im.open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	rdr := csvio.NewRowReader(f)

	existing, err := im.routeRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load existing routes: %w", err)
	}
	index := make(map[entity.RouteKey]*entity.Route, len(existing))
	for _, r := range existing {
		index[r.Key()] = r
	}

	imported := 0
	for {
		batch, err := im.readBatch(rdr)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			break
		}

		var created, updated []*entity.Route
		for _, row := range batch {
			in, ok := routeFromRow(row)
			if !ok {
				im.skipRow("routes", "malformed")
				continue
			}

			if found, ok := index[in.Key()]; !ok {
				index[in.Key()] = in
				created = append(created, in)
			} else if found.RouteID == 0 {
				// Staged in this run but not yet persisted; overwrite the
				// staged values rather than issuing a second insert.
				found.ApplyFrom(in)
			} else {
				found.ApplyFrom(in)
				updated = append(updated, found)
			}
		}

		if err := im.routeRepo.PersistBatch(ctx, created, updated); err != nil {
			return fmt.Errorf("persist route batch: %w", err)
		}
		imported += len(batch)
		im.countRows("routes", len(batch))
	}

	im.logger.Info("Finished importing routes", "count", imported)
	return nil
}

// ImportFlights reconciles the flight CSV against the store. Each batch
// bulk-fetches only the routes it references; rows citing an unknown route
// cannot be imported and are skipped. A batch whose persistence fails is
// logged with its cause and the run continues with the next batch.
func (im *Importer) ImportFlights(ctx context.Context, path string) error {
	defer im.observeDuration("flights", time.Now())

	f, err := im.open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	rdr := csvio.NewRowReader(f)

	imported := 0
	for {
		batch, err := im.readBatch(rdr)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			break
		}

		routes, err := im.routeRepo.FindByIDs(ctx, distinctRouteIDs(batch))
		if err != nil {
			return fmt.Errorf("resolve route references: %w", err)
		}

		var created, updated []*entity.Flight
		for _, row := range batch {
			in, ok := flightFromRow(row)
			if !ok {
				im.skipRow("flights", "malformed")
				continue
			}

			route, ok := routes[in.RouteID]
			if !ok {
				im.skipRow("flights", "unknown_route")
				continue
			}

			found, err := im.flightRepo.FindByNaturalKey(ctx, in.RouteID, in.DepartureTime, in.AirlineID)
			if err != nil {
				return fmt.Errorf("look up flight: %w", err)
			}
			if found == nil {
				in.FlightID = 0 // store assigns the id
				in.Route = route
				created = append(created, in)
			} else {
				found.ApplyFrom(in)
				updated = append(updated, found)
			}
		}

		if err := im.flightRepo.PersistBatch(ctx, created, updated); err != nil {
			im.logger.Error("Error importing flight batch", "error", err)
			if cause := errors.Unwrap(err); cause != nil {
				im.logger.Error("Flight batch failure cause", "error", cause)
			}
			if im.metrics != nil {
				im.metrics.BatchErrors.Inc()
			}
			continue
		}

		imported += len(created) + len(updated)
		im.countRows("flights", len(created)+len(updated))
		im.logger.Info("Imported flights so far", "count", imported)
	}

	im.logger.Info("Finished importing flights", "count", imported)
	return nil
}

// ImportSubscriptions reconciles the subscription CSV against the store.
// Duplicate composite keys within one batch collapse to the first
// occurrence before any store access.
func (im *Importer) ImportSubscriptions(ctx context.Context, path string) error {
	defer im.observeDuration("subscriptions", time.Now())

	f, err := im.open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	rdr := csvio.NewRowReader(f)

	imported := 0
	for {
		batch, err := im.readBatch(rdr)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			break
		}

		seen := make(map[entity.SubscriptionKey]bool, len(batch))
		var distinct []*entity.Subscription
		for _, row := range batch {
			in, ok := subscriptionFromRow(row)
			if !ok {
				im.skipRow("subscriptions", "malformed")
				continue
			}
			if seen[in.Key()] {
				im.skipRow("subscriptions", "duplicate")
				continue
			}
			seen[in.Key()] = true
			distinct = append(distinct, in)
		}

		var created, updated []*entity.Subscription
		for _, in := range distinct {
			found, err := im.subscriptionRepo.FindByKey(ctx, in.AgencyID, in.OriginCityID, in.DestinationCityID)
			if err != nil {
				return fmt.Errorf("look up subscription: %w", err)
			}
			if found == nil {
				created = append(created, in)
			} else {
				found.ApplyFrom(in)
				updated = append(updated, found)
			}
		}

		if err := im.subscriptionRepo.PersistBatch(ctx, created, updated); err != nil {
			return fmt.Errorf("persist subscription batch: %w", err)
		}
		imported += len(distinct)
		im.countRows("subscriptions", len(distinct))
	}

	im.logger.Info("Finished importing subscriptions", "count", imported)
	return nil
}

// open opens a CSV source, surfacing a missing file as a distinct
// not-found condition.
func (im *Importer) open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("csv file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("open csv file %s: %w", path, err)
	}
	return f, nil
}

// readBatch reads up to batchSize rows. An empty batch means the source is
// exhausted.
func (im *Importer) readBatch(rdr *csvio.RowReader) ([]csvio.Row, error) {
	batch := make([]csvio.Row, 0, im.batchSize)
	for len(batch) < im.batchSize {
		row, err := rdr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		batch = append(batch, row)
	}
	return batch, nil
}

func (im *Importer) skipRow(source, reason string) {
	if im.metrics != nil {
		im.metrics.RowsSkipped.WithLabelValues(source, reason).Inc()
	}
}

func (im *Importer) countRows(source string, n int) {
	if im.metrics != nil {
		im.metrics.RowsImported.WithLabelValues(source).Add(float64(n))
	}
}

func (im *Importer) observeDuration(source string, start time.Time) {
	if im.metrics != nil {
		im.metrics.ImportDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	}
}

func distinctRouteIDs(batch []csvio.Row) []uint {
	seen := make(map[uint]bool, len(batch))
	ids := make([]uint, 0, len(batch))
	for _, row := range batch {
		id, ok := row.Uint("route_id")
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

func routeFromRow(row csvio.Row) (*entity.Route, bool) {
	origin, ok := row.Int("origin_city_id")
	if !ok {
		return nil, false
	}
	dest, ok := row.Int("destination_city_id")
	if !ok {
		return nil, false
	}
	date, ok := row.Time("departure_date")
	if !ok {
		return nil, false
	}
	return &entity.Route{
		OriginCityID:      origin,
		DestinationCityID: dest,
		DepartureDate:     date,
	}, true
}

func flightFromRow(row csvio.Row) (*entity.Flight, bool) {
	routeID, ok := row.Uint("route_id")
	if !ok {
		return nil, false
	}
	departure, ok := row.Time("departure_time")
	if !ok {
		return nil, false
	}
	arrival, ok := row.Time("arrival_time")
	if !ok {
		return nil, false
	}
	airlineID, ok := row.Int("airline_id")
	if !ok {
		return nil, false
	}
	return &entity.Flight{
		RouteID:       routeID,
		DepartureTime: departure,
		ArrivalTime:   arrival,
		AirlineID:     airlineID,
	}, true
}

func subscriptionFromRow(row csvio.Row) (*entity.Subscription, bool) {
	agency, ok := row.Int("agency_id")
	if !ok {
		return nil, false
	}
	origin, ok := row.Int("origin_city_id")
	if !ok {
		return nil, false
	}
	dest, ok := row.Int("destination_city_id")
	if !ok {
		return nil, false
	}
	return &entity.Subscription{
		AgencyID:          agency,
		OriginCityID:      origin,
		DestinationCityID: dest,
	}, true
}
