package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"flightchange-service/internal/domain/entity"
)

var reportHeader = []string{
	"flight_id",
	"origin_city_id",
	"destination_city_id",
	"departure_time",
	"arrival_time",
	"airline_id",
	"status",
}

// WriteReport writes the ordered change list to a CSV file at path,
// overwriting any previous report.
func WriteReport(path string, changes []entity.ChangeEvent) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(reportHeader); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}

	for _, c := range changes {
		record := []string{
			strconv.FormatUint(uint64(c.FlightID), 10),
			strconv.Itoa(c.OriginCityID),
			strconv.Itoa(c.DestinationCityID),
			c.DepartureTime.UTC().Format(time.RFC3339),
			c.ArrivalTime.UTC().Format(time.RFC3339),
			strconv.Itoa(c.AirlineID),
			string(c.Status),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write report row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}
