// Package export encodes stored detections for download.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/ishant3366/minealert/internal/models"
)

// csvHeader is the column order for CSV exports.
var csvHeader = []string{"id", "timestamp", "latitude", "longitude", "classification", "confidence"}

// WriteCSV writes detections as CSV with a header row.
func WriteCSV(w io.Writer, detections []models.Detection) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, d := range detections {
		record := []string{
			d.ID,
			d.Timestamp.UTC().Format(time.RFC3339),
			strconv.FormatFloat(d.Latitude, 'f', -1, 64),
			strconv.FormatFloat(d.Longitude, 'f', -1, 64),
			d.Classification,
			strconv.FormatFloat(d.Confidence, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes detections as indented JSON.
func WriteJSON(w io.Writer, detections []models.Detection) error {
	if detections == nil {
		detections = []models.Detection{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(detections)
}

// Filename returns a timestamped export filename, e.g.
// landmine_detections_20240501_120000.csv.
func Filename(format string, now time.Time) string {
	return fmt.Sprintf("landmine_detections_%s.%s", now.Format("20060102_150405"), format)
}
