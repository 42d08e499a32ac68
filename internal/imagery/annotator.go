// Package imagery produces detection records for the demo survey image.
// There is no real computer vision here: the regions below come from manual
// analysis of the sample image.
package imagery

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/ishant3366/minealert/internal/models"
)

// Region is a predefined bounding box in the demo image.
type Region struct {
	X, Y, Width, Height int
	Confidence          float64
	Classification      string
}

// demoRegions are the landmine positions in the bundled sample image.
var demoRegions = []Region{
	{X: 146, Y: 164, Width: 35, Height: 33, Confidence: 93.5, Classification: models.ClassLandmine},
	{X: 396, Y: 139, Width: 37, Height: 35, Confidence: 93.0, Classification: models.ClassLandmine},
	{X: 143, Y: 367, Width: 40, Height: 38, Confidence: 84.0, Classification: models.ClassLandmine},
	{X: 391, Y: 389, Width: 42, Height: 40, Confidence: 94.0, Classification: models.ClassLandmine},
}

// Annotator turns image regions into detection records.
type Annotator struct {
	regions []Region
}

// NewAnnotator returns an annotator loaded with the demo regions.
func NewAnnotator() *Annotator {
	return &Annotator{regions: demoRegions}
}

// Regions returns the configured regions.
func (a *Annotator) Regions() []Region { return a.regions }

// Annotate builds detection records for the image at the given path, tagged
// with the survey position the image was captured at. The image must exist.
func (a *Annotator) Annotate(imagePath string, lat, lon float64, now time.Time) ([]models.Detection, error) {
	if _, err := os.Stat(imagePath); err != nil {
		return nil, fmt.Errorf("image not found: %w", err)
	}

	out := make([]models.Detection, 0, len(a.regions))
	for _, r := range a.regions {
		out = append(out, models.Detection{
			ID:             uuid.New().String(),
			Timestamp:      now,
			Latitude:       lat,
			Longitude:      lon,
			Classification: r.Classification,
			Confidence:     r.Confidence,
			ImagePath:      imagePath,
			X:              r.X,
			Y:              r.Y,
			Width:          r.Width,
			Height:         r.Height,
		})
	}
	return out, nil
}
