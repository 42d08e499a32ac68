// Package detect simulates sensor detections for the drone. Detection events
// are biased by proximity to hardcoded spatial hotspots.
package detect

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ishant3366/minealert/internal/models"
)

// Hotspot biases random detection generation around a point.
type Hotspot struct {
	Lat         float64
	Lon         float64
	Radius      float64 // degrees
	Probability float64
}

// Field holds the hotspot sets for a survey area. The hotspot slices are
// immutable after construction; the rng is guarded so the engine and the
// sensor endpoints can share one field.
type Field struct {
	Landmines []Hotspot
	Debris    []Hotspot
	SafeZones []Hotspot

	mu  sync.Mutex
	rng *rand.Rand
}

// NewField returns a field with the built-in demo hotspots. A nil rng falls
// back to a time-seeded source.
func NewField(rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Field{
		Landmines: []Hotspot{
			{Lat: 34.0522, Lon: -118.2437, Radius: 0.001, Probability: 0.7},
			{Lat: 34.0530, Lon: -118.2450, Radius: 0.0008, Probability: 0.6},
			{Lat: 34.0515, Lon: -118.2420, Radius: 0.0005, Probability: 0.8},
		},
		Debris: []Hotspot{
			{Lat: 34.0525, Lon: -118.2440, Radius: 0.002, Probability: 0.5},
			{Lat: 34.0518, Lon: -118.2435, Radius: 0.001, Probability: 0.4},
			{Lat: 34.0528, Lon: -118.2430, Radius: 0.001, Probability: 0.6},
		},
		SafeZones: []Hotspot{
			{Lat: 34.0535, Lon: -118.2455, Radius: 0.002, Probability: 0.9},
			{Lat: 34.0510, Lon: -118.2415, Radius: 0.001, Probability: 0.8},
		},
		rng: rng,
	}
}

// distance is a planar degree-space distance. Good enough over survey-sized
// areas; a real system would use haversine.
func distance(lat1, lon1, lat2, lon2 float64) float64 {
	return math.Sqrt((lat1-lat2)*(lat1-lat2) + (lon1-lon2)*(lon1-lon2))
}

// Classify rolls for a detection at the given position. Hotspot sets are
// checked in order of danger; outside all hotspots there is a 5% chance of a
// random detection.
func (f *Field) Classify(lat, lon float64) (classification string, confidence float64, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sets := []struct {
		class    string
		hotspots []Hotspot
	}{
		{models.ClassLandmine, f.Landmines},
		{models.ClassMetalDebris, f.Debris},
		{models.ClassSafeZone, f.SafeZones},
	}
	for _, set := range sets {
		for _, h := range set.hotspots {
			if distance(lat, lon, h.Lat, h.Lon) < h.Radius && f.rng.Float64() < h.Probability {
				return set.class, h.Probability * 100, true
			}
		}
	}

	if f.rng.Float64() < 0.05 {
		return f.randomClass(), 70 + f.rng.Float64()*25, true
	}
	return "", 0, false
}

// randomClass picks a classification weighted 0.2/0.5/0.3.
func (f *Field) randomClass() string {
	r := f.rng.Float64()
	switch {
	case r < 0.2:
		return models.ClassLandmine
	case r < 0.7:
		return models.ClassMetalDebris
	default:
		return models.ClassSafeZone
	}
}

// Check rolls for a detection and wraps a hit into a record. Returns nil when
// nothing is detected.
func (f *Field) Check(lat, lon float64, now time.Time) *models.Detection {
	class, confidence, ok := f.Classify(lat, lon)
	if !ok {
		return nil
	}
	return &models.Detection{
		ID:             uuid.New().String(),
		Timestamp:      now,
		Latitude:       lat,
		Longitude:      lon,
		Classification: class,
		Confidence:     confidence,
	}
}
