package detect

import "time"

// Ambient noise floors for the simulated sensors.
const (
	metalAmbient   = 10.0
	thermalAmbient = 5.0
)

// MetalReading simulates a metal detector reading (0-100) at a position.
// Hotspots register over 1.5x their radius; closer means stronger.
func (f *Field) MetalReading(lat, lon float64) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	reading := metalAmbient

	for _, h := range f.Landmines {
		r := h.Radius * 1.5
		if d := distance(lat, lon, h.Lat, h.Lon); d < r {
			reading = max(reading, (1-d/r)*100)
		}
	}
	for _, h := range f.Debris {
		r := h.Radius * 1.5
		if d := distance(lat, lon, h.Lat, h.Lon); d < r {
			// debris registers less intensely than landmines
			reading = max(reading, (1-d/r)*75)
		}
	}

	reading += f.rng.Float64()*10 - 5
	return clamp(reading, 0, 100)
}

// ThermalReading simulates a thermal anomaly reading (0-100). Buried
// explosives carry a thermal signature that peaks in the afternoon sun.
func (f *Field) ThermalReading(lat, lon float64, now time.Time) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	reading := thermalAmbient

	for _, h := range f.Landmines {
		r := h.Radius * 1.2
		if d := distance(lat, lon, h.Lat, h.Lon); d < r {
			reading = max(reading, (1-d/r)*85)
		}
	}

	switch hour := now.Hour(); {
	case hour >= 10 && hour <= 16:
		reading *= 1.2
	case (hour >= 6 && hour <= 9) || (hour >= 17 && hour <= 19):
		reading *= 1.1
	}

	reading += f.rng.Float64()*6 - 3
	return clamp(reading, 0, 100)
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
