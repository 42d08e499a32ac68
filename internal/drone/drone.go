// Package drone simulates a survey drone for landmine detection operations.
// It provides realistic positioning and status information without requiring
// actual hardware.
package drone

import (
	"math/rand"
	"time"

	"github.com/ishant3366/minealert/internal/models"
)

// Flight characteristics.
const (
	MaxSpeed     = 10.0   // m/s
	MaxAltitude  = 50.0   // meters
	MinAltitude  = 5.0    // meters
	MovementStep = 0.0001 // degrees, roughly 11 meters

	takeoffAltitude = 10.0
	cruiseSpeed     = 2.0
	returnSpeed     = 5.0

	stepCost    = 0.2 // battery % per horizontal step
	climbCost   = 0.3
	descendCost = 0.1
	returnCost  = 0.5

	flyingDrainPerSec = 0.05
	idleDrainPerSec   = 0.01
)

// Direction is a horizontal movement direction relative to the map.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// Drone holds the simulated state of a single drone. It is not safe for
// concurrent use; the sim engine owns it from a single goroutine.
type Drone struct {
	homeLat float64
	homeLon float64

	Latitude  float64
	Longitude float64
	Altitude  float64
	Speed     float64
	Heading   float64

	Battery float64
	Signal  float64
	Flying  bool
}

// New returns a drone parked at the given home position.
func New(lat, lon float64) *Drone {
	return &Drone{
		homeLat:   lat,
		homeLon:   lon,
		Latitude:  lat,
		Longitude: lon,
		Battery:   100,
		Signal:    95,
	}
}

// Takeoff puts the drone in the air at takeoff altitude.
func (d *Drone) Takeoff() {
	d.Flying = true
	d.Altitude = takeoffAltitude
	d.Speed = 1.0
}

// Land brings the drone to the ground.
func (d *Drone) Land() {
	d.Flying = false
	d.Altitude = 0
	d.Speed = 0
}

// Move shifts the drone one step in the given direction. Ignored while
// grounded.
func (d *Drone) Move(dir Direction) {
	if !d.Flying {
		return
	}
	switch dir {
	case North:
		d.Latitude += MovementStep
		d.Heading = 0
	case South:
		d.Latitude -= MovementStep
		d.Heading = 180
	case East:
		d.Longitude += MovementStep
		d.Heading = 90
	case West:
		d.Longitude -= MovementStep
		d.Heading = 270
	}
	d.Speed = cruiseSpeed
	d.consume(stepCost)
}

// Climb raises altitude by one meter up to the ceiling.
func (d *Drone) Climb() {
	if d.Flying && d.Altitude < MaxAltitude {
		d.Altitude++
		d.consume(climbCost)
	}
}

// Descend lowers altitude by one meter down to the floor.
func (d *Drone) Descend() {
	if d.Flying && d.Altitude > MinAltitude {
		d.Altitude--
		d.consume(descendCost)
	}
}

// ReturnHome moves the drone a geometric step toward its home position.
// Repeated calls converge on home.
func (d *Drone) ReturnHome() {
	if !d.Flying {
		return
	}
	d.Latitude = d.Latitude*0.8 + d.homeLat*0.2
	d.Longitude = d.Longitude*0.8 + d.homeLon*0.2
	d.Speed = returnSpeed
	d.consume(returnCost)
}

// EmergencyStop cuts power: zero speed and altitude, grounded.
func (d *Drone) EmergencyStop() {
	d.Speed = 0
	d.Altitude = 0
	d.Flying = false
}

// Advance applies time-based drain and jitter for an elapsed interval.
func (d *Drone) Advance(dt time.Duration, rng *rand.Rand) {
	sec := dt.Seconds()
	if d.Flying {
		d.consume(flyingDrainPerSec * sec)

		// slight position drift for realism
		if rng.Float64() < 0.3 {
			d.Latitude += rng.Float64()*0.00002 - 0.00001
			d.Longitude += rng.Float64()*0.00002 - 0.00001
		}

		d.Speed += rng.Float64()*0.4 - 0.2
		d.Speed = clamp(d.Speed, 0, MaxSpeed)
	} else {
		d.consume(idleDrainPerSec * sec)
		d.Speed = 0
	}

	d.Signal = clamp(d.Signal+rng.Float64()*4-2, 60, 100)
}

// Snapshot returns the current telemetry.
func (d *Drone) Snapshot(now time.Time) models.Telemetry {
	return models.Telemetry{
		Latitude:       d.Latitude,
		Longitude:      d.Longitude,
		Altitude:       d.Altitude,
		Speed:          d.Speed,
		Heading:        d.Heading,
		BatteryLevel:   d.Battery,
		SignalStrength: d.Signal,
		IsFlying:       d.Flying,
		Timestamp:      now,
	}
}

func (d *Drone) consume(amount float64) {
	d.Battery -= amount
	if d.Battery < 0 {
		d.Battery = 0
	}
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
