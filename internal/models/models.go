package models

import "time"

// Classification values produced by the detection simulator.
const (
	ClassLandmine    = "Landmine"
	ClassMetalDebris = "Metal Debris"
	ClassSafeZone    = "Safe Zone"
)

// Event severities, in increasing order of urgency.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityDanger  = "danger"
)

// Detection is a single simulated or image-derived detection record.
// Bounding box fields are only set for image-derived detections.
type Detection struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	Classification string    `json:"classification"`
	Confidence     float64   `json:"confidence"`
	ImagePath      string    `json:"image_path,omitempty"`
	X              int       `json:"x,omitempty"`
	Y              int       `json:"y,omitempty"`
	Width          int       `json:"width,omitempty"`
	Height         int       `json:"height,omitempty"`
}

// Event is a timestamped log entry describing a control action, a detection
// or a system message.
type Event struct {
	ID       string    `json:"id"`
	Time     time.Time `json:"time"`
	Type     string    `json:"type"`
	Message  string    `json:"message"`
	Severity string    `json:"severity"`
}

// Telemetry is a point-in-time snapshot of the simulated drone.
type Telemetry struct {
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	Altitude       float64   `json:"altitude"`
	Speed          float64   `json:"speed"`
	Heading        float64   `json:"heading"`
	BatteryLevel   float64   `json:"battery_level"`
	SignalStrength float64   `json:"signal_strength"`
	IsFlying       bool      `json:"is_flying"`
	Timestamp      time.Time `json:"timestamp"`
}
