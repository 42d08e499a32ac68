// Package sim runs the mission engine: a single goroutine owning the
// simulated drone and detection field, driven by a ticker and a command
// channel.
package sim

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ishant3366/minealert/internal/detect"
	"github.com/ishant3366/minealert/internal/drone"
	"github.com/ishant3366/minealert/internal/models"
)

// Battery thresholds for low-battery events.
const (
	batteryWarnLevel   = 20.0
	batteryDangerLevel = 5.0
)

// Recorder persists detections and events. Failures are logged by the
// engine, never fatal.
type Recorder interface {
	SaveDetection(*models.Detection) error
	SaveEvent(*models.Event) error
}

// Metrics receives engine counters. Implemented by observability.Collector.
type Metrics interface {
	CommandHandled(cmd string)
	DetectionFound(classification string)
	Tick(t models.Telemetry)
}

type telemetryReq struct {
	reply chan models.Telemetry
}

type subscribeReq struct {
	ch chan models.Telemetry
}

// Engine drives the drone and detection simulators.
type Engine struct {
	drone    *drone.Drone
	field    *detect.Field
	recorder Recorder
	metrics  Metrics
	log      *zap.Logger
	rng      *rand.Rand

	tickEvery time.Duration

	cmdCh       chan Command
	telemetryCh chan telemetryReq
	subscribeCh chan subscribeReq
	unsubCh     chan chan models.Telemetry
	done        chan struct{} // closed when Run returns

	lowBatteryLevel string // last low-battery severity reported
}

// Config configures the engine.
type Config struct {
	OriginLat float64
	OriginLon float64
	TickEvery time.Duration
	Seed      int64 // 0 means time-seeded

	Recorder Recorder
	Metrics  Metrics
	Logger   *zap.Logger
}

// New builds an engine with a parked drone at the origin.
func New(cfg Config) *Engine {
	if cfg.TickEvery <= 0 {
		cfg.TickEvery = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	return &Engine{
		drone: drone.New(cfg.OriginLat, cfg.OriginLon),
		// the field gets its own source: sensor endpoints draw from it
		// concurrently with the engine loop
		field:       detect.NewField(rand.New(rand.NewSource(seed + 1))),
		recorder:    cfg.Recorder,
		metrics:     cfg.Metrics,
		log:         cfg.Logger,
		rng:         rng,
		tickEvery:   cfg.TickEvery,
		cmdCh:       make(chan Command, 64),
		telemetryCh: make(chan telemetryReq, 16),
		subscribeCh: make(chan subscribeReq, 16),
		unsubCh:     make(chan chan models.Telemetry, 16),
		done:        make(chan struct{}),
	}
}

// Field exposes the detection field for read-only sensor queries.
func (e *Engine) Field() *detect.Field { return e.field }

// Submit queues a control command. Commands are dropped when the engine is
// overloaded.
func (e *Engine) Submit(cmd Command) {
	select {
	case e.cmdCh <- cmd:
	default:
		e.log.Warn("command dropped, engine overloaded", zap.String("type", string(cmd.Type)))
	}
}

// Telemetry returns the current drone snapshot.
func (e *Engine) Telemetry(ctx context.Context) (models.Telemetry, error) {
	req := telemetryReq{reply: make(chan models.Telemetry, 1)}
	select {
	case e.telemetryCh <- req:
	case <-ctx.Done():
		return models.Telemetry{}, ctx.Err()
	}
	select {
	case t := <-req.reply:
		return t, nil
	case <-ctx.Done():
		return models.Telemetry{}, ctx.Err()
	}
}

// Subscribe returns a telemetry feed and an unsubscribe func. Slow
// subscribers drop frames.
func (e *Engine) Subscribe(ctx context.Context) (<-chan models.Telemetry, func()) {
	ch := make(chan models.Telemetry, 32)
	select {
	case e.subscribeCh <- subscribeReq{ch: ch}:
	case <-e.done:
		close(ch)
		return ch, func() {}
	case <-ctx.Done():
		close(ch)
		return ch, func() {}
	}
	// the send must not be dropped: a lost unsubscribe leaves the engine
	// fanning out to a channel nobody reads
	unsub := func() {
		select {
		case e.unsubCh <- ch:
		case <-e.done:
		}
	}
	return ch, unsub
}

// Run executes the engine loop until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	defer close(e.done)

	last := time.Now()
	subs := map[chan models.Telemetry]struct{}{}

	tick := time.NewTicker(e.tickEvery)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			for ch := range subs {
				close(ch)
			}
			return nil

		case req := <-e.subscribeCh:
			subs[req.ch] = struct{}{}
			req.ch <- e.drone.Snapshot(time.Now())

		case ch := <-e.unsubCh:
			if _, ok := subs[ch]; ok {
				delete(subs, ch)
				close(ch)
			}

		case req := <-e.telemetryCh:
			req.reply <- e.drone.Snapshot(time.Now())

		case cmd := <-e.cmdCh:
			e.apply(cmd, time.Now())

		case t := <-tick.C:
			dt := t.Sub(last)
			if dt <= 0 {
				dt = e.tickEvery
			}
			last = t

			e.drone.Advance(dt, e.rng)
			if e.drone.Flying {
				if det := e.field.Check(e.drone.Latitude, e.drone.Longitude, t); det != nil {
					e.recordDetection(det)
				}
			}
			e.checkBattery(t)

			st := e.drone.Snapshot(t)
			if e.metrics != nil {
				e.metrics.Tick(st)
			}
			for ch := range subs {
				select {
				case ch <- st:
				default:
					// slow subscriber, drop the frame
				}
			}
		}
	}
}

// apply executes a control command and records the matching event.
func (e *Engine) apply(cmd Command, now time.Time) {
	var msg, severity string

	switch cmd.Type {
	case CmdTakeoff:
		e.drone.Takeoff()
		msg, severity = "Drone takeoff initiated", models.SeverityInfo
	case CmdLand:
		e.drone.Land()
		msg, severity = "Drone landing initiated", models.SeverityInfo
	case CmdMove:
		e.drone.Move(cmd.Dir)
		msg, severity = fmt.Sprintf("Drone moved %s", dirName(cmd.Dir)), models.SeverityInfo
	case CmdClimb:
		e.drone.Climb()
		msg, severity = "Drone altitude increased", models.SeverityInfo
	case CmdDescend:
		e.drone.Descend()
		msg, severity = "Drone altitude decreased", models.SeverityInfo
	case CmdReturnHome:
		e.drone.ReturnHome()
		msg, severity = "Drone returning to home position", models.SeverityWarning
	case CmdEmergencyStop:
		e.drone.EmergencyStop()
		msg, severity = "EMERGENCY STOP activated", models.SeverityDanger
	default:
		e.log.Warn("unknown command", zap.String("type", string(cmd.Type)))
		return
	}

	e.log.Info("command handled",
		zap.String("type", string(cmd.Type)),
		zap.Float64("lat", e.drone.Latitude),
		zap.Float64("lon", e.drone.Longitude))
	if e.metrics != nil {
		e.metrics.CommandHandled(string(cmd.Type))
	}
	e.recordEvent("control", msg, severity, now)
}

func (e *Engine) recordDetection(det *models.Detection) {
	e.log.Info("detection",
		zap.String("classification", det.Classification),
		zap.Float64("confidence", det.Confidence),
		zap.Float64("lat", det.Latitude),
		zap.Float64("lon", det.Longitude))

	if e.metrics != nil {
		e.metrics.DetectionFound(det.Classification)
	}
	if e.recorder != nil {
		if err := e.recorder.SaveDetection(det); err != nil {
			e.log.Error("failed to save detection", zap.Error(err))
		}
	}

	severity := models.SeverityInfo
	switch det.Classification {
	case models.ClassLandmine:
		severity = models.SeverityDanger
	case models.ClassMetalDebris:
		severity = models.SeverityWarning
	}
	msg := fmt.Sprintf("%s detected with %.2f%% confidence", det.Classification, det.Confidence)
	e.recordEvent("detection", msg, severity, det.Timestamp)
}

// checkBattery emits a low-battery event once per threshold crossing.
func (e *Engine) checkBattery(now time.Time) {
	level := ""
	switch {
	case e.drone.Battery <= batteryDangerLevel:
		level = models.SeverityDanger
	case e.drone.Battery <= batteryWarnLevel:
		level = models.SeverityWarning
	}
	if level == e.lowBatteryLevel {
		return
	}
	e.lowBatteryLevel = level
	if level == "" {
		return
	}
	msg := fmt.Sprintf("Battery low: %.1f%%", e.drone.Battery)
	e.recordEvent("system", msg, level, now)
}

func (e *Engine) recordEvent(eventType, msg, severity string, now time.Time) {
	if e.recorder == nil {
		return
	}
	evt := &models.Event{
		ID:       uuid.New().String(),
		Time:     now,
		Type:     eventType,
		Message:  msg,
		Severity: severity,
	}
	if err := e.recorder.SaveEvent(evt); err != nil {
		e.log.Error("failed to save event", zap.Error(err))
	}
}

func dirName(d drone.Direction) string {
	switch d {
	case drone.North:
		return "forward"
	case drone.South:
		return "backward"
	case drone.East:
		return "right"
	case drone.West:
		return "left"
	}
	return "unknown"
}
