package sim

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishant3366/minealert/internal/drone"
	"github.com/ishant3366/minealert/internal/models"
)

// memRecorder captures persisted records for assertions.
type memRecorder struct {
	mu         sync.Mutex
	detections []models.Detection
	events     []models.Event
}

func (r *memRecorder) SaveDetection(d *models.Detection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detections = append(r.detections, *d)
	return nil
}

func (r *memRecorder) SaveEvent(e *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *e)
	return nil
}

func (r *memRecorder) eventMessages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Message)
	}
	return out
}

func (r *memRecorder) detectionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.detections)
}

// failingRecorder rejects every write, counting the attempts.
type failingRecorder struct {
	calls atomic.Int64
}

func (r *failingRecorder) SaveDetection(*models.Detection) error {
	r.calls.Add(1)
	return errors.New("disk full")
}

func (r *failingRecorder) SaveEvent(*models.Event) error {
	r.calls.Add(1)
	return errors.New("disk full")
}

func startEngine(t *testing.T, rec Recorder) (*Engine, context.CancelFunc) {
	t.Helper()
	eng := New(Config{
		OriginLat: 34.0522,
		OriginLon: -118.2437,
		TickEvery: 5 * time.Millisecond,
		Seed:      42,
		Recorder:  rec,
	})
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = eng.Run(ctx) }()
	t.Cleanup(cancel)
	return eng, cancel
}

func TestCommandsDriveTelemetry(t *testing.T) {
	rec := &memRecorder{}
	eng, _ := startEngine(t, rec)
	ctx := context.Background()

	st, err := eng.Telemetry(ctx)
	require.NoError(t, err)
	assert.False(t, st.IsFlying)

	eng.Submit(Command{Type: CmdTakeoff})
	require.Eventually(t, func() bool {
		st, err := eng.Telemetry(ctx)
		return err == nil && st.IsFlying
	}, time.Second, 5*time.Millisecond)

	eng.Submit(Command{Type: CmdMove, Dir: drone.North})
	eng.Submit(Command{Type: CmdLand})
	require.Eventually(t, func() bool {
		st, err := eng.Telemetry(ctx)
		return err == nil && !st.IsFlying
	}, time.Second, 5*time.Millisecond)

	msgs := rec.eventMessages()
	assert.Contains(t, msgs, "Drone takeoff initiated")
	assert.Contains(t, msgs, "Drone moved forward")
	assert.Contains(t, msgs, "Drone landing initiated")
}

func TestFlyingOverHotspotProducesDetections(t *testing.T) {
	rec := &memRecorder{}
	eng, _ := startEngine(t, rec)

	// The origin sits on a 0.7-probability landmine hotspot; a flying drone
	// should rack up detections within a few hundred ticks.
	eng.Submit(Command{Type: CmdTakeoff})
	require.Eventually(t, func() bool {
		return rec.detectionCount() > 0
	}, 5*time.Second, 10*time.Millisecond)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	det := rec.detections[0]
	assert.NotEmpty(t, det.ID)
	assert.NotEmpty(t, det.Classification)
	assert.Greater(t, det.Confidence, 0.0)
}

func TestGroundedDroneNeverDetects(t *testing.T) {
	rec := &memRecorder{}
	_, cancel := startEngine(t, rec)

	time.Sleep(100 * time.Millisecond)
	cancel()
	assert.Equal(t, 0, rec.detectionCount())
}

func TestSubscribeReceivesFrames(t *testing.T) {
	rec := &memRecorder{}
	eng, _ := startEngine(t, rec)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ch, unsub := eng.Subscribe(ctx)
	defer unsub()

	var frames int
	for frames < 3 {
		select {
		case _, ok := <-ch:
			require.True(t, ok)
			frames++
		case <-ctx.Done():
			t.Fatal("timed out waiting for telemetry frames")
		}
	}
}

func TestRecorderFailuresDoNotStopEngine(t *testing.T) {
	rec := &failingRecorder{}
	eng, _ := startEngine(t, rec)
	ctx := context.Background()

	eng.Submit(Command{Type: CmdTakeoff})
	require.Eventually(t, func() bool {
		return rec.calls.Load() > 0
	}, time.Second, 5*time.Millisecond, "the takeoff event write should have been attempted")

	// the loop keeps ticking and answering after failed writes
	require.Eventually(t, func() bool {
		st, err := eng.Telemetry(ctx)
		return err == nil && st.IsFlying && st.BatteryLevel < 100
	}, 5*time.Second, 10*time.Millisecond)

	eng.Submit(Command{Type: CmdLand})
	require.Eventually(t, func() bool {
		st, err := eng.Telemetry(ctx)
		return err == nil && !st.IsFlying
	}, time.Second, 5*time.Millisecond)
}

func TestUnsubscribeClosesFeed(t *testing.T) {
	rec := &memRecorder{}
	eng, _ := startEngine(t, rec)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ch, unsub := eng.Subscribe(ctx)
	select {
	case <-ch:
	case <-ctx.Done():
		t.Fatal("timed out waiting for the first frame")
	}

	unsub()
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return // deregistered and closed
			}
		case <-ctx.Done():
			t.Fatal("feed never closed after unsubscribe")
		}
	}
}

func TestUnsubscribeAfterShutdownReturns(t *testing.T) {
	rec := &memRecorder{}
	eng, cancel := startEngine(t, rec)

	ctx := context.Background()
	ch, unsub := eng.Subscribe(ctx)
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the first frame")
	}

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond, "shutdown closes subscriber feeds")

	returned := make(chan struct{})
	go func() {
		unsub()
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("unsubscribe blocked after engine shutdown")
	}
}

func TestEmergencyStopEvent(t *testing.T) {
	rec := &memRecorder{}
	eng, _ := startEngine(t, rec)
	ctx := context.Background()

	eng.Submit(Command{Type: CmdTakeoff})
	eng.Submit(Command{Type: CmdEmergencyStop})
	require.Eventually(t, func() bool {
		st, err := eng.Telemetry(ctx)
		return err == nil && !st.IsFlying && st.Altitude == 0
	}, time.Second, 5*time.Millisecond)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	var found bool
	for _, e := range rec.events {
		if e.Message == "EMERGENCY STOP activated" {
			found = true
			assert.Equal(t, models.SeverityDanger, e.Severity)
		}
	}
	assert.True(t, found)
}

func TestLowBatteryEventFiresOncePerCrossing(t *testing.T) {
	rec := &memRecorder{}
	eng := New(Config{OriginLat: 0, OriginLon: 0, Seed: 7, Recorder: rec})

	now := time.Now()
	eng.drone.Takeoff()
	eng.drone.Battery = 15
	eng.checkBattery(now)
	eng.checkBattery(now)

	eng.drone.Battery = 3
	eng.checkBattery(now)
	eng.checkBattery(now)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.events, 2)
	assert.Equal(t, models.SeverityWarning, rec.events[0].Severity)
	assert.Equal(t, models.SeverityDanger, rec.events[1].Severity)
}
