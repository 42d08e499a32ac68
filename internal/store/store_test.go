package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ishant3366/minealert/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func makeDetection(class string, ts time.Time) *models.Detection {
	return &models.Detection{
		ID:             uuid.New().String(),
		Timestamp:      ts,
		Latitude:       34.0522,
		Longitude:      -118.2437,
		Classification: class,
		Confidence:     87.5,
	}
}

func TestOpenCreatesSchema(t *testing.T) {
	s := newTestStore(t)

	dets, err := s.ListDetections()
	require.NoError(t, err)
	assert.Empty(t, dets)

	events, err := s.ListEvents(0)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "minealert.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveEvent(&models.Event{
		ID: uuid.New().String(), Time: time.Now(), Type: "system",
		Message: "started", Severity: models.SeverityInfo,
	}))
}

func TestSaveAndListDetections(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	older := makeDetection(models.ClassLandmine, base)
	newer := makeDetection(models.ClassMetalDebris, base.Add(time.Minute))
	require.NoError(t, s.SaveDetection(older))
	require.NoError(t, s.SaveDetection(newer))

	dets, err := s.ListDetections()
	require.NoError(t, err)
	require.Len(t, dets, 2)
	assert.Equal(t, newer.ID, dets[0].ID, "newest first")
	assert.Equal(t, older.ID, dets[1].ID)
	assert.Equal(t, models.ClassLandmine, dets[1].Classification)
	assert.Equal(t, 87.5, dets[1].Confidence)
	assert.True(t, dets[1].Timestamp.Equal(base))
}

func TestSaveDetectionDuplicateID(t *testing.T) {
	s := newTestStore(t)
	d := makeDetection(models.ClassLandmine, time.Now())
	require.NoError(t, s.SaveDetection(d))
	assert.Error(t, s.SaveDetection(d))
}

func TestListByClassification(t *testing.T) {
	s := newTestStore(t)
	base := time.Now().UTC()
	require.NoError(t, s.SaveDetection(makeDetection(models.ClassLandmine, base)))
	require.NoError(t, s.SaveDetection(makeDetection(models.ClassLandmine, base.Add(time.Second))))
	require.NoError(t, s.SaveDetection(makeDetection(models.ClassSafeZone, base.Add(2*time.Second))))

	mines, err := s.ListDetectionsByClassification(models.ClassLandmine)
	require.NoError(t, err)
	assert.Len(t, mines, 2)

	debris, err := s.ListDetectionsByClassification(models.ClassMetalDebris)
	require.NoError(t, err)
	assert.Empty(t, debris)
}

func TestDetectionStats(t *testing.T) {
	s := newTestStore(t)
	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		require.NoError(t, s.SaveDetection(makeDetection(models.ClassLandmine, base.Add(time.Duration(i)*time.Second))))
	}
	require.NoError(t, s.SaveDetection(makeDetection(models.ClassMetalDebris, base.Add(10*time.Second))))

	stats, err := s.DetectionStats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats[models.ClassLandmine])
	assert.Equal(t, 1, stats[models.ClassMetalDebris])
	assert.Equal(t, 0, stats[models.ClassSafeZone])
}

func TestImageDetectionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	d := makeDetection(models.ClassLandmine, time.Now().UTC())
	d.ImagePath = "sample_images/minefield.jpg"
	d.X, d.Y, d.Width, d.Height = 146, 164, 35, 33
	require.NoError(t, s.SaveDetection(d))

	dets, err := s.ListDetections()
	require.NoError(t, err)
	require.Len(t, dets, 1)
	assert.Equal(t, "sample_images/minefield.jpg", dets[0].ImagePath)
	assert.Equal(t, 146, dets[0].X)
	assert.Equal(t, 35, dets[0].Width)
}

func TestListEventsLimit(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.SaveEvent(&models.Event{
			ID:       uuid.New().String(),
			Time:     base.Add(time.Duration(i) * time.Second),
			Type:     "control",
			Message:  "takeoff",
			Severity: models.SeverityInfo,
		}))
	}

	events, err := s.ListEvents(2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.True(t, events[0].Time.After(events[1].Time), "newest first")

	all, err := s.ListEvents(0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}
