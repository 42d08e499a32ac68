package imagery

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ishant3366/minealert/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minefield.jpg")
	require.NoError(t, os.WriteFile(path, []byte("fake image"), 0o644))

	a := NewAnnotator()
	now := time.Now()
	dets, err := a.Annotate(path, 34.0522, -118.2437, now)
	require.NoError(t, err)
	require.Len(t, dets, 4)

	first := dets[0]
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, now, first.Timestamp)
	assert.Equal(t, models.ClassLandmine, first.Classification)
	assert.Equal(t, 93.5, first.Confidence)
	assert.Equal(t, path, first.ImagePath)
	assert.Equal(t, 146, first.X)
	assert.Equal(t, 164, first.Y)
	assert.Equal(t, 35, first.Width)
	assert.Equal(t, 33, first.Height)

	// IDs are unique per record
	assert.NotEqual(t, dets[0].ID, dets[1].ID)
}

func TestAnnotateMissingImage(t *testing.T) {
	a := NewAnnotator()
	_, err := a.Annotate(filepath.Join(t.TempDir(), "nope.jpg"), 0, 0, time.Now())
	assert.Error(t, err)
}
