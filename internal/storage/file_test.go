package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal"
)

func newTestFileStorage(t *testing.T) *FileStorage {
	t.Helper()
	file := filepath.Join(t.TempDir(), "profiles.json")
	s, err := NewFileStorage(file, internal.NewZapLogger(zap.NewNop().Sugar()))
	assert.NoError(t, err)
	t.Cleanup(s.Shutdown)
	return s
}

func TestFileStorage_NoProfileIsNotAnError(t *testing.T) {
	s := newTestFileStorage(t)
	profile, err := s.GetProfile(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Nil(t, profile)
}

func TestFileStorage_UpsertAndGet(t *testing.T) {
	s := newTestFileStorage(t)
	ctx := context.Background()

	err := s.UpsertProfile(ctx, &internal.HealthProfile{
		ID: "u1",
		LatestDiagnosticResponse: &internal.DiagnosticResponse{
			Summary:    "ok",
			AlertColor: internal.AlertYellow,
		},
		UpdatedAt: time.Now(),
	})
	assert.NoError(t, err)

	profile, err := s.GetProfile(ctx, "u1")
	assert.NoError(t, err)
	assert.NotNil(t, profile)
	assert.Equal(t, internal.AlertYellow, profile.LatestDiagnosticResponse.AlertColor)
}

func TestFileStorage_LoadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "profiles.json")
	seed := `[{"id":"u1","latest_diagnostic_response":{"summary":"seeded","alert_color":"green"},"updated_at":"2025-01-01T00:00:00Z"}]`
	assert.NoError(t, os.WriteFile(file, []byte(seed), 0644))

	s, err := NewFileStorage(file, internal.NewZapLogger(zap.NewNop().Sugar()))
	assert.NoError(t, err)
	defer s.Shutdown()

	profile, err := s.GetProfile(context.Background(), "u1")
	assert.NoError(t, err)
	assert.NotNil(t, profile)
	assert.Equal(t, "seeded", profile.LatestDiagnosticResponse.Summary)
}
