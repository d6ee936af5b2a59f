package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"andinabi/internal/dataprocessing"
)

func TestHealthServiceReadiness(t *testing.T) {
	dir := t.TempDir()
	for _, name := range dataprocessing.SourceFiles {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("header\n"), 0644))
	}

	svc := NewHealthService(dir)
	status := svc.ReadinessCheck(context.Background())

	assert.Equal(t, "healthy", status.Status)
	assert.Len(t, status.Checks, len(dataprocessing.SourceFiles))
	for _, check := range status.Checks {
		assert.Equal(t, "ok", check)
	}
}

func TestHealthServiceDegradedWhenFilesMissing(t *testing.T) {
	svc := NewHealthService(t.TempDir())

	status := svc.ReadinessCheck(context.Background())

	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "missing", status.Checks[dataprocessing.SalesFile])
}

func TestHealthServiceLiveness(t *testing.T) {
	svc := NewHealthService(t.TempDir())

	status := svc.LivenessCheck(context.Background())

	assert.Equal(t, "alive", status.Status)
	assert.Equal(t, Version, status.Version)
}
