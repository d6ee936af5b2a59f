package services

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"andinabi/internal/dataprocessing"
)

// Version is the build version, overridden at link time.
var Version = "dev"

// HealthService reports process liveness and data readiness.
type HealthService struct {
	dataDir string
	started time.Time
}

// NewHealthService creates the health service over the data directory.
func NewHealthService(dataDir string) *HealthService {
	return &HealthService{dataDir: dataDir, started: time.Now()}
}

// HealthStatus is the health endpoint payload.
type HealthStatus struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Uptime  string            `json:"uptime"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// HealthCheck reports liveness plus a readiness summary.
func (s *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := s.ReadinessCheck(ctx)
	status.Uptime = time.Since(s.started).Round(time.Second).String()
	return status
}

// ReadinessCheck verifies every source file exists. The process is
// "degraded", not down, when files are missing: the API still answers
// but dataset loads will fail.
func (s *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	checks := make(map[string]string, len(dataprocessing.SourceFiles))
	ready := true
	for _, name := range dataprocessing.SourceFiles {
		if _, err := os.Stat(filepath.Join(s.dataDir, name)); err != nil {
			checks[name] = "missing"
			ready = false
			continue
		}
		checks[name] = "ok"
	}

	status := "healthy"
	if !ready {
		status = "degraded"
	}
	return HealthStatus{Status: status, Version: Version, Checks: checks}
}

// LivenessCheck reports bare process liveness.
func (s *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{Status: "alive", Version: Version}
}
