package services

import (
	"context"
	"time"

	"github.com/AquaBuilt/aqua-built-backend/logger"
	"github.com/AquaBuilt/aqua-built-backend/types"
	"go.uber.org/zap"
)

// HealthService reports readiness of the ingest pipeline. The service has no
// database; the worker pool is the only stateful dependency worth probing.
type HealthService struct {
	pool      *WorkerPool
	version   string
	startTime time.Time
	log       *zap.SugaredLogger
}

func NewHealthService(pool *WorkerPool, version string) *HealthService {
	return &HealthService{
		pool:      pool,
		version:   version,
		startTime: time.Now(),
		log:       logger.GetLogger(),
	}
}

func (h *HealthService) CheckHealth(ctx context.Context) types.HealthCheck {
	components := make(map[string]types.ComponentHealth)
	overallStatus := types.HealthStatusUp

	poolStatus := h.checkWorkerPool()
	components["worker_pool"] = poolStatus
	if poolStatus.Status == types.HealthStatusDown {
		overallStatus = types.HealthStatusDown
	} else if poolStatus.Status == types.HealthStatusDegraded {
		overallStatus = types.HealthStatusDegraded
	}

	return types.HealthCheck{
		Status:     overallStatus,
		Components: components,
		Version:    h.version,
		Uptime:     time.Since(h.startTime).Round(time.Second).String(),
	}
}

func (h *HealthService) checkWorkerPool() types.ComponentHealth {
	if h.pool == nil {
		return types.ComponentHealth{
			Status:  types.HealthStatusDegraded,
			Details: "Worker pool not configured, addendum fetches run inline",
		}
	}
	if !h.pool.IsRunning() {
		h.log.Errorw("Worker pool health check failed", "running", false)
		return types.ComponentHealth{
			Status:  types.HealthStatusDown,
			Details: "Worker pool not running",
		}
	}
	if h.pool.QueueDepth() >= h.pool.config.QueueSize {
		return types.ComponentHealth{
			Status:  types.HealthStatusDegraded,
			Details: "Worker pool queue at capacity",
		}
	}

	return types.ComponentHealth{
		Status: types.HealthStatusUp,
	}
}
