package usecase

import (
	"context"
	"time"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is any dependency that can report its own reachability
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthUsecase interface {
	// Check reports per-component status and whether every required component is up
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	required map[string]Pinger
	optional map[string]Pinger
}

// NewHealthUsecase builds a checker. Optional components degrade the report but not the verdict.
func NewHealthUsecase(required, optional map[string]Pinger) HealthUsecase {
	return &healthUsecase{required: required, optional: optional}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	status := map[string]string{"status": "ok"}
	healthy := true

	for name, p := range u.required {
		if !ping(ctx, p) {
			status[name] = "down"
			healthy = false
			continue
		}
		status[name] = "ok"
	}
	for name, p := range u.optional {
		if p == nil {
			status[name] = "disabled"
			continue
		}
		if !ping(ctx, p) {
			status[name] = "degraded"
			continue
		}
		status[name] = "ok"
	}

	if !healthy {
		status["status"] = "unavailable"
	}
	return status, healthy
}

func ping(ctx context.Context, p Pinger) bool {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	return p.Ping(ctx) == nil
}
