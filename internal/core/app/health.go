package app

import (
	"context"
	"fmt"
	"time"
)

type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components map[string]string `json:"components"`
}

type HealthService struct {
	app *App
}

func NewHealthService(app *App) *HealthService {
	return &HealthService{app: app}
}

func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:     "up",
		Timestamp:  time.Now().UTC(),
		Components: make(map[string]string),
	}

	status.Components["deps"] = fmt.Sprintf("ok (%d libraries)", len(s.app.deps))

	if s.app.History != nil {
		status.Components["history"] = "ok (" + s.app.History.Path() + ")"
	} else if s.app.Config.DB.Enabled {
		status.Status = "degraded"
		status.Components["history"] = "missing but enabled in config"
	} else {
		status.Components["history"] = "disabled"
	}

	failed := 0
	for _, r := range s.app.LastResults() {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		status.Status = "degraded"
		status.Components["conversions"] = fmt.Sprintf("%d failing", failed)
	} else {
		status.Components["conversions"] = "ok"
	}

	return status
}
