package app

import (
	"context"
)

type HealthStatus struct {
	Status   string   `json:"status"`
	Grammars []string `json:"grammars"`
	Judge    string   `json:"judge"`
}

// HealthService reports process liveness for the observability server.
type HealthService struct {
	service *Service
}

func NewHealthService(service *Service) *HealthService {
	return &HealthService{service: service}
}

func (h *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:   "up",
		Grammars: h.service.registry.Languages(),
		Judge:    "disabled",
	}
	if h.service.judge != nil {
		status.Judge = h.service.judge.ModelName()
	}
	if len(status.Grammars) == 0 {
		status.Status = "degraded"
	}
	return status
}
