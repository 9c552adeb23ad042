package usecase

import (
	"context"
	"time"
)

// HealthProbe reports the state of one dependency, e.g. "ok" or "disabled".
type HealthProbe func(ctx context.Context) string

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	probes map[string]HealthProbe
}

func NewHealthUsecase(probes map[string]HealthProbe) HealthUsecase {
	return &healthUsecase{probes: probes}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := map[string]string{
		"status": "ok",
	}
	for name, probe := range u.probes {
		status[name] = probe(ctx)
	}
	return status
}
