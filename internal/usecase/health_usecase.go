package usecase

import "context"

// HealthProbe reports nil when the dependency it watches is reachable.
type HealthProbe func(ctx context.Context) error

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	probes map[string]HealthProbe
}

// NewHealthUsecase builds a checker over named probes. A nil probe marks an
// optional dependency that is switched off.
func NewHealthUsecase(probes map[string]HealthProbe) HealthUsecase {
	return &healthUsecase{probes: probes}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	checks := map[string]string{"status": "ok"}
	for name, probe := range u.probes {
		switch {
		case probe == nil:
			checks[name] = "disabled"
		case probe(ctx) != nil:
			checks[name] = "unavailable"
		default:
			checks[name] = "ok"
		}
	}
	return checks
}
