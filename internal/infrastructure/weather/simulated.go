// Package weather provides a stand-in for a real weather API.
package weather

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/domain"
)

var conditions = []string{"Sunny", "Partly Cloudy", "Cloudy", "Rainy", "Stormy", "Foggy", "Snowy"}

// SimulatedProvider returns random but plausible conditions.
type SimulatedProvider struct{}

func NewSimulatedProvider() *SimulatedProvider {
	return &SimulatedProvider{}
}

func (p *SimulatedProvider) Current(_ context.Context, city string) (*domain.Weather, error) {
	return &domain.Weather{
		City:        city,
		Temperature: fmt.Sprintf("%d°C", between(15, 35)),
		Condition:   conditions[rand.IntN(len(conditions))],
		Humidity:    fmt.Sprintf("%d%%", between(40, 90)),
		WindSpeed:   fmt.Sprintf("%d km/h", between(5, 20)),
	}, nil
}

// between returns a uniform integer in [lo, hi].
func between(lo, hi int) int {
	return lo + rand.IntN(hi-lo+1)
}
