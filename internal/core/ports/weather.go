package ports

import (
	"context"

	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/domain"
)

// WeatherProvider fetches current conditions for a city.
type WeatherProvider interface {
	Current(ctx context.Context, city string) (*domain.Weather, error)
}

// WeatherService serves weather through a cache.
type WeatherService interface {
	// Current returns the weather and whether it came from the cache.
	Current(ctx context.Context) (*domain.Weather, bool, error)
}
