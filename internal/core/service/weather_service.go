package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/domain"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/ports"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/pkg/cache"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/pkg/metrics"
)

// WeatherService serves the configured city's weather from a cache it owns,
// refreshing from the provider when the entry is missing or stale.
type WeatherService struct {
	provider ports.WeatherProvider
	city     string
	cache    *cache.Cache[string, domain.Weather]
	group    singleflight.Group
	log      zerolog.Logger
}

func NewWeatherService(provider ports.WeatherProvider, city string, opts cache.Options, log zerolog.Logger) *WeatherService {
	return &WeatherService{
		provider: provider,
		city:     city,
		cache:    cache.New[string, domain.Weather](opts),
		log:      log,
	}
}

var _ ports.WeatherService = (*WeatherService)(nil)

// Current returns the weather and whether it was served from the cache.
// Concurrent misses share one provider call.
func (s *WeatherService) Current(ctx context.Context) (*domain.Weather, bool, error) {
	key := "weather-" + s.city
	if w, ok := s.cache.Get(key); ok {
		metrics.WeatherCacheTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("city", s.city).Msg("serving weather from cache")
		return &w, true, nil
	}
	metrics.WeatherCacheTotal.WithLabelValues("miss").Inc()

	v, err, _ := s.group.Do(key, func() (any, error) {
		w, err := s.provider.Current(ctx, s.city)
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, *w)
		return *w, nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("fetch weather: %w", err)
	}

	w := v.(domain.Weather)
	s.log.Debug().Str("city", s.city).Msg("fetched and cached weather")
	return &w, false, nil
}
