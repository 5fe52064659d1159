package shipping

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	serviceRepo "nekokin/database/repository/service"
	"nekokin/models"
	"nekokin/services/booking"
	"nekokin/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Service prices pet transport by resolving the road distance between two
// addresses and applying the shipment service's per-kilometre rate.
type Service struct {
	Services  serviceRepo.ServiceRepository
	Providers []Provider
	Cache     *redis.Client
	CacheTTL  time.Duration
	Logger    *zap.Logger
}

func NewService(services serviceRepo.ServiceRepository, cache *redis.Client, logger *zap.Logger, providers ...Provider) *Service {
	return &Service{
		Services:  services,
		Providers: providers,
		Cache:     cache,
		CacheTTL:  utils.QuoteCacheTTL,
		Logger:    logger,
	}
}

type cachedEstimate struct {
	models.DistanceEstimate
	Provider string `json:"provider"`
}

// Quote resolves the distance between origin and destination and prices it
// against the given shipment service.
func (s *Service) Quote(ctx context.Context, serviceID, origin, destination string) (*models.ShipmentQuote, error) {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if serviceID == "" || origin == "" || destination == "" {
		return nil, booking.NewValidationError("serviceId, origin and destination are required")
	}

	svc, err := s.Services.GetByID(serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, booking.NewNotFoundError("service %s does not exist", serviceID)
	}
	if svc.Category != models.CategoryShipment {
		return nil, booking.NewValidationError("service %s is not a shipment service", serviceID)
	}

	est, provider, err := s.distance(ctx, origin, destination)
	if err != nil {
		return nil, err
	}

	distanceKm := float64(est.DistanceValue) / 1000
	amount, err := booking.ComputeShipmentAmount(svc, distanceKm)
	if err != nil {
		return nil, err
	}
	return &models.ShipmentQuote{
		DistanceEstimate: *est,
		ServiceID:        serviceID,
		Amount:           amount,
		Provider:         provider,
	}, nil
}

// distance consults the cache, then the providers in order. The first
// provider that answers wins; its result is cached for the route.
func (s *Service) distance(ctx context.Context, origin, destination string) (*models.DistanceEstimate, string, error) {
	key := quoteKey(origin, destination)
	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, key).Result(); err == nil {
			var cached cachedEstimate
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached.DistanceEstimate, cached.Provider, nil
			}
		}
	}

	var lastErr error
	for _, p := range s.Providers {
		est, err := p.Distance(ctx, origin, destination)
		if err != nil {
			if booking.CodeOf(err) == booking.CodeValidation {
				return nil, "", err
			}
			s.Logger.Warn("distance provider failed, trying next",
				zap.String("provider", p.Name()), zap.Error(err))
			lastErr = err
			continue
		}
		if s.Cache != nil {
			if raw, err := json.Marshal(cachedEstimate{DistanceEstimate: *est, Provider: p.Name()}); err == nil {
				s.Cache.Set(ctx, key, raw, s.CacheTTL)
			}
		}
		return est, p.Name(), nil
	}
	if lastErr != nil {
		return nil, "", lastErr
	}
	return nil, "", booking.NewExternalError("no distance provider is configured")
}

func quoteKey(origin, destination string) string {
	sum := sha1.Sum([]byte(strings.ToLower(origin) + "|" + strings.ToLower(destination)))
	return utils.QuoteCachePrefix + hex.EncodeToString(sum[:])
}
