// Package redis implements the live courier position store with Redis GEO
// commands. Positions live in a single geo set keyed by courier ID.
package redis

import (
	"context"

	"mealdash/internal/core/domain/model/kernel"
	"mealdash/internal/core/ports"
	"mealdash/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const courierGeoKey = "tracking:couriers"

var _ ports.CourierLocationStore = &CourierLocationStore{}

// CourierLocationStore keeps last reported courier positions in Redis.
type CourierLocationStore struct {
	client *redis.Client
}

// NewCourierLocationStore creates a store over an existing Redis client.
func NewCourierLocationStore(client *redis.Client) *CourierLocationStore {
	return &CourierLocationStore{client: client}
}

// SetLocation records the courier's current position, replacing any
// previous one.
func (s *CourierLocationStore) SetLocation(
	ctx context.Context,
	courierID kernel.UUID,
	location kernel.GeoPoint,
) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if err := location.Validate(); err != nil {
		return err
	}

	return s.client.GeoAdd(ctx, courierGeoKey, &redis.GeoLocation{
		Name:      courierID.String(),
		Longitude: location.Lng(),
		Latitude:  location.Lat(),
	}).Err()
}

// GetLocation returns the courier's last reported position. Returns an
// ObjectNotFoundError when the courier never reported one.
func (s *CourierLocationStore) GetLocation(
	ctx context.Context,
	courierID kernel.UUID,
) (kernel.GeoPoint, error) {
	if err := courierID.Validate(); err != nil {
		return kernel.GeoPoint{}, err
	}

	positions, err := s.client.GeoPos(ctx, courierGeoKey, courierID.String()).Result()
	if err != nil {
		return kernel.GeoPoint{}, err
	}
	if len(positions) == 0 || positions[0] == nil {
		return kernel.GeoPoint{}, errs.NewObjectNotFoundError("courier location", courierID)
	}

	return kernel.NewGeoPoint(positions[0].Latitude, positions[0].Longitude)
}
