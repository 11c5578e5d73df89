package redis

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"uitgo/internal/domain"
	"uitgo/internal/repository"
)

const (
	geoKeyPrefix  = "drivers:geo:"
	metaKeyPrefix = "drivers:meta:"
)

// NearbyDriver is a driver location paired with its distance from the
// queried point.
type NearbyDriver struct {
	domain.DriverLocation
	DistanceKm float64
}

// LocationStore keeps each driver's current position in Redis. Positions are
// indexed per district/city scope (GEOADD under a scoped key) so that nearest
// queries never leave the requested administrative area, and a per-driver
// metadata hash records the scope a driver currently belongs to. Records are
// never expired; absence of recent updates is the only staleness signal.
type LocationStore struct {
	client *redis.Client
}

// NewLocationStore creates a new LocationStore.
func NewLocationStore(client *redis.Client) *LocationStore {
	return &LocationStore{client: client}
}

// Upsert creates or replaces the location record for a driver. When the
// driver moved to a different district/city the geo member is removed from
// the old scope before being added to the new one, so exactly one geo entry
// exists per driver at any time.
func (s *LocationStore) Upsert(ctx context.Context, loc domain.DriverLocation) error {
	metaKey := metaKeyPrefix + loc.DriverID

	prev, err := s.client.HGetAll(ctx, metaKey).Result()
	if err != nil {
		return err
	}

	if len(prev) > 0 {
		oldKey := scopedGeoKey(prev["city"], prev["district"])
		if oldKey != scopedGeoKey(loc.City, loc.District) {
			if err := s.client.ZRem(ctx, oldKey, loc.DriverID).Err(); err != nil {
				return err
			}
		}
	}

	updatedAt := loc.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	pipe := s.client.TxPipeline()
	pipe.GeoAdd(ctx, scopedGeoKey(loc.City, loc.District), &redis.GeoLocation{
		Name:      loc.DriverID,
		Longitude: loc.Lng,
		Latitude:  loc.Lat,
	})
	pipe.HSet(ctx, metaKey, map[string]any{
		"district":   loc.District,
		"city":       loc.City,
		"lat":        loc.Lat,
		"lng":        loc.Lng,
		"updated_at": updatedAt.Format(time.RFC3339Nano),
	})
	_, err = pipe.Exec(ctx)

	return err
}

// FindNearest returns the closest driver within radiusM meters of the given
// point whose district and city exactly match the query. Ties are broken by
// driver id. An empty scope is a normal outcome and maps to
// repository.ErrNotFound.
func (s *LocationStore) FindNearest(ctx context.Context, lat, lng float64, district, city string, radiusM float64) (*NearbyDriver, error) {
	results, err := s.client.GeoRadius(ctx, scopedGeoKey(city, district), lng, lat, &redis.GeoRadiusQuery{
		Radius:    radiusM,
		Unit:      "m",
		WithCoord: true,
		WithDist:  true,
		Sort:      "ASC",
	}).Result()
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, repository.ErrNotFound
	}

	// GEORADIUS orders by distance but ties are server-dependent; re-sort with
	// a driver-id tie break to keep results deterministic.
	sort.Slice(results, func(i, j int) bool {
		if results[i].Dist != results[j].Dist {
			return results[i].Dist < results[j].Dist
		}
		return results[i].Name < results[j].Name
	})

	best := results[0]

	nearby := &NearbyDriver{
		DriverLocation: domain.DriverLocation{
			DriverID: best.Name,
			Lat:      best.Latitude,
			Lng:      best.Longitude,
			District: district,
			City:     city,
		},
		DistanceKm: best.Dist / 1000.0,
	}

	if updatedAt, err := s.client.HGet(ctx, metaKeyPrefix+best.Name, "updated_at").Result(); err == nil {
		if t, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
			nearby.UpdatedAt = t
		}
	}

	return nearby, nil
}

// Remove deletes a driver's geo entry, leaving the metadata hash in place.
func (s *LocationStore) Remove(ctx context.Context, driverID string) error {
	meta, err := s.client.HGetAll(ctx, metaKeyPrefix+driverID).Result()
	if err != nil {
		return err
	}
	if len(meta) == 0 {
		return nil
	}

	return s.client.ZRem(ctx, scopedGeoKey(meta["city"], meta["district"]), driverID).Err()
}

func scopedGeoKey(city, district string) string {
	return fmt.Sprintf("%s%s:%s", geoKeyPrefix, city, district)
}
