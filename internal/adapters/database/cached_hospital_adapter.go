package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/medroute/emergency-routing/internal/domain/entities"
	"github.com/medroute/emergency-routing/internal/domain/providers"
	"github.com/medroute/emergency-routing/internal/domain/repositories"
)

// CachedHospitalAdapter wraps a HospitalRepository with read-through caching.
// Bed counts change often, so TTLs are short; every write invalidates.
type CachedHospitalAdapter struct {
	adapter repositories.HospitalRepository
	cache   providers.CacheProvider
}

// NewCachedHospitalAdapter creates a new cached hospital adapter
func NewCachedHospitalAdapter(adapter repositories.HospitalRepository, cache providers.CacheProvider) repositories.HospitalRepository {
	return &CachedHospitalAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds)
const (
	hospitalByIDTTL  = 60
	hospitalsListTTL = 30
)

func hospitalCacheKey(id string) string {
	return fmt.Sprintf("hospital:%s", id)
}

func hospitalsListCacheKey(filter repositories.HospitalFilter) string {
	return fmt.Sprintf("hospitals:list:%s:%d:%d", filter.Status, filter.Limit, filter.Offset)
}

// GetByID retrieves a hospital by ID with caching
func (a *CachedHospitalAdapter) GetByID(ctx context.Context, id string) (*entities.Hospital, error) {
	cacheKey := hospitalCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var hospital entities.Hospital
		if err := json.Unmarshal(cached, &hospital); err == nil {
			return &hospital, nil
		}
		log.Warn().Str("hospital_id", id).Msg("failed to unmarshal cached hospital")
	}

	hospital, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(hospital); err == nil {
		if err := a.cache.Set(ctx, cacheKey, data, hospitalByIDTTL); err != nil {
			log.Warn().Err(err).Str("hospital_id", id).Msg("failed to cache hospital")
		}
	}

	return hospital, nil
}

// List retrieves hospitals with caching
func (a *CachedHospitalAdapter) List(ctx context.Context, filter repositories.HospitalFilter) ([]*entities.Hospital, error) {
	cacheKey := hospitalsListCacheKey(filter)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var hospitals []*entities.Hospital
		if err := json.Unmarshal(cached, &hospitals); err == nil {
			return hospitals, nil
		}
	}

	hospitals, err := a.adapter.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(hospitals); err == nil {
		if err := a.cache.Set(ctx, cacheKey, data, hospitalsListTTL); err != nil {
			log.Warn().Err(err).Msg("failed to cache hospital list")
		}
	}

	return hospitals, nil
}

// Create registers a hospital and invalidates list caches
func (a *CachedHospitalAdapter) Create(ctx context.Context, hospital *entities.Hospital) error {
	if err := a.adapter.Create(ctx, hospital); err != nil {
		return err
	}
	a.invalidate(ctx, hospital.ID)
	return nil
}

// Update updates a hospital and invalidates its caches
func (a *CachedHospitalAdapter) Update(ctx context.Context, hospital *entities.Hospital) error {
	if err := a.adapter.Update(ctx, hospital); err != nil {
		return err
	}
	a.invalidate(ctx, hospital.ID)
	return nil
}

// Upsert upserts a hospital and invalidates its caches
func (a *CachedHospitalAdapter) Upsert(ctx context.Context, hospital *entities.Hospital) error {
	if err := a.adapter.Upsert(ctx, hospital); err != nil {
		return err
	}
	a.invalidate(ctx, hospital.ID)
	return nil
}

// Delete removes a hospital and invalidates its caches
func (a *CachedHospitalAdapter) Delete(ctx context.Context, id string) error {
	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}
	a.invalidate(ctx, id)
	return nil
}

// invalidate drops the per-hospital key and the unfiltered list key. Filtered
// list entries are left to expire on their short TTL.
func (a *CachedHospitalAdapter) invalidate(ctx context.Context, id string) {
	if err := a.cache.Delete(ctx, hospitalCacheKey(id)); err != nil {
		log.Warn().Err(err).Str("hospital_id", id).Msg("failed to invalidate hospital cache")
	}
	if err := a.cache.Delete(ctx, hospitalsListCacheKey(repositories.HospitalFilter{})); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate hospital list cache")
	}
}
