package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/EnzoLavieri/QualABoa-backend/internal/cache"
	"github.com/EnzoLavieri/QualABoa-backend/internal/models"
	"github.com/EnzoLavieri/QualABoa-backend/internal/places"

	"github.com/rs/zerolog/log"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Cache namespace names, registered by the caller that constructs the
// cache.Provider passed to NewMapService.
const (
	CacheNearby     = "nearby"
	CacheDetails    = "details"
	CacheReviews    = "reviews"
	CacheTextSearch = "textsearch"
)

// Sentinel errors surfaced to callers. Everything else returned by the
// service is an internal failure.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("place not found")
)

// PartnerRepository interface for dependency injection
type PartnerRepository interface {
	FindPartnersNear(ctx context.Context, lat, lng float64, radiusMeters int) ([]models.Establishment, error)
}

// PlacesAPI is the subset of the provider client the service consumes.
type PlacesAPI interface {
	NearbySearch(ctx context.Context, lat, lng float64, radiusMeters int, keyword string) (*places.SearchResponse, error)
	PlaceDetails(ctx context.Context, placeID string) (*places.DetailsResponse, error)
	PlaceReviews(ctx context.Context, placeID string) (*places.ReviewsResponse, error)
	TextSearch(ctx context.Context, query string, lat, lng float64, radiusMeters int) (*places.SearchResponse, error)
}

// MapService merges partner establishments from the spatial store with
// provider search results into a single ordered pin list.
type MapService struct {
	repo   PartnerRepository
	places PlacesAPI
	cache  *cache.Provider
}

// NewMapService creates a new map service
func NewMapService(repo PartnerRepository, placesAPI PlacesAPI, cacheProvider *cache.Provider) *MapService {
	return &MapService{repo: repo, places: placesAPI, cache: cacheProvider}
}

// PinsNearby returns all map pins within radiusMeters of the given point:
// partner pins first in store order, then provider pins in response order,
// with partner records winning any dedup-key collision. Provider failures
// degrade to a partner-only result rather than an error.
func (s *MapService) PinsNearby(ctx context.Context, lat, lng float64, radiusMeters int, keyword string) ([]models.Pin, error) {
	if err := validateCoordinates(lat, lng); err != nil {
		return nil, err
	}
	if radiusMeters <= 0 {
		return nil, fmt.Errorf("service: %w: radius must be positive, got %d", ErrValidation, radiusMeters)
	}

	partners, err := s.repo.FindPartnersNear(ctx, lat, lng, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("service: failed to find partners: %w", err)
	}

	pins := orderedmap.New[string, models.Pin]()
	for _, e := range partners {
		id := e.ID
		placeID := ""
		if e.PlaceID != nil {
			placeID = *e.PlaceID
		}
		pins.Set(e.DedupKey(), models.Pin{
			ID:        &id,
			PlaceID:   placeID,
			Nome:      e.Nome,
			Lat:       e.Latitude,
			Lng:       e.Longitude,
			IsPartner: true,
			Snippet:   e.Descricao,
			Endereco:  e.EnderecoFormatado,
		})
	}

	key := cache.Key("places", cache.Coord(lat), cache.Coord(lng), strconv.Itoa(radiusMeters), keyword)
	resp, hit, err := cache.GetOrCompute(s.cache, CacheNearby, key, func() (*places.SearchResponse, error) {
		return s.places.NearbySearch(ctx, lat, lng, radiusMeters, keyword)
	})
	if err != nil {
		log.Warn().Err(err).
			Float64("lat", lat).
			Float64("lng", lng).
			Int("radius", radiusMeters).
			Msg("provider lookup failed, returning partner-only pins")
	} else {
		if hit {
			log.Debug().Str("key", key).Msg("cache hit for nearby search")
		}
		for _, p := range resp.Results {
			if p.PlaceID == "" || p.Geometry == nil || p.Geometry.Location == nil {
				// malformed entry, drop it alone
				continue
			}
			if _, exists := pins.Get(p.PlaceID); exists {
				// partner already occupies this key
				continue
			}
			pins.Set(p.PlaceID, models.Pin{
				PlaceID:   p.PlaceID,
				Nome:      p.Name,
				Lat:       p.Geometry.Location.Lat,
				Lng:       p.Geometry.Location.Lng,
				IsPartner: false,
				Snippet:   p.Vicinity,
				Endereco:  p.Vicinity,
			})
		}
	}

	out := make([]models.Pin, 0, pins.Len())
	for pair := pins.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out, nil
}

// PlaceDetails returns the cached provider details for one place.
func (s *MapService) PlaceDetails(ctx context.Context, placeID string) (*places.DetailsResponse, error) {
	if placeID == "" {
		return nil, fmt.Errorf("service: %w: placeId is required", ErrValidation)
	}

	resp, hit, err := cache.GetOrCompute(s.cache, CacheDetails, placeID, func() (*places.DetailsResponse, error) {
		return s.places.PlaceDetails(ctx, placeID)
	})
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch place details: %w", err)
	}
	if hit {
		log.Debug().Str("placeId", placeID).Msg("cache hit for place details")
	}

	if places.NotFound(resp.Status) {
		return nil, fmt.Errorf("service: %w: %s", ErrNotFound, placeID)
	}
	return resp, nil
}

// PlaceReviews returns the cached provider reviews for one place.
func (s *MapService) PlaceReviews(ctx context.Context, placeID string) (*places.ReviewsResponse, error) {
	if placeID == "" {
		return nil, fmt.Errorf("service: %w: placeId is required", ErrValidation)
	}

	resp, hit, err := cache.GetOrCompute(s.cache, CacheReviews, placeID, func() (*places.ReviewsResponse, error) {
		return s.places.PlaceReviews(ctx, placeID)
	})
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch place reviews: %w", err)
	}
	if hit {
		log.Debug().Str("placeId", placeID).Msg("cache hit for place reviews")
	}

	if places.NotFound(resp.Status) {
		return nil, fmt.Errorf("service: %w: %s", ErrNotFound, placeID)
	}
	return resp, nil
}

// SearchPlaces runs a cached free-text search and returns provider pins in
// response order. No partner merge is applied.
func (s *MapService) SearchPlaces(ctx context.Context, query string, lat, lng float64, radiusMeters int) ([]models.Pin, error) {
	if query == "" {
		return nil, fmt.Errorf("service: %w: query cannot be empty", ErrValidation)
	}
	if err := validateCoordinates(lat, lng); err != nil {
		return nil, err
	}
	if radiusMeters <= 0 {
		return nil, fmt.Errorf("service: %w: radius must be positive, got %d", ErrValidation, radiusMeters)
	}

	key := cache.Key("textsearch", query, cache.Coord(lat), cache.Coord(lng), strconv.Itoa(radiusMeters))
	resp, hit, err := cache.GetOrCompute(s.cache, CacheTextSearch, key, func() (*places.SearchResponse, error) {
		return s.places.TextSearch(ctx, query, lat, lng, radiusMeters)
	})
	if err != nil {
		return nil, fmt.Errorf("service: failed to search places: %w", err)
	}
	if hit {
		log.Debug().Str("key", key).Msg("cache hit for text search")
	}

	pins := make([]models.Pin, 0, len(resp.Results))
	for _, p := range resp.Results {
		if p.PlaceID == "" || p.Geometry == nil || p.Geometry.Location == nil {
			continue
		}
		pins = append(pins, models.Pin{
			PlaceID:   p.PlaceID,
			Nome:      p.Name,
			Lat:       p.Geometry.Location.Lat,
			Lng:       p.Geometry.Location.Lng,
			IsPartner: false,
			Snippet:   p.Vicinity,
			Endereco:  p.Vicinity,
		})
	}
	return pins, nil
}

func validateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("service: %w: latitude out of range: %f", ErrValidation, lat)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("service: %w: longitude out of range: %f", ErrValidation, lng)
	}
	return nil
}
