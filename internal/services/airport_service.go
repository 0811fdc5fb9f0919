package services

import (
	"context"
	"fmt"
	"time"

	"ground-experiment/groundlink/internal/common"
	"ground-experiment/groundlink/internal/constants"
	"ground-experiment/groundlink/internal/logging"
	gormModels "ground-experiment/groundlink/internal/models/gorm"
)

// PTFSAirports is the built-in airport reference list. It seeds the store at
// startup and doubles as the read-only fallback when the store is down.
var PTFSAirports = []gormModels.Airport{
	{ICAO: "IBAR", Name: "IBAR"},
	{ICAO: "IHEN", Name: "IHEN"},
	{ICAO: "ILAR", Name: "ILAR"},
	{ICAO: "IIAB", Name: "IIAB"},
	{ICAO: "IPAP", Name: "IPAP"},
	{ICAO: "IGRV", Name: "IGRV"},
	{ICAO: "IJAF", Name: "IJAF"},
	{ICAO: "IZOL", Name: "IZOL"},
	{ICAO: "ISCM", Name: "ISCM"},
	{ICAO: "IDCS", Name: "IDCS"},
	{ICAO: "ITKO", Name: "ITKO"},
	{ICAO: "ILKL", Name: "ILKL"},
	{ICAO: "IPPH", Name: "IPPH"},
	{ICAO: "IGAR", Name: "IGAR"},
	{ICAO: "IBLT", Name: "IBLT"},
	{ICAO: "IRFD", Name: "IRFD"},
	{ICAO: "IMLR", Name: "IMLR"},
	{ICAO: "ITRC", Name: "ITRC"},
	{ICAO: "IBTH", Name: "IBTH"},
	{ICAO: "IUFO", Name: "IUFO"},
	{ICAO: "ISAU", Name: "ISAU"},
	{ICAO: "ISKP", Name: "ISKP"},
	{ICAO: "IORE", Name: "IORE"},
	{ICAO: "ICYP", Name: "ICYP"},
}

const airportCacheTTL = 10 * time.Minute

// AirportStore is the persistence surface for airport reference data
type AirportStore interface {
	ListAll(ctx context.Context) ([]gormModels.Airport, error)
	UpsertAirport(ctx context.Context, airport *gormModels.Airport) error
	Count(ctx context.Context) (int64, error)
}

// AirportService serves the static airport list with a cache in front and
// the built-in list behind as a read fallback
type AirportService struct {
	store AirportStore
	cache common.CacheInterface
}

func NewAirportService(store AirportStore, cache common.CacheInterface) *AirportService {
	return &AirportService{
		store: store,
		cache: cache,
	}
}

// Seed upserts the built-in airport list. Idempotent; runs at every startup.
func (s *AirportService) Seed(ctx context.Context) error {
	for i := range PTFSAirports {
		airport := PTFSAirports[i]
		if err := s.store.UpsertAirport(ctx, &airport); err != nil {
			return fmt.Errorf("seed airport %s: %w", airport.ICAO, err)
		}
	}

	count, err := s.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("count airports after seed: %w", err)
	}

	logging.Info("Airports seeded", "count", count)
	return nil
}

// ListAirports returns all airports, cached. When the store is unreachable
// the built-in list is served instead; reads may fall back, mutations never
// substitute data.
func (s *AirportService) ListAirports(ctx context.Context) []gormModels.Airport {
	cacheKey := string(constants.CachePrefixAirports)

	if val, found := s.cache.Get(cacheKey); found {
		// The Redis backend round-trips values through JSON, so the
		// assertion can miss there; treat that as a cache miss.
		if airports, ok := val.([]gormModels.Airport); ok {
			return airports
		}
	}

	airports, err := s.store.ListAll(ctx)
	if err != nil || len(airports) == 0 {
		if err != nil {
			logging.Warn("Airport store unavailable, serving built-in list", "error", err.Error())
		}
		return PTFSAirports
	}

	s.cache.Set(cacheKey, airports, airportCacheTTL)
	return airports
}
