package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/wewg24/rlc-bingo-manager-v2/internal/catalog"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/infra"
)

// ErrDealNotFound marks an identifier the pull-tab library does not carry.
var ErrDealNotFound = errors.New("pull-tab deal not found")

const (
	libraryCachePrefix = "library:pulltab:"
	libraryCacheTTL    = 6 * time.Hour
)

// LibraryService resolves pull-tab deals from the external library, with a
// Redis cache in front and the circuit breaker around the remote call.
type LibraryService interface {
	// Lookup returns the deal for an identifier. When the library is
	// unreachable it returns a bare deal carrying only the identifier, with
	// fallback=true, so entry screens can switch to manual mode.
	Lookup(ctx context.Context, identifier string) (deal *catalog.PullTabDeal, fallback bool, err error)
}

type libraryService struct {
	client *infra.ProgramClient
	cb     *infra.CircuitBreaker
	rdb    *redis.Client
}

func NewLibraryService(client *infra.ProgramClient, cb *infra.CircuitBreaker, rdb *redis.Client) LibraryService {
	return &libraryService{client: client, cb: cb, rdb: rdb}
}

func (s *libraryService) Lookup(ctx context.Context, identifier string) (*catalog.PullTabDeal, bool, error) {
	cacheKey := libraryCachePrefix + identifier

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var deal catalog.PullTabDeal
			if err := json.Unmarshal([]byte(cached), &deal); err == nil {
				return &deal, false, nil
			}
			// poisoned entry, drop it and fall through to the remote
			s.rdb.Del(ctx, cacheKey)
		}
	}

	var deal *catalog.PullTabDeal
	err := s.cb.Execute(func() error {
		var lookupErr error
		deal, lookupErr = s.client.PullTabDeal(ctx, identifier)
		if errors.Is(lookupErr, infra.ErrProgramNotFound) {
			// a miss is an answer, not a service failure
			deal = nil
			return nil
		}
		return lookupErr
	})
	if err != nil {
		log.Warn().Err(err).Str("identifier", identifier).
			Msg("pull-tab library unreachable, falling back to manual entry")
		return &catalog.PullTabDeal{Identifier: identifier}, true, nil
	}
	if deal == nil {
		return nil, false, ErrDealNotFound
	}

	if s.rdb != nil {
		if data, err := json.Marshal(deal); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, data, libraryCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("identifier", identifier).Msg("library cache write failed")
			}
		}
	}
	return deal, false, nil
}
