package services

import (
	"context"
	"log"
	"time"

	"referral-network-api/internal/cache"
	"referral-network-api/internal/models"
	"referral-network-api/internal/storage"
)

type dashboardService struct {
	dashboardRepo storage.DashboardRepository
	cache         cache.Cache
	ttl           time.Duration
}

// NewDashboardService creates a new instance of DashboardService. Aggregates
// are cached per user for ttl; a zero ttl disables caching.
func NewDashboardService(dashboardRepo storage.DashboardRepository, c cache.Cache, ttl time.Duration) DashboardService {
	return &dashboardService{dashboardRepo: dashboardRepo, cache: c, ttl: ttl}
}

func (s *dashboardService) GetDashboard(ctx context.Context, actor Actor) (*models.Dashboard, error) {
	key := dashboardCacheKey(actor.ID)
	if s.ttl > 0 {
		var cached models.Dashboard
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			log.Printf("DashboardService: Cache read failed for %s: %v", actor.ID, err)
		}
		// A role switch leaves a stale entry behind; ignore it.
		if hit && cached.Role == actor.Role {
			return &cached, nil
		}
	}

	d, err := s.compute(ctx, actor)
	if err != nil {
		return nil, err
	}

	if s.ttl > 0 {
		if err := s.cache.SetJSON(ctx, key, d, s.ttl); err != nil {
			log.Printf("DashboardService: Cache write failed for %s: %v", actor.ID, err)
		}
	}
	return d, nil
}

func (s *dashboardService) compute(ctx context.Context, actor Actor) (*models.Dashboard, error) {
	d := &models.Dashboard{Role: actor.Role}
	var err error
	switch {
	case actor.Role == models.RoleClient:
		d.Client, err = s.dashboardRepo.ClientStats(ctx, actor.ID)
	case actor.Role.IsNetworkMember():
		d.Referrer, err = s.dashboardRepo.ReferrerStats(ctx, actor.ID)
	case actor.Role == models.RoleCandidate:
		d.Candidate, err = s.dashboardRepo.CandidateStats(ctx, actor.ID)
	default:
		return nil, ErrForbidden
	}
	if err != nil {
		log.Printf("DashboardService: Error computing %s dashboard for %s: %v", actor.Role, actor.ID, err)
		return nil, MapRepoError(err, "computing dashboard")
	}
	return d, nil
}
