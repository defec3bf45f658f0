package services

import (
	"sync"
	"time"

	"github.com/ecotrackhq/ecotrack/app/repositories"
	"github.com/ecotrackhq/ecotrack/pkg/cache"
	"github.com/ecotrackhq/ecotrack/pkg/workerpool"
)

const statsCacheKey = "dashboard:stats"

// DashboardStats is the aggregate block the admin dashboard renders.
type DashboardStats struct {
	Users           int64            `json:"users"`
	Materials       int64            `json:"materials"`
	Products        int64            `json:"products"`
	Orders          int64            `json:"orders"`
	Pickups         int64            `json:"pickups"`
	PickupsByStatus map[string]int64 `json:"pickupsByStatus"`
	Revenue         float64          `json:"revenue"`
}

// StatsService aggregates dashboard counters. The individual queries
// fan out over a bounded worker pool and join all-or-nothing: one
// failed counter fails the whole block rather than serving a partial
// dashboard.
type StatsService struct {
	users     *repositories.UserRepository
	materials *repositories.MaterialRepository
	products  *repositories.ProductRepository
	pickups   *repositories.PickupRepository
	orders    *repositories.OrderRepository
	pool      *workerpool.Pool
}

func NewStatsService(
	users *repositories.UserRepository,
	materials *repositories.MaterialRepository,
	products *repositories.ProductRepository,
	pickups *repositories.PickupRepository,
	orders *repositories.OrderRepository,
) *StatsService {
	return &StatsService{
		users:     users,
		materials: materials,
		products:  products,
		pickups:   pickups,
		orders:    orders,
		pool:      workerpool.New(8),
	}
}

// Dashboard returns the aggregate stats block, cached for one minute.
func (s *StatsService) Dashboard() (DashboardStats, error) {
	var cached DashboardStats
	if cache.Get(statsCacheKey, &cached) {
		return cached, nil
	}

	stats, err := s.compute()
	if err != nil {
		return DashboardStats{}, err
	}

	_ = cache.Set(statsCacheKey, stats, time.Minute)
	return stats, nil
}

// Refresh recomputes the stats block and overwrites the cache. Wired to
// the scheduler so the dashboard rarely pays for a cold read.
func (s *StatsService) Refresh() error {
	stats, err := s.compute()
	if err != nil {
		return err
	}
	return cache.Set(statsCacheKey, stats, time.Minute)
}

func (s *StatsService) compute() (DashboardStats, error) {
	var (
		stats DashboardStats
		mu    sync.Mutex
		wg    sync.WaitGroup

		firstErr error
	)

	run := func(task func() error) {
		wg.Add(1)
		job := func() {
			defer wg.Done()
			if err := task(); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}
		// Fall back to inline execution under backpressure so the
		// join below always completes.
		if err := s.pool.Submit(job); err != nil {
			job()
		}
	}

	run(func() error {
		n, err := s.users.Count()
		mu.Lock()
		stats.Users = n
		mu.Unlock()
		return err
	})
	run(func() error {
		n, err := s.materials.Count()
		mu.Lock()
		stats.Materials = n
		mu.Unlock()
		return err
	})
	run(func() error {
		n, err := s.products.Count()
		mu.Lock()
		stats.Products = n
		mu.Unlock()
		return err
	})
	run(func() error {
		n, err := s.orders.Count()
		mu.Lock()
		stats.Orders = n
		mu.Unlock()
		return err
	})
	run(func() error {
		n, err := s.pickups.Count()
		mu.Lock()
		stats.Pickups = n
		mu.Unlock()
		return err
	})
	run(func() error {
		byStatus, err := s.pickups.CountByStatus()
		mu.Lock()
		stats.PickupsByStatus = byStatus
		mu.Unlock()
		return err
	})
	run(func() error {
		revenue, err := s.orders.Revenue()
		mu.Lock()
		stats.Revenue = revenue
		mu.Unlock()
		return err
	})

	wg.Wait()

	if firstErr != nil {
		return DashboardStats{}, firstErr
	}
	return stats, nil
}
