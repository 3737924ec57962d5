package scoring

import (
	"sync"
)

// routeLocks serializes score and rate limit writes per route. The stores
// have no atomic increment, so two submissions reading the same totalReports
// would otherwise overwrite each other's update.
type routeLocks struct {
	mutex sync.Mutex
	locks map[string]*sync.Mutex
}

func newRouteLocks() *routeLocks {
	return &routeLocks{
		locks: map[string]*sync.Mutex{},
	}
}

// Lock acquires the mutex for a route, creating it on first use. Locks are
// kept for the process lifetime, bounded by the route catalog size.
func (r *routeLocks) Lock(routeRef string) *sync.Mutex {
	r.mutex.Lock()
	lock, exists := r.locks[routeRef]
	if !exists {
		lock = &sync.Mutex{}
		r.locks[routeRef] = lock
	}
	r.mutex.Unlock()

	lock.Lock()

	return lock
}
