package stats

import (
	"sync/atomic"
	"time"

	"github.com/njiago/njiago/pkg/stats/calculator"
)

type PlatformStats struct {
	Routes  calculator.RoutesStats
	Reports calculator.ReportsStats
	Scores  calculator.ScoresStats

	Timestamp time.Time
}

var currentPlatformStats atomic.Pointer[PlatformStats]

// CurrentPlatformStats returns the latest calculated snapshot. Never nil; a
// zeroed snapshot is returned until the updater has run.
func CurrentPlatformStats() *PlatformStats {
	if platformStats := currentPlatformStats.Load(); platformStats != nil {
		return platformStats
	}

	return &PlatformStats{}
}

// UpdatePlatformStats keeps the stats endpoint fed. Run it in its own
// goroutine; it recalculates every minute.
func UpdatePlatformStats() {
	for {
		currentPlatformStats.Store(&PlatformStats{
			Routes:  calculator.GetRoutes(),
			Reports: calculator.GetReports(),
			Scores:  calculator.GetScores(),

			Timestamp: time.Now(),
		})

		time.Sleep(1 * time.Minute)
	}
}
