package insights

import (
	"time"

	"github.com/njiago/njiago/pkg/njdf"
)

type CrowdDensity struct {
	Level      string `json:"level"`
	Percentage int    `json:"percentage"`
	Source     string `json:"source"`
}

const (
	CrowdLevelLow    = "low"
	CrowdLevelMedium = "medium"
	CrowdLevelHigh   = "high"
)

const (
	CrowdSourceReports   = "reports"
	CrowdSourceTimeOfDay = "time-of-day"
)

// EstimateCrowd derives how packed a route runs from recent crowding
// reports, falling back to commute-hour heuristics when riders have not
// reported.
func EstimateCrowd(reports []*njdf.Report, at time.Time) CrowdDensity {
	if len(reports) == 0 {
		level := timeOfDayCrowdLevel(at.Hour())

		return CrowdDensity{
			Level:      level,
			Percentage: crowdPercentage(level),
			Source:     CrowdSourceTimeOfDay,
		}
	}

	highCount := 0
	mediumCount := 0
	for _, report := range reports {
		switch report.Severity {
		case njdf.ReportSeverityHigh, njdf.ReportSeverityCritical:
			highCount = highCount + 1
		case njdf.ReportSeverityMedium:
			mediumCount = mediumCount + 1
		}
	}

	level := CrowdLevelLow
	if highCount*2 > len(reports) {
		level = CrowdLevelHigh
	} else if mediumCount*2 > len(reports) {
		level = CrowdLevelMedium
	}

	return CrowdDensity{
		Level:      level,
		Percentage: crowdPercentage(level),
		Source:     CrowdSourceReports,
	}
}

func timeOfDayCrowdLevel(hour int) string {
	switch {
	case (hour >= 7 && hour <= 9) || (hour >= 17 && hour <= 19):
		return CrowdLevelHigh
	case hour >= 10 && hour <= 16:
		return CrowdLevelMedium
	default:
		return CrowdLevelLow
	}
}

func crowdPercentage(level string) int {
	switch level {
	case CrowdLevelHigh:
		return 85
	case CrowdLevelMedium:
		return 60
	default:
		return 30
	}
}
