package insights

import (
	"math"

	"github.com/njiago/njiago/pkg/njdf"
)

// EfficiencyScore is a 0-100 weighted composite of how well a route serves
// riders. Factors carries each 0-100 input so dashboards can show the
// breakdown.
type EfficiencyScore struct {
	Score   float64            `json:"score"`
	Factors map[string]float64 `json:"factors"`
	Source  string             `json:"source"`
}

const (
	EfficiencySourceScore   = "score"
	EfficiencySourceReports = "reports"
)

var efficiencyWeights = map[string]float64{
	"reliability": 0.25,
	"safety":      0.25,
	"comfort":     0.15,
	"cost":        0.10,
	"frequency":   0.05,
	"punctuality": 0.20,
}

// ScoreEfficiency grades a route from its crowd score when one exists,
// otherwise it derives the quality factors from raw reports via the penalty
// mapping.
func ScoreEfficiency(route *njdf.Route, score *njdf.Score, reports []*njdf.Report) EfficiencyScore {
	var factors map[string]float64
	source := EfficiencySourceScore

	if score != nil {
		factors = map[string]float64{
			"reliability": clampFactor(score.Reliability * 20),
			"safety":      clampFactor(score.Safety * 20),
			"comfort":     clampFactor(score.Comfort * 20),
			"punctuality": clampFactor(score.Punctuality * 20),
		}
	} else {
		source = EfficiencySourceReports
		factors = reportDerivedFactors(reports)
	}

	factors["cost"] = clampFactor(100 - math.Max(0, route.Fare-30)*2)
	factors["frequency"] = clampFactor(route.OperatingHours.SpanHours() * 2)

	total := 0.0
	for name, weight := range efficiencyWeights {
		total += factors[name] * weight
	}

	return EfficiencyScore{
		Score:   total,
		Factors: factors,
		Source:  source,
	}
}

func reportDerivedFactors(reports []*njdf.Report) map[string]float64 {
	factors := map[string]float64{
		"reliability": 100,
		"safety":      100,
		"comfort":     100,
		"punctuality": 100,
	}

	for _, report := range reports {
		dimension, penalty := reportPenalty(report.ReportType, report.Severity)
		if dimension == "" {
			continue
		}

		factors[dimension] = factors[dimension] - penalty
	}

	for name, value := range factors {
		factors[name] = clampFactor(value)
	}

	return factors
}

func reportPenalty(reportType njdf.ReportType, severity njdf.ReportSeverity) (string, float64) {
	var dimension string
	var penalties [4]float64 // low, medium, high, critical

	switch reportType {
	case njdf.ReportTypeSafety, njdf.ReportTypeAccident:
		dimension, penalties = "safety", [4]float64{5, 15, 30, 40}
	case njdf.ReportTypeDelay:
		dimension, penalties = "punctuality", [4]float64{4, 10, 20, 25}
	case njdf.ReportTypeBreakdown:
		dimension, penalties = "reliability", [4]float64{5, 12, 25, 35}
	case njdf.ReportTypeCrowding:
		dimension, penalties = "comfort", [4]float64{3, 8, 15, 20}
	default:
		return "", 0
	}

	return dimension, penalties[severityIndex(severity)]
}

func severityIndex(severity njdf.ReportSeverity) int {
	switch severity {
	case njdf.ReportSeverityMedium:
		return 1
	case njdf.ReportSeverityHigh:
		return 2
	case njdf.ReportSeverityCritical:
		return 3
	default:
		return 0
	}
}

func clampFactor(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}

	return value
}
