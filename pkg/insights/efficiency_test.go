package insights_test

import (
	"math"
	"testing"

	"github.com/njiago/njiago/pkg/insights"
	"github.com/njiago/njiago/pkg/njdf"
)

func efficiencyRoute(fare float64, start string, end string) *njdf.Route {
	return &njdf.Route{
		PrimaryIdentifier: "KE:ROUTE:NBO:111",
		Fare:              fare,
		OperatingHours: &njdf.OperatingHours{
			Start: start,
			End:   end,
		},
	}
}

func incidentReport(reportType njdf.ReportType, severity njdf.ReportSeverity) *njdf.Report {
	return &njdf.Report{
		RouteRef:   "KE:ROUTE:NBO:111",
		ReportType: reportType,
		Severity:   severity,
	}
}

func factorAlmostEqual(a float64, b float64) bool {
	return math.Abs(a-b) <= 0.0001
}

func TestScoreEfficiencyFromScore(t *testing.T) {
	route := efficiencyRoute(50, "05:00", "22:00")
	score := &njdf.Score{
		RouteRef:    "KE:ROUTE:NBO:111",
		Reliability: 4,
		Safety:      5,
		Punctuality: 4,
		Comfort:     3,
	}

	efficiency := insights.ScoreEfficiency(route, score, nil)

	if efficiency.Source != insights.EfficiencySourceScore {
		t.Errorf("expected source %s, got %s", insights.EfficiencySourceScore, efficiency.Source)
	}

	expectedFactors := map[string]float64{
		"reliability": 80,
		"safety":      100,
		"comfort":     60,
		"punctuality": 80,
		"cost":        60,
		"frequency":   34,
	}
	for name, expected := range expectedFactors {
		if !factorAlmostEqual(efficiency.Factors[name], expected) {
			t.Errorf("expected factor %s to be %f, got %f", name, expected, efficiency.Factors[name])
		}
	}

	if !factorAlmostEqual(efficiency.Score, 77.7) {
		t.Errorf("expected weighted score 77.7, got %f", efficiency.Score)
	}
}

func TestScoreEfficiencyFromReports(t *testing.T) {
	route := efficiencyRoute(30, "06:00", "20:00")
	reports := []*njdf.Report{
		incidentReport(njdf.ReportTypeDelay, njdf.ReportSeverityHigh),
		incidentReport(njdf.ReportTypeBreakdown, njdf.ReportSeverityMedium),
		incidentReport(njdf.ReportTypeCrowding, njdf.ReportSeverityMedium),
		incidentReport(njdf.ReportTypeSafety, njdf.ReportSeverityCritical),
		incidentReport(njdf.ReportTypeAccident, njdf.ReportSeverityLow),
	}

	efficiency := insights.ScoreEfficiency(route, nil, reports)

	if efficiency.Source != insights.EfficiencySourceReports {
		t.Errorf("expected source %s, got %s", insights.EfficiencySourceReports, efficiency.Source)
	}

	expectedFactors := map[string]float64{
		"punctuality": 80,
		"reliability": 88,
		"comfort":     92,
		"safety":      55,
		"cost":        100,
		"frequency":   28,
	}
	for name, expected := range expectedFactors {
		if !factorAlmostEqual(efficiency.Factors[name], expected) {
			t.Errorf("expected factor %s to be %f, got %f", name, expected, efficiency.Factors[name])
		}
	}

	if !factorAlmostEqual(efficiency.Score, 76.95) {
		t.Errorf("expected weighted score 76.95, got %f", efficiency.Score)
	}
}

func TestScoreEfficiencyPenaltiesFloorAtZero(t *testing.T) {
	route := efficiencyRoute(30, "06:00", "20:00")

	var reports []*njdf.Report
	for i := 0; i < 5; i++ {
		reports = append(reports, incidentReport(njdf.ReportTypeSafety, njdf.ReportSeverityCritical))
	}

	efficiency := insights.ScoreEfficiency(route, nil, reports)

	if efficiency.Factors["safety"] != 0 {
		t.Errorf("expected safety factor floored at 0, got %f", efficiency.Factors["safety"])
	}
}

func TestScoreEfficiencyIgnoresUnmappedReportTypes(t *testing.T) {
	route := efficiencyRoute(30, "06:00", "20:00")
	reports := []*njdf.Report{
		incidentReport(njdf.ReportTypeOther, njdf.ReportSeverityCritical),
		incidentReport(njdf.ReportTypeOther, njdf.ReportSeverityHigh),
	}

	efficiency := insights.ScoreEfficiency(route, nil, reports)

	for _, name := range []string{"reliability", "safety", "comfort", "punctuality"} {
		if efficiency.Factors[name] != 100 {
			t.Errorf("expected factor %s untouched at 100, got %f", name, efficiency.Factors[name])
		}
	}

	if !factorAlmostEqual(efficiency.Score, 96.4) {
		t.Errorf("expected weighted score 96.4, got %f", efficiency.Score)
	}
}

func TestScoreEfficiencyFareClamps(t *testing.T) {
	score := &njdf.Score{Reliability: 3, Safety: 3, Punctuality: 3, Comfort: 3}

	t.Run("CheapFareCapsAtHundred", func(t *testing.T) {
		efficiency := insights.ScoreEfficiency(efficiencyRoute(20, "06:00", "20:00"), score, nil)

		if efficiency.Factors["cost"] != 100 {
			t.Errorf("expected cost factor 100 for a cheap fare, got %f", efficiency.Factors["cost"])
		}
	})

	t.Run("ExpensiveFareFloorsAtZero", func(t *testing.T) {
		efficiency := insights.ScoreEfficiency(efficiencyRoute(90, "06:00", "20:00"), score, nil)

		if efficiency.Factors["cost"] != 0 {
			t.Errorf("expected cost factor 0 for an expensive fare, got %f", efficiency.Factors["cost"])
		}
	})
}

func TestScoreEfficiencyWithoutOperatingHours(t *testing.T) {
	route := &njdf.Route{
		PrimaryIdentifier: "KE:ROUTE:NBO:111",
		Fare:              30,
	}

	efficiency := insights.ScoreEfficiency(route, nil, nil)

	if efficiency.Factors["frequency"] != 0 {
		t.Errorf("expected frequency factor 0 without operating hours, got %f", efficiency.Factors["frequency"])
	}
}
