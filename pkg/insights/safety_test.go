package insights_test

import (
	"math"
	"testing"

	"github.com/njiago/njiago/pkg/insights"
	"github.com/njiago/njiago/pkg/njdf"
)

func safetyReport(severity njdf.ReportSeverity) *njdf.Report {
	return &njdf.Report{
		RouteRef:   "KE:ROUTE:NBO:111",
		ReportType: njdf.ReportTypeSafety,
		Severity:   severity,
	}
}

func safetyAlmostEqual(a float64, b float64) bool {
	return math.Abs(a-b) <= 0.0001
}

func TestScoreSafetyNoReports(t *testing.T) {
	score := insights.ScoreSafety(nil)

	if score.IncidentScore != 4.5 {
		t.Errorf("expected incident score 4.5 with no history, got %f", score.IncidentScore)
	}
	if score.SeverityScore != 0 {
		t.Errorf("expected severity score 0 with no history, got %f", score.SeverityScore)
	}
	if score.OverallScore != 5 {
		t.Errorf("expected overall 5 with no history, got %f", score.OverallScore)
	}
	if score.ReportCount != 0 {
		t.Errorf("expected report count 0, got %d", score.ReportCount)
	}
}

func TestScoreSafetyIncidentScoreDropsPerReport(t *testing.T) {
	reports := []*njdf.Report{
		safetyReport(njdf.ReportSeverityLow),
		safetyReport(njdf.ReportSeverityLow),
		safetyReport(njdf.ReportSeverityLow),
	}

	score := insights.ScoreSafety(reports)

	if !safetyAlmostEqual(score.IncidentScore, 4.4) {
		t.Errorf("expected incident score 4.4 for three reports, got %f", score.IncidentScore)
	}
	if !safetyAlmostEqual(score.SeverityScore, 1) {
		t.Errorf("expected severity score 1 for all-low reports, got %f", score.SeverityScore)
	}
	if !safetyAlmostEqual(score.OverallScore, 4.5) {
		t.Errorf("expected overall 4.5, got %f", score.OverallScore)
	}
	if score.ReportCount != 3 {
		t.Errorf("expected report count 3, got %d", score.ReportCount)
	}
}

func TestScoreSafetyIncidentScoreFloorsAtOne(t *testing.T) {
	var reports []*njdf.Report
	for i := 0; i < 25; i++ {
		reports = append(reports, safetyReport(njdf.ReportSeverityLow))
	}

	score := insights.ScoreSafety(reports)

	if score.IncidentScore != 1 {
		t.Errorf("expected incident score floored at 1, got %f", score.IncidentScore)
	}
}

func TestScoreSafetySeverityMix(t *testing.T) {
	reports := []*njdf.Report{
		safetyReport(njdf.ReportSeverityHigh),
		safetyReport(njdf.ReportSeverityCritical),
	}

	score := insights.ScoreSafety(reports)

	if !safetyAlmostEqual(score.SeverityScore, 3.5) {
		t.Errorf("expected severity score 3.5 for a high and a critical, got %f", score.SeverityScore)
	}
	if !safetyAlmostEqual(score.OverallScore, 3.25) {
		t.Errorf("expected overall 3.25, got %f", score.OverallScore)
	}
	if !safetyAlmostEqual(score.IncidentScore, 4.6) {
		t.Errorf("expected incident score 4.6 for two reports, got %f", score.IncidentScore)
	}
}

func TestScoreSafetyAllCritical(t *testing.T) {
	reports := []*njdf.Report{
		safetyReport(njdf.ReportSeverityCritical),
		safetyReport(njdf.ReportSeverityCritical),
		safetyReport(njdf.ReportSeverityCritical),
	}

	score := insights.ScoreSafety(reports)

	if !safetyAlmostEqual(score.SeverityScore, 4) {
		t.Errorf("expected severity score 4, got %f", score.SeverityScore)
	}
	if !safetyAlmostEqual(score.OverallScore, 3) {
		t.Errorf("expected overall 3 for an all-critical window, got %f", score.OverallScore)
	}
}

func TestScoreSafetyUnknownSeverityCountsAsLow(t *testing.T) {
	reports := []*njdf.Report{safetyReport(njdf.ReportSeverity("unheard-of"))}

	score := insights.ScoreSafety(reports)

	if !safetyAlmostEqual(score.SeverityScore, 1) {
		t.Errorf("expected unknown severities weighted as low, got %f", score.SeverityScore)
	}
}
