package insights_test

import (
	"testing"
	"time"

	"github.com/njiago/njiago/pkg/insights"
	"github.com/njiago/njiago/pkg/njdf"
)

func crowdingReport(severity njdf.ReportSeverity) *njdf.Report {
	return &njdf.Report{
		RouteRef:   "KE:ROUTE:NBO:111",
		ReportType: njdf.ReportTypeCrowding,
		Severity:   severity,
	}
}

func TestEstimateCrowdFromReports(t *testing.T) {
	testCases := []struct {
		Name       string
		Severities []njdf.ReportSeverity
		Level      string
		Percentage int
	}{
		{
			Name:       "HighMajority",
			Severities: []njdf.ReportSeverity{njdf.ReportSeverityHigh, njdf.ReportSeverityHigh, njdf.ReportSeverityHigh, njdf.ReportSeverityLow},
			Level:      insights.CrowdLevelHigh,
			Percentage: 85,
		},
		{
			Name:       "CriticalCountsAsHigh",
			Severities: []njdf.ReportSeverity{njdf.ReportSeverityCritical},
			Level:      insights.CrowdLevelHigh,
			Percentage: 85,
		},
		{
			Name:       "MediumMajority",
			Severities: []njdf.ReportSeverity{njdf.ReportSeverityMedium, njdf.ReportSeverityMedium, njdf.ReportSeverityMedium, njdf.ReportSeverityLow, njdf.ReportSeverityHigh},
			Level:      insights.CrowdLevelMedium,
			Percentage: 60,
		},
		{
			Name:       "EvenSplitIsNotAMajority",
			Severities: []njdf.ReportSeverity{njdf.ReportSeverityHigh, njdf.ReportSeverityHigh, njdf.ReportSeverityMedium, njdf.ReportSeverityMedium},
			Level:      insights.CrowdLevelLow,
			Percentage: 30,
		},
		{
			Name:       "AllQuiet",
			Severities: []njdf.ReportSeverity{njdf.ReportSeverityLow, njdf.ReportSeverityLow, njdf.ReportSeverityLow},
			Level:      insights.CrowdLevelLow,
			Percentage: 30,
		},
	}

	morningPeak := time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			var reports []*njdf.Report
			for _, severity := range testCase.Severities {
				reports = append(reports, crowdingReport(severity))
			}

			density := insights.EstimateCrowd(reports, morningPeak)

			if density.Level != testCase.Level {
				t.Errorf("expected level %s, got %s", testCase.Level, density.Level)
			}
			if density.Percentage != testCase.Percentage {
				t.Errorf("expected percentage %d, got %d", testCase.Percentage, density.Percentage)
			}
			if density.Source != insights.CrowdSourceReports {
				t.Errorf("expected source %s, got %s", insights.CrowdSourceReports, density.Source)
			}
		})
	}
}

func TestEstimateCrowdTimeOfDayFallback(t *testing.T) {
	testCases := []struct {
		Name       string
		Hour       int
		Level      string
		Percentage int
	}{
		{"MorningCommute", 8, insights.CrowdLevelHigh, 85},
		{"EveningCommute", 18, insights.CrowdLevelHigh, 85},
		{"Midday", 12, insights.CrowdLevelMedium, 60},
		{"LateEvening", 22, insights.CrowdLevelLow, 30},
		{"EarlyMorning", 5, insights.CrowdLevelLow, 30},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			at := time.Date(2025, 3, 14, testCase.Hour, 15, 0, 0, time.UTC)

			density := insights.EstimateCrowd(nil, at)

			if density.Level != testCase.Level {
				t.Errorf("expected level %s at hour %d, got %s", testCase.Level, testCase.Hour, density.Level)
			}
			if density.Percentage != testCase.Percentage {
				t.Errorf("expected percentage %d, got %d", testCase.Percentage, density.Percentage)
			}
			if density.Source != insights.CrowdSourceTimeOfDay {
				t.Errorf("expected source %s, got %s", insights.CrowdSourceTimeOfDay, density.Source)
			}
		})
	}
}
