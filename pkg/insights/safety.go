package insights

import (
	"github.com/njiago/njiago/pkg/njdf"
)

type SafetyScore struct {
	IncidentScore float64 `json:"incidentScore"`
	SeverityScore float64 `json:"severityScore"`
	OverallScore  float64 `json:"overallScore"`
	ReportCount   int     `json:"reportCount"`
}

// A route with no incident history starts slightly below perfect
const noIncidentScore = 4.5

// ScoreSafety grades a route from its recent safety and accident reports.
func ScoreSafety(reports []*njdf.Report) SafetyScore {
	if len(reports) == 0 {
		return SafetyScore{
			IncidentScore: noIncidentScore,
			SeverityScore: 0,
			OverallScore:  5,
			ReportCount:   0,
		}
	}

	incidentScore := 5 - 0.2*float64(len(reports))
	if incidentScore < 1 {
		incidentScore = 1
	}

	severityTotal := 0.0
	for _, report := range reports {
		severityTotal += severityWeight(report.Severity)
	}
	severityScore := severityTotal / float64(len(reports))

	overallScore := 5 - severityScore*0.5
	if overallScore < 1 {
		overallScore = 1
	}
	if overallScore > 5 {
		overallScore = 5
	}

	return SafetyScore{
		IncidentScore: incidentScore,
		SeverityScore: severityScore,
		OverallScore:  overallScore,
		ReportCount:   len(reports),
	}
}

func severityWeight(severity njdf.ReportSeverity) float64 {
	switch severity {
	case njdf.ReportSeverityLow:
		return 1
	case njdf.ReportSeverityMedium:
		return 2
	case njdf.ReportSeverityHigh:
		return 3
	case njdf.ReportSeverityCritical:
		return 4
	default:
		return 1
	}
}
