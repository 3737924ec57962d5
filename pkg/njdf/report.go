package njdf

import (
	"time"
)

type Report struct {
	PrimaryIdentifier string `groups:"basic"`
	RouteRef          string `groups:"basic"`

	ReportType ReportType     `groups:"basic"`
	Severity   ReportSeverity `groups:"basic"`

	Description string `groups:"basic"`

	// Fare is the fare the rider actually paid, 0 when not supplied.
	Fare float64 `groups:"basic"`

	Location *Location `groups:"detailed"`

	DeviceFingerprint string `groups:"internal"`
	UserRef           string `groups:"internal"`

	CreatedAt time.Time `groups:"basic"`
}

type ReportType string

const (
	ReportTypeDelay     ReportType = "delay"
	ReportTypeSafety               = "safety"
	ReportTypeCrowding             = "crowding"
	ReportTypeBreakdown            = "breakdown"
	ReportTypeAccident             = "accident"
	ReportTypeOther                = "other"
)

type ReportSeverity string

const (
	ReportSeverityLow      ReportSeverity = "low"
	ReportSeverityMedium                  = "medium"
	ReportSeverityHigh                    = "high"
	ReportSeverityCritical                = "critical"
)

func KnownReportType(value ReportType) bool {
	switch value {
	case ReportTypeDelay, ReportTypeSafety, ReportTypeCrowding, ReportTypeBreakdown, ReportTypeAccident, ReportTypeOther:
		return true
	}

	return false
}

func KnownReportSeverity(value ReportSeverity) bool {
	switch value {
	case ReportSeverityLow, ReportSeverityMedium, ReportSeverityHigh, ReportSeverityCritical:
		return true
	}

	return false
}
