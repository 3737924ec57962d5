package njdf

import (
	"time"
)

type Event struct {
	Type      EventType
	Timestamp time.Time
	Body      interface{}
}

type EventType string

const (
	EventTypeRatingAccepted EventType = "RatingAccepted"

	EventTypeRatingRejected   = "RatingRejected"
	EventTypeScoreUpdated     = "ScoreUpdated"
	EventTypeReportCreated    = "ReportCreated"
	EventTypeTrafficRefreshed = "TrafficRefreshed"
)
