package models

import "time"

type DateStatus string

const (
	DateStatusScheduled DateStatus = "scheduled"
	DateStatusCompleted DateStatus = "completed"
	DateStatusCancelled DateStatus = "cancelled"
)

func (s DateStatus) Valid() bool {
	switch s {
	case DateStatusScheduled, DateStatusCompleted, DateStatusCancelled:
		return true
	}
	return false
}

type ScheduledDate struct {
	ID      string `json:"id" yaml:"id"`
	User1ID string `json:"user1Id" yaml:"user1_id"`
	User2ID string `json:"user2Id" yaml:"user2_id"`
	GenieID string `json:"genieId" yaml:"genie_id"`
	// ScheduledAt is a unix timestamp in seconds.
	ScheduledAt     int64      `json:"scheduledAt" yaml:"scheduled_at"`
	DurationMinutes int        `json:"durationMinutes" yaml:"duration_minutes"`
	DateType        string     `json:"dateType" yaml:"date_type"`
	Status          DateStatus `json:"status" yaml:"status"`
	Location        *string    `json:"location,omitempty" yaml:"location,omitempty"`
	Notes           string     `json:"notes,omitempty" yaml:"notes"`
	CreatedAt       time.Time  `json:"createdAt" yaml:"created_at"`
}

func (d *ScheduledDate) StartTime() time.Time {
	return time.Unix(d.ScheduledAt, 0)
}

type CreateDateRequest struct {
	User1ID         string  `json:"user1Id" validate:"required"`
	User2ID         string  `json:"user2Id" validate:"required,nefield=User1ID"`
	ScheduledTime   int64   `json:"scheduledTime" validate:"required,gt=0"`
	DurationMinutes int     `json:"durationMinutes" validate:"required,gt=0"`
	DateType        string  `json:"dateType" validate:"required"`
	Location        *string `json:"location,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

type UpdateDateRequest struct {
	Status DateStatus `json:"status" validate:"required,oneof=scheduled completed cancelled"`
	Notes  *string    `json:"notes,omitempty"`
}

type ListDatesParams struct {
	GenieID  string
	Status   DateStatus
	Page     int
	PageSize int
}

type DateListResponse struct {
	Dates      []ScheduledDate `json:"dates"`
	TotalCount int             `json:"totalCount"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
}
