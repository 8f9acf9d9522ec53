package models

import "time"

type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusPending   AccountStatus = "pending"
	AccountStatusSuspended AccountStatus = "suspended"
)

type UserSummary struct {
	ID            string        `json:"id" yaml:"id"`
	Name          string        `json:"name" yaml:"name"`
	Email         string        `json:"email" yaml:"email"`
	Status        AccountStatus `json:"status" yaml:"status"`
	Gender        string        `json:"gender" yaml:"gender"`
	CreatedAt     time.Time     `json:"createdAt" yaml:"created_at"`
	EmailVerified bool          `json:"emailVerified" yaml:"email_verified"`
	PhoneVerified bool          `json:"phoneVerified" yaml:"phone_verified"`
	PhotoVerified bool          `json:"photoVerified" yaml:"photo_verified"`
	MatchCount    int           `json:"matchCount" yaml:"match_count"`
	DateCount     int           `json:"dateCount" yaml:"date_count"`
}

// UserDetail is the full user record shown in the detail view.
type UserDetail struct {
	UserSummary  `yaml:",inline"`
	Bio          string    `json:"bio,omitempty" yaml:"bio"`
	BirthDate    string    `json:"birthDate,omitempty" yaml:"birth_date"`
	City         string    `json:"city,omitempty" yaml:"city"`
	Interests    []string  `json:"interests" yaml:"interests"`
	LastActiveAt time.Time `json:"lastActiveAt" yaml:"last_active_at"`
}

type ListUsersParams struct {
	Page          int
	PageSize      int
	SortBy        string
	SortOrder     string
	AccountStatus AccountStatus
	Gender        string
}

type SearchUsersParams struct {
	Query    string
	Page     int
	PageSize int
}

type UserListResponse struct {
	Users      []UserSummary `json:"users"`
	TotalCount int           `json:"totalCount"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}

// UserSearchResponse carries no totalPages; callers derive it with PageCount.
type UserSearchResponse struct {
	Users      []UserSummary `json:"users"`
	TotalCount int           `json:"totalCount"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
}
