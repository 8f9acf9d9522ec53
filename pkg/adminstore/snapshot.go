package adminstore

import (
	"github.com/genielabs/genie-admin/pkg/models"
)

// Snapshot is a point-in-time copy of the store state. Mutating it does not affect the store.
type Snapshot struct {
	Admin           *models.Admin `json:"admin"`
	IsAuthenticated bool          `json:"isAuthenticated"`
	AccessToken     string        `json:"accessToken,omitempty"`

	Users       []models.UserSummary `json:"users"`
	TotalUsers  int                  `json:"totalUsers"`
	CurrentPage int                  `json:"currentPage"`
	PageSize    int                  `json:"pageSize"`
	TotalPages  int                  `json:"totalPages"`

	SelectedUser    *models.UserDetail      `json:"selectedUser"`
	UserSuggestions []models.DateSuggestion `json:"userSuggestions"`

	GenieDates      []models.ScheduledDate `json:"genieDates"`
	TotalGenieDates int                    `json:"totalGenieDates"`

	// Requests holds the state of operations that are pending or last failed.
	// Operations missing from the map are idle.
	Requests map[models.Operation]models.RequestState `json:"requests"`
	// Error is the message of the most recent failure. Starting any action clears it.
	Error string `json:"error,omitempty"`
}

// Request returns the state of op.
func (s Snapshot) Request(op models.Operation) models.RequestState {
	if rs, ok := s.Requests[op]; ok {
		return rs
	}
	return models.Idle()
}

// IsLoading reports whether any operation is in flight.
func (s Snapshot) IsLoading() bool {
	for _, rs := range s.Requests {
		if rs.IsPending() {
			return true
		}
	}
	return false
}

func initialState(pageSize int) Snapshot {
	return Snapshot{
		Users:           []models.UserSummary{},
		CurrentPage:     models.DefaultPage,
		PageSize:        pageSize,
		UserSuggestions: []models.DateSuggestion{},
		GenieDates:      []models.ScheduledDate{},
		Requests:        make(map[models.Operation]models.RequestState),
	}
}

// resetSession clears the session and every fetched collection. Request tracking is
// left alone so in-flight operations still settle.
func (s *Snapshot) resetSession(pageSize int) {
	requests := s.Requests
	*s = initialState(pageSize)
	s.Requests = requests
}

// persistedSession is the slice of state written under tokenstore.SessionKey.
type persistedSession struct {
	Admin           *models.Admin `json:"admin"`
	IsAuthenticated bool          `json:"isAuthenticated"`
	AccessToken     string        `json:"accessToken"`
}

// consistent reports whether the session fields satisfy the all-or-nothing rule.
func (p persistedSession) consistent() bool {
	if p.IsAuthenticated {
		return p.Admin != nil && p.Admin.AdminID != "" && p.AccessToken != ""
	}
	return p.Admin == nil && p.AccessToken == ""
}
