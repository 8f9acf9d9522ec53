package adminstore

import (
	"context"

	"github.com/genielabs/genie-admin/pkg/models"
)

// API is the subset of the admin REST API the store drives. *adminapi.Client implements it.
type API interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	ListUsers(ctx context.Context, p models.ListUsersParams) (*models.UserListResponse, error)
	SearchUsers(ctx context.Context, p models.SearchUsersParams) (*models.UserSearchResponse, error)
	GetUser(ctx context.Context, userID string) (*models.UserDetail, error)
	GetSuggestions(ctx context.Context, userID string, limit int) (*models.SuggestionsResponse, error)
	CreateDate(ctx context.Context, req *models.CreateDateRequest) (*models.ScheduledDate, error)
	ListDates(ctx context.Context, p models.ListDatesParams) (*models.DateListResponse, error)
	UpdateDate(ctx context.Context, dateID string, req *models.UpdateDateRequest) (*models.ScheduledDate, error)
}
