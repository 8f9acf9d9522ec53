package adminstore

import (
	"context"
	"sync"

	"github.com/genielabs/genie-admin/pkg/models"
)

// fakeAPI routes each call to an optional handler and records the arguments.
type fakeAPI struct {
	mu sync.Mutex

	login          func(ctx context.Context, email, password string) (*models.LoginResponse, error)
	listUsers      func(ctx context.Context, p models.ListUsersParams) (*models.UserListResponse, error)
	searchUsers    func(ctx context.Context, p models.SearchUsersParams) (*models.UserSearchResponse, error)
	getUser        func(ctx context.Context, userID string) (*models.UserDetail, error)
	getSuggestions func(ctx context.Context, userID string, limit int) (*models.SuggestionsResponse, error)
	createDate     func(ctx context.Context, req *models.CreateDateRequest) (*models.ScheduledDate, error)
	listDates      func(ctx context.Context, p models.ListDatesParams) (*models.DateListResponse, error)
	updateDate     func(ctx context.Context, dateID string, req *models.UpdateDateRequest) (*models.ScheduledDate, error)

	listUsersCalls   []models.ListUsersParams
	searchUsersCalls []models.SearchUsersParams
	suggestionLimits []int
	listDatesCalls   []models.ListDatesParams
	createDateCalls  int
	updateDateCalls  int
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	return f.login(ctx, email, password)
}

func (f *fakeAPI) ListUsers(ctx context.Context, p models.ListUsersParams) (*models.UserListResponse, error) {
	f.mu.Lock()
	f.listUsersCalls = append(f.listUsersCalls, p)
	f.mu.Unlock()
	return f.listUsers(ctx, p)
}

func (f *fakeAPI) SearchUsers(ctx context.Context, p models.SearchUsersParams) (*models.UserSearchResponse, error) {
	f.mu.Lock()
	f.searchUsersCalls = append(f.searchUsersCalls, p)
	f.mu.Unlock()
	return f.searchUsers(ctx, p)
}

func (f *fakeAPI) GetUser(ctx context.Context, userID string) (*models.UserDetail, error) {
	return f.getUser(ctx, userID)
}

func (f *fakeAPI) GetSuggestions(ctx context.Context, userID string, limit int) (*models.SuggestionsResponse, error) {
	f.mu.Lock()
	f.suggestionLimits = append(f.suggestionLimits, limit)
	f.mu.Unlock()
	return f.getSuggestions(ctx, userID, limit)
}

func (f *fakeAPI) CreateDate(ctx context.Context, req *models.CreateDateRequest) (*models.ScheduledDate, error) {
	f.mu.Lock()
	f.createDateCalls++
	f.mu.Unlock()
	return f.createDate(ctx, req)
}

func (f *fakeAPI) ListDates(ctx context.Context, p models.ListDatesParams) (*models.DateListResponse, error) {
	f.mu.Lock()
	f.listDatesCalls = append(f.listDatesCalls, p)
	f.mu.Unlock()
	if f.listDates == nil {
		return &models.DateListResponse{}, nil
	}
	return f.listDates(ctx, p)
}

func (f *fakeAPI) UpdateDate(ctx context.Context, dateID string, req *models.UpdateDateRequest) (*models.ScheduledDate, error) {
	f.mu.Lock()
	f.updateDateCalls++
	f.mu.Unlock()
	return f.updateDate(ctx, dateID, req)
}

func (f *fakeAPI) datesCalls() []models.ListDatesParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ListDatesParams(nil), f.listDatesCalls...)
}
