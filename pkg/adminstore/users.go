package adminstore

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/genielabs/genie-admin/pkg/models"
)

// FetchUsers loads one page of users. A nil params, or zero Page/PageSize, reuses the
// current page and page size, so FetchUsers(ctx, nil) refreshes the visible page.
func (s *Store) FetchUsers(ctx context.Context, params *models.ListUsersParams) {
	p := models.ListUsersParams{}
	if params != nil {
		p = *params
	}

	s.mu.RLock()
	if p.Page <= 0 {
		p.Page = s.state.CurrentPage
	}
	if p.PageSize <= 0 {
		p.PageSize = s.state.PageSize
	}
	s.mu.RUnlock()

	c, ctx, cancel, err := s.begin(ctx, models.OpFetchUsers, keyUsers)
	if err != nil {
		return
	}
	defer cancel()

	resp, err := s.api.ListUsers(ctx, p)
	s.finish(c, err, func(st *Snapshot) {
		pageSize := resp.PageSize
		if pageSize <= 0 {
			pageSize = p.PageSize
		}
		page := resp.Page
		if page <= 0 {
			page = p.Page
		}
		commitUsers(st, resp.Users, resp.TotalCount, page, pageSize, resp.TotalPages)
	})
}

// SearchUsers searches from the first page. A blank query is sent as is.
func (s *Store) SearchUsers(ctx context.Context, query string) {
	s.SearchUsersPage(ctx, query, models.DefaultPage)
}

// SearchUsersPage searches at page with the current page size. The search endpoint
// does not report totalPages, so it is derived as ceil(totalCount / pageSize).
func (s *Store) SearchUsersPage(ctx context.Context, query string, page int) {
	if page <= 0 {
		page = models.DefaultPage
	}
	s.mu.RLock()
	pageSize := s.state.PageSize
	s.mu.RUnlock()

	c, ctx, cancel, err := s.begin(ctx, models.OpSearchUsers, keyUsers)
	if err != nil {
		return
	}
	defer cancel()

	resp, err := s.api.SearchUsers(ctx, models.SearchUsersParams{
		Query:    query,
		Page:     page,
		PageSize: pageSize,
	})
	s.finish(c, err, func(st *Snapshot) {
		size := resp.PageSize
		if size <= 0 {
			size = pageSize
		}
		current := resp.Page
		if current <= 0 {
			current = page
		}
		commitUsers(st, resp.Users, resp.TotalCount, current, size, models.PageCount(resp.TotalCount, size))
	})
}

// commitUsers replaces the user page wholesale. The page is truncated to pageSize and
// currentPage kept inside [1, totalPages].
func commitUsers(st *Snapshot, users []models.UserSummary, totalCount, page, pageSize, totalPages int) {
	if users == nil {
		users = []models.UserSummary{}
	}
	if len(users) > pageSize {
		log.Warnf("backend returned %d users for page size %d; truncating", len(users), pageSize)
		users = users[:pageSize]
	}
	st.Users = users
	st.TotalUsers = totalCount
	st.PageSize = pageSize
	st.TotalPages = totalPages
	st.CurrentPage = models.ClampPage(page, totalPages)
}

// FetchUserDetails loads the full record for userID into SelectedUser.
func (s *Store) FetchUserDetails(ctx context.Context, userID string) {
	c, ctx, cancel, err := s.begin(ctx, models.OpFetchUserDetails, keySelectedUser)
	if err != nil {
		return
	}
	defer cancel()
	s.loadUserDetails(ctx, c, userID)
}

func (s *Store) loadUserDetails(ctx context.Context, c *call, userID string) {
	user, err := s.api.GetUser(ctx, userID)
	s.finish(c, err, func(st *Snapshot) {
		st.SelectedUser = user
	})
}

// FetchSuggestions loads date suggestions for userID into UserSuggestions.
func (s *Store) FetchSuggestions(ctx context.Context, userID string) {
	c, ctx, cancel, err := s.begin(ctx, models.OpFetchSuggestions, keySuggestions)
	if err != nil {
		return
	}
	defer cancel()
	s.loadSuggestions(ctx, c, userID)
}

func (s *Store) loadSuggestions(ctx context.Context, c *call, userID string) {
	resp, err := s.api.GetSuggestions(ctx, userID, s.suggestionLimit)
	s.finish(c, err, func(st *Snapshot) {
		suggestions := resp.Suggestions
		if suggestions == nil {
			suggestions = []models.DateSuggestion{}
		}
		st.UserSuggestions = suggestions
	})
}

// OpenUserDetail fetches the user's details and suggestions concurrently. Both are
// dispatched together and each commits on its own; a failure of one does not undo
// the other and stays recorded whatever order they settle in.
func (s *Store) OpenUserDetail(ctx context.Context, userID string) {
	calls, ctx, cancel, err := s.beginGroup(ctx,
		target{op: models.OpFetchUserDetails, key: keySelectedUser},
		target{op: models.OpFetchSuggestions, key: keySuggestions},
	)
	if err != nil {
		return
	}
	defer cancel()

	var g errgroup.Group
	g.Go(func() error {
		s.loadUserDetails(ctx, calls[0], userID)
		return nil
	})
	g.Go(func() error {
		s.loadSuggestions(ctx, calls[1], userID)
		return nil
	})
	_ = g.Wait()
}

// ClearSelectedUser drops the detail view state.
func (s *Store) ClearSelectedUser() {
	s.mu.Lock()
	s.seq[keySelectedUser]++
	s.seq[keySuggestions]++
	s.state.SelectedUser = nil
	s.state.UserSuggestions = []models.DateSuggestion{}
	snap, listeners := s.prepareNotifyLocked()
	s.mu.Unlock()
	notify(snap, listeners)
}
