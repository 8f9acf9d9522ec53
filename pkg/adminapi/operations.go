package adminapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/genielabs/genie-admin/pkg/models"
)

const (
	opLogin          = "login"
	opListUsers      = "list users"
	opSearchUsers    = "search users"
	opGetUser        = "get user"
	opGetSuggestions = "get suggestions"
	opScheduleDate   = "schedule date"
	opListDates      = "list dates"
	opUpdateDate     = "update date"
)

// Login exchanges credentials for a token pair. It does not touch storage; persisting the
// tokens is the caller's decision.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var out models.LoginResponse
	err := c.do(ctx, request{
		op:     opLogin,
		method: http.MethodPost,
		path:   APIPrefix + "/login",
		body:   models.LoginRequest{Email: email, Password: password},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListUsers(ctx context.Context, p models.ListUsersParams) (*models.UserListResponse, error) {
	q := url.Values{}
	setInt(q, "page", p.Page)
	setInt(q, "page_size", p.PageSize)
	setString(q, "sort_by", p.SortBy)
	setString(q, "sort_order", p.SortOrder)
	setString(q, "account_status", string(p.AccountStatus))
	setString(q, "gender", p.Gender)

	var out models.UserListResponse
	err := c.do(ctx, request{
		op:     opListUsers,
		method: http.MethodGet,
		path:   APIPrefix + "/users",
		query:  q,
		auth:   true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SearchUsers(ctx context.Context, p models.SearchUsersParams) (*models.UserSearchResponse, error) {
	q := url.Values{}
	q.Set("q", p.Query)
	setInt(q, "page", p.Page)
	setInt(q, "page_size", p.PageSize)

	var out models.UserSearchResponse
	err := c.do(ctx, request{
		op:     opSearchUsers,
		method: http.MethodGet,
		path:   APIPrefix + "/users/search",
		query:  q,
		auth:   true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetUser(ctx context.Context, userID string) (*models.UserDetail, error) {
	var out models.UserDetail
	err := c.do(ctx, request{
		op:     opGetUser,
		method: http.MethodGet,
		path:   APIPrefix + "/users/" + escape(userID),
		auth:   true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetSuggestions(ctx context.Context, userID string, limit int) (*models.SuggestionsResponse, error) {
	q := url.Values{}
	setInt(q, "limit", limit)

	var out models.SuggestionsResponse
	err := c.do(ctx, request{
		op:     opGetSuggestions,
		method: http.MethodGet,
		path:   APIPrefix + "/suggestions/" + escape(userID),
		query:  q,
		auth:   true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateDate(ctx context.Context, req *models.CreateDateRequest) (*models.ScheduledDate, error) {
	var out models.ScheduledDate
	err := c.do(ctx, request{
		op:     opScheduleDate,
		method: http.MethodPost,
		path:   APIPrefix + "/dates",
		body:   req,
		auth:   true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListDates(ctx context.Context, p models.ListDatesParams) (*models.DateListResponse, error) {
	q := url.Values{}
	setString(q, "genie_id", p.GenieID)
	setString(q, "status", string(p.Status))
	setInt(q, "page", p.Page)
	setInt(q, "page_size", p.PageSize)

	var out models.DateListResponse
	err := c.do(ctx, request{
		op:     opListDates,
		method: http.MethodGet,
		path:   APIPrefix + "/dates",
		query:  q,
		auth:   true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateDate(
	ctx context.Context,
	dateID string,
	req *models.UpdateDateRequest,
) (*models.ScheduledDate, error) {
	var out models.ScheduledDate
	err := c.do(ctx, request{
		op:     opUpdateDate,
		method: http.MethodPut,
		path:   APIPrefix + "/dates/" + escape(dateID),
		body:   req,
		auth:   true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func setInt(q url.Values, key string, v int) {
	if v > 0 {
		q.Set(key, strconv.Itoa(v))
	}
}

func setString(q url.Values, key, v string) {
	if v != "" {
		q.Set(key, v)
	}
}
