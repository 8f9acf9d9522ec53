package server

import (
	"fmt"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/genielabs/genie-admin/internal"
	"github.com/genielabs/genie-admin/pkg/auth"
	"github.com/genielabs/genie-admin/pkg/models"
	"github.com/genielabs/genie-admin/pkg/server/handlertools"
)

var log = internal.GetLogger()

// LoginHandler exchanges admin credentials for an access and refresh token pair.
func LoginHandler(appState *AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := handlertools.DecodeJSON(r, &req); err != nil {
			handlertools.RenderError(w, fmt.Errorf("%w: %v", models.ErrBadRequest, err), http.StatusBadRequest)
			return
		}

		admin, err := appState.Backend.Authenticate(req.Email, req.Password)
		if err != nil {
			log.Debugf("login rejected for %s (request %s)", req.Email, middleware.GetReqID(r.Context()))
			handlertools.RenderError(w, err, http.StatusUnauthorized)
			return
		}

		accessToken, err := auth.IssueAccessToken(appState.TokenAuth, admin, appState.TokenTTL)
		if err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}

		log.Infof("admin %s logged in as %s", admin.Email, admin.Role)
		if err := handlertools.EncodeJSON(w, http.StatusOK, models.LoginResponse{
			AccessToken:  accessToken,
			RefreshToken: appState.Backend.IssueRefreshToken(admin.AdminID),
			Admin:        admin,
		}); err != nil {
			log.Errorf("error encoding login response: %v", err)
		}
	}
}

func pageParams(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	page, err := handlertools.IntFromQuery[int](r, "page")
	if err != nil {
		handlertools.RenderError(w, fmt.Errorf("%w: invalid page: %v", models.ErrBadRequest, err), http.StatusBadRequest)
		return 0, 0, false
	}
	pageSize, err := handlertools.IntFromQuery[int](r, "page_size")
	if err != nil {
		handlertools.RenderError(w, fmt.Errorf("%w: invalid page_size: %v", models.ErrBadRequest, err), http.StatusBadRequest)
		return 0, 0, false
	}
	return page, pageSize, true
}

// ListUsersHandler serves GET /users with filtering, sorting and pagination.
func ListUsersHandler(appState *AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, pageSize, ok := pageParams(w, r)
		if !ok {
			return
		}
		q := r.URL.Query()

		resp, err := appState.Backend.ListUsers(models.ListUsersParams{
			Page:          page,
			PageSize:      pageSize,
			SortBy:        q.Get("sort_by"),
			SortOrder:     q.Get("sort_order"),
			AccountStatus: models.AccountStatus(q.Get("account_status")),
			Gender:        q.Get("gender"),
		})
		if err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}

		if err := handlertools.EncodeJSON(w, http.StatusOK, resp); err != nil {
			log.Errorf("error encoding users: %v", err)
		}
	}
}

// SearchUsersHandler serves GET /users/search?q=...
func SearchUsersHandler(appState *AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, pageSize, ok := pageParams(w, r)
		if !ok {
			return
		}
		query := r.URL.Query().Get("q")
		if query == "" {
			handlertools.RenderError(w, fmt.Errorf("%w: q is required", models.ErrBadRequest), http.StatusBadRequest)
			return
		}

		resp := appState.Backend.SearchUsers(models.SearchUsersParams{
			Query:    query,
			Page:     page,
			PageSize: pageSize,
		})
		if err := handlertools.EncodeJSON(w, http.StatusOK, resp); err != nil {
			log.Errorf("error encoding search results: %v", err)
		}
	}
}

func GetUserHandler(appState *AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := appState.Backend.GetUser(chi.URLParam(r, "userId"))
		if err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}
		if err := handlertools.EncodeJSON(w, http.StatusOK, user); err != nil {
			log.Errorf("error encoding user: %v", err)
		}
	}
}

func GetSuggestionsHandler(appState *AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := handlertools.IntFromQuery[int](r, "limit")
		if err != nil {
			handlertools.RenderError(w, fmt.Errorf("%w: invalid limit: %v", models.ErrBadRequest, err), http.StatusBadRequest)
			return
		}
		if limit == 0 {
			limit = appState.Config.Admin.SuggestionLimit
		}

		resp, err := appState.Backend.Suggestions(chi.URLParam(r, "userId"), limit)
		if err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}
		if err := handlertools.EncodeJSON(w, http.StatusOK, resp); err != nil {
			log.Errorf("error encoding suggestions: %v", err)
		}
	}
}

// curator returns the calling admin when their role may curate dates. Otherwise it
// renders a 403 and returns nil.
func curator(w http.ResponseWriter, r *http.Request) *models.Admin {
	admin, err := auth.AdminFromContext(r.Context())
	if err != nil {
		handlertools.RenderError(w, err, http.StatusUnauthorized)
		return nil
	}
	if !admin.Role.CanCurateDates() {
		handlertools.RenderError(w, fmt.Errorf("role %s may not curate dates", admin.Role), http.StatusForbidden)
		return nil
	}
	return admin
}

// CreateDateHandler schedules a date curated by the calling admin.
func CreateDateHandler(appState *AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admin := curator(w, r)
		if admin == nil {
			return
		}

		var req models.CreateDateRequest
		if err := handlertools.DecodeJSON(r, &req); err != nil {
			handlertools.RenderError(w, fmt.Errorf("%w: %v", models.ErrBadRequest, err), http.StatusBadRequest)
			return
		}

		date, err := appState.Backend.CreateDate(admin.AdminID, &req)
		if err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}

		start := date.StartTime()
		log.Infof("%s scheduled %s date %s for %s", admin.Email, date.DateType, date.ID, humanize.Time(start))
		if err := handlertools.EncodeJSON(w, http.StatusCreated, date); err != nil {
			log.Errorf("error encoding date: %v", err)
		}
	}
}

func ListDatesHandler(appState *AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, pageSize, ok := pageParams(w, r)
		if !ok {
			return
		}
		q := r.URL.Query()

		status := models.DateStatus(q.Get("status"))
		if status != "" && !status.Valid() {
			handlertools.RenderError(w, fmt.Errorf("%w: unknown status %q", models.ErrBadRequest, status), http.StatusBadRequest)
			return
		}

		resp := appState.Backend.ListDates(models.ListDatesParams{
			GenieID:  q.Get("genie_id"),
			Status:   status,
			Page:     page,
			PageSize: pageSize,
		})
		if err := handlertools.EncodeJSON(w, http.StatusOK, resp); err != nil {
			log.Errorf("error encoding dates: %v", err)
		}
	}
}

// UpdateDateHandler sets a date's status and optionally its notes.
func UpdateDateHandler(appState *AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if curator(w, r) == nil {
			return
		}

		var req models.UpdateDateRequest
		if err := handlertools.DecodeJSON(r, &req); err != nil {
			handlertools.RenderError(w, fmt.Errorf("%w: %v", models.ErrBadRequest, err), http.StatusBadRequest)
			return
		}

		date, err := appState.Backend.UpdateDate(chi.URLParam(r, "dateId"), &req)
		if err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}
		if err := handlertools.EncodeJSON(w, http.StatusOK, date); err != nil {
			log.Errorf("error encoding date: %v", err)
		}
	}
}
