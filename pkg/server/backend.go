package server

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/genielabs/genie-admin/config"
	"github.com/genielabs/genie-admin/pkg/fixtures"
	"github.com/genielabs/genie-admin/pkg/models"
)

const (
	MaxPageSize            = 100
	DefaultSuggestionLimit = 10
)

var ErrInvalidCredentials = errors.New("Invalid credentials") //nolint:revive,stylecheck // shown to operators verbatim

var validate = validator.New()

type adminRecord struct {
	models.Admin
	passwordHash []byte
}

// Backend is the in-memory data set served by the demo admin API.
type Backend struct {
	mu            sync.RWMutex
	admins        map[string]*adminRecord // keyed by lower-cased email
	users         []models.UserDetail
	userIndex     map[string]int
	dates         []models.ScheduledDate
	refreshTokens map[string]string
	now           func() time.Time
}

// NewBackend loads ds into a Backend. Admin passwords are hashed with bcrypt at the given cost.
func NewBackend(ds *fixtures.Dataset, bcryptCost int) (*Backend, error) {
	b := &Backend{
		admins:        make(map[string]*adminRecord, len(ds.Admins)),
		users:         append([]models.UserDetail(nil), ds.Users...),
		userIndex:     make(map[string]int, len(ds.Users)),
		dates:         append([]models.ScheduledDate(nil), ds.Dates...),
		refreshTokens: make(map[string]string),
		now:           time.Now,
	}

	for _, a := range ds.Admins {
		if !a.Role.Valid() {
			return nil, fmt.Errorf("admin %s has invalid role %q", a.Email, a.Role)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %s: %w", a.Email, err)
		}
		b.admins[strings.ToLower(a.Email)] = &adminRecord{Admin: a.Admin, passwordHash: hash}
	}
	for i, u := range b.users {
		b.userIndex[u.ID] = i
	}

	return b, nil
}

// NewDemoBackend builds the backend for `genie demo` from the fixture file when configured,
// otherwise from freshly generated fixtures seeded by cfg.Demo.Seed.
func NewDemoBackend(cfg *config.Config) (*Backend, error) {
	var ds *fixtures.Dataset
	if cfg.Demo.FixturePath != "" {
		loaded, err := fixtures.LoadYAML(cfg.Demo.FixturePath)
		if err != nil {
			return nil, err
		}
		ds = loaded
	} else {
		ds = fixtures.NewBuilder(cfg.Demo.Seed, time.Now()).
			DemoDataset(cfg.Demo.UserCount, cfg.Demo.AdminEmail, cfg.Demo.AdminPassword)
	}
	return NewBackend(ds, bcrypt.DefaultCost)
}

// Authenticate returns the admin for a valid email/password pair.
func (b *Backend) Authenticate(email, password string) (*models.Admin, error) {
	b.mu.RLock()
	rec, ok := b.admins[strings.ToLower(strings.TrimSpace(email))]
	b.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	admin := rec.Admin
	return &admin, nil
}

// IssueRefreshToken records an opaque refresh token for adminID. Refreshing is not served.
func (b *Backend) IssueRefreshToken(adminID string) string {
	token := uuid.NewString()
	b.mu.Lock()
	b.refreshTokens[token] = adminID
	b.mu.Unlock()
	return token
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = models.DefaultPage
	}
	if pageSize < 1 {
		pageSize = models.DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

func paginate[T any](items []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return append([]T(nil), items[start:end]...)
}

func summaries(users []models.UserDetail) []models.UserSummary {
	out := make([]models.UserSummary, len(users))
	for i := range users {
		out[i] = users[i].UserSummary
	}
	return out
}

func (b *Backend) ListUsers(p models.ListUsersParams) (*models.UserListResponse, error) {
	page, pageSize := normalizePage(p.Page, p.PageSize)

	less, err := userOrder(p.SortBy, p.SortOrder)
	if err != nil {
		return nil, err
	}

	b.mu.RLock()
	filtered := make([]models.UserDetail, 0, len(b.users))
	for _, u := range b.users {
		if p.AccountStatus != "" && u.Status != p.AccountStatus {
			continue
		}
		if p.Gender != "" && !strings.EqualFold(u.Gender, p.Gender) {
			continue
		}
		filtered = append(filtered, u)
	}
	b.mu.RUnlock()

	sort.SliceStable(filtered, func(i, j int) bool {
		return less(&filtered[i].UserSummary, &filtered[j].UserSummary)
	})

	return &models.UserListResponse{
		Users:      summaries(paginate(filtered, page, pageSize)),
		TotalCount: len(filtered),
		Page:       page,
		PageSize:   pageSize,
		TotalPages: models.PageCount(len(filtered), pageSize),
	}, nil
}

func userOrder(sortBy, sortOrder string) (func(a, b *models.UserSummary) bool, error) {
	var less func(a, b *models.UserSummary) bool
	switch sortBy {
	case "", "created_at":
		less = func(a, b *models.UserSummary) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case "name":
		less = func(a, b *models.UserSummary) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case "email":
		less = func(a, b *models.UserSummary) bool { return a.Email < b.Email }
	default:
		return nil, fmt.Errorf("%w: unsupported sort_by %q", models.ErrBadRequest, sortBy)
	}

	switch sortOrder {
	case "", "desc":
		return func(a, b *models.UserSummary) bool { return less(b, a) }, nil
	case "asc":
		return less, nil
	}
	return nil, fmt.Errorf("%w: unsupported sort_order %q", models.ErrBadRequest, sortOrder)
}

// SearchUsers matches query case-insensitively against name and email. Like the
// production endpoint it does not report totalPages.
func (b *Backend) SearchUsers(p models.SearchUsersParams) *models.UserSearchResponse {
	page, pageSize := normalizePage(p.Page, p.PageSize)
	q := strings.ToLower(strings.TrimSpace(p.Query))

	b.mu.RLock()
	matched := make([]models.UserDetail, 0)
	for _, u := range b.users {
		if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q) {
			matched = append(matched, u)
		}
	}
	b.mu.RUnlock()

	return &models.UserSearchResponse{
		Users:      summaries(paginate(matched, page, pageSize)),
		TotalCount: len(matched),
		Page:       page,
		PageSize:   pageSize,
	}
}

func (b *Backend) GetUser(userID string) (*models.UserDetail, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	i, ok := b.userIndex[userID]
	if !ok {
		return nil, models.NewNotFoundError("user " + userID)
	}
	u := b.users[i]
	u.Interests = append([]string(nil), u.Interests...)
	return &u, nil
}

// Suggestions ranks active users of a different gender by the Jaccard similarity of
// their interests with userID's.
func (b *Backend) Suggestions(userID string, limit int) (*models.SuggestionsResponse, error) {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	user, err := b.GetUser(userID)
	if err != nil {
		return nil, err
	}

	b.mu.RLock()
	suggestions := make([]models.DateSuggestion, 0)
	for _, c := range b.users {
		if c.ID == user.ID || c.Status != models.AccountStatusActive || c.Gender == user.Gender {
			continue
		}
		score, shared := jaccard(user.Interests, c.Interests)
		suggestions = append(suggestions, models.DateSuggestion{
			Candidate:          c.UserSummary,
			CompatibilityScore: score,
			SharedInterests:    shared,
		})
	}
	b.mu.RUnlock()

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].CompatibilityScore != suggestions[j].CompatibilityScore {
			return suggestions[i].CompatibilityScore > suggestions[j].CompatibilityScore
		}
		return suggestions[i].Candidate.Name < suggestions[j].Candidate.Name
	})
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}

	return &models.SuggestionsResponse{UserID: userID, Suggestions: suggestions}, nil
}

func jaccard(a, b []string) (float64, []string) {
	set := make(map[string]bool, len(a))
	for _, v := range a {
		set[v] = true
	}
	union := len(set)
	shared := make([]string, 0)
	seen := make(map[string]bool, len(b))
	for _, v := range b {
		if seen[v] {
			continue
		}
		seen[v] = true
		if set[v] {
			shared = append(shared, v)
		} else {
			union++
		}
	}
	sort.Strings(shared)
	if union == 0 {
		return 0, shared
	}
	return float64(len(shared)) / float64(union), shared
}

// CreateDate schedules a date curated by genieID.
func (b *Backend) CreateDate(genieID string, req *models.CreateDateRequest) (*models.ScheduledDate, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrBadRequest, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, id := range []string{req.User1ID, req.User2ID} {
		if _, ok := b.userIndex[id]; !ok {
			return nil, models.NewNotFoundError("user " + id)
		}
	}

	d := models.ScheduledDate{
		ID:              uuid.NewString(),
		User1ID:         req.User1ID,
		User2ID:         req.User2ID,
		GenieID:         genieID,
		ScheduledAt:     req.ScheduledTime,
		DurationMinutes: req.DurationMinutes,
		DateType:        req.DateType,
		Status:          models.DateStatusScheduled,
		Location:        req.Location,
		Notes:           req.Notes,
		CreatedAt:       b.now().UTC(),
	}
	b.dates = append(b.dates, d)
	return &d, nil
}

// ListDates returns dates ordered by start time, soonest first.
func (b *Backend) ListDates(p models.ListDatesParams) *models.DateListResponse {
	page, pageSize := normalizePage(p.Page, p.PageSize)

	b.mu.RLock()
	filtered := make([]models.ScheduledDate, 0, len(b.dates))
	for _, d := range b.dates {
		if p.GenieID != "" && d.GenieID != p.GenieID {
			continue
		}
		if p.Status != "" && d.Status != p.Status {
			continue
		}
		filtered = append(filtered, d)
	}
	b.mu.RUnlock()

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].ScheduledAt < filtered[j].ScheduledAt
	})

	return &models.DateListResponse{
		Dates:      paginate(filtered, page, pageSize),
		TotalCount: len(filtered),
		Page:       page,
		PageSize:   pageSize,
	}
}

// UpdateDate merges the status onto the stored date. Notes are replaced whenever the
// request carries them, including with an empty string.
func (b *Backend) UpdateDate(dateID string, req *models.UpdateDateRequest) (*models.ScheduledDate, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrBadRequest, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.dates {
		if b.dates[i].ID != dateID {
			continue
		}
		patch := models.ScheduledDate{Status: req.Status}
		if err := mergo.Merge(&b.dates[i], patch, mergo.WithOverride, mergo.WithTransformers(timeTransformer{})); err != nil {
			return nil, err
		}
		if req.Notes != nil {
			b.dates[i].Notes = *req.Notes
		}
		d := b.dates[i]
		return &d, nil
	}
	return nil, models.NewNotFoundError("date " + dateID)
}

// timeTransformer keeps zero time.Time values in a patch from overriding stored ones.
type timeTransformer struct{}

func (timeTransformer) Transformer(typ reflect.Type) func(dst, src reflect.Value) error {
	if typ != reflect.TypeOf(time.Time{}) {
		return nil
	}
	return func(dst, src reflect.Value) error {
		if dst.CanSet() && !src.Interface().(time.Time).IsZero() {
			dst.Set(src)
		}
		return nil
	}
}
