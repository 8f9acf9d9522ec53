// Package fixtures builds typed demo and test entities. It replaces ad hoc mock
// arrays with deterministic builders seeded from a single value.
package fixtures

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/genielabs/genie-admin/pkg/models"
)

var Interests = []string{
	"hiking", "cooking", "jazz", "photography", "yoga", "board games", "travel",
	"climbing", "wine", "cinema", "running", "painting", "reading", "dancing",
	"surfing", "gardening", "coffee", "theatre",
}

var DateTypes = []string{"coffee", "dinner", "drinks", "activity", "walk"}

var venues = []string{
	"Blue Bottle, Hayes Valley", "Tartine Manufactory", "Golden Gate Park",
	"The Interval", "Zuni Cafe", "Mission Cliffs",
}

type Builder struct {
	faker *gofakeit.Faker
	now   time.Time
}

// NewBuilder returns a Builder whose output depends only on seed and now.
func NewBuilder(seed int64, now time.Time) *Builder {
	return &Builder{faker: gofakeit.New(seed), now: now}
}

func (b *Builder) id() string {
	id, err := uuid.NewRandomFromReader(b.faker.Rand)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (b *Builder) daysAgo(max int) time.Time {
	return b.faker.DateRange(b.now.Add(-time.Duration(max)*24*time.Hour), b.now).UTC().Truncate(time.Second)
}

func (b *Builder) Admin(role models.AdminRole) models.Admin {
	first, last := b.faker.FirstName(), b.faker.LastName()
	return models.Admin{
		AdminID: b.id(),
		Email:   strings.ToLower(fmt.Sprintf("%s.%s@genie.example.com", first, last)),
		Name:    first + " " + last,
		Role:    role,
	}
}

func (b *Builder) UserSummary() models.UserSummary {
	gender := b.faker.RandomString([]string{"female", "male"})
	var first string
	if gender == "female" {
		first = b.faker.RandomString([]string{"Ava", "Maya", "Zoe", "Nina", "Lena", "Iris", "Clara", "Ruth"})
	} else {
		first = b.faker.RandomString([]string{"Leo", "Omar", "Jonas", "Theo", "Felix", "Ivan", "Sam", "Noah"})
	}
	last := b.faker.LastName()

	status := models.AccountStatusActive
	switch n := b.faker.IntRange(0, 9); {
	case n == 0:
		status = models.AccountStatusSuspended
	case n <= 2:
		status = models.AccountStatusPending
	}

	return models.UserSummary{
		ID:            b.id(),
		Name:          first + " " + last,
		Email:         strings.ToLower(fmt.Sprintf("%s.%s%d@example.com", first, last, b.faker.IntRange(1, 99))),
		Status:        status,
		Gender:        gender,
		CreatedAt:     b.daysAgo(365),
		EmailVerified: b.faker.IntRange(0, 9) > 0,
		PhoneVerified: b.faker.Bool(),
		PhotoVerified: b.faker.Bool(),
		MatchCount:    b.faker.IntRange(0, 40),
		DateCount:     b.faker.IntRange(0, 8),
	}
}

func (b *Builder) UserDetail() models.UserDetail {
	summary := b.UserSummary()
	birth := b.faker.DateRange(b.now.AddDate(-45, 0, 0), b.now.AddDate(-21, 0, 0))
	return models.UserDetail{
		UserSummary:  summary,
		Bio:          b.faker.Sentence(12),
		BirthDate:    birth.Format("2006-01-02"),
		City:         b.faker.City(),
		Interests:    b.interests(),
		LastActiveAt: b.daysAgo(14),
	}
}

func (b *Builder) interests() []string {
	n := b.faker.IntRange(2, 6)
	seen := make(map[string]struct{}, n)
	out := make([]string, 0, n)
	for len(out) < n {
		i := b.faker.RandomString(Interests)
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}
	sort.Strings(out)
	return out
}

func (b *Builder) ScheduledDate(user1ID, user2ID, genieID string) models.ScheduledDate {
	at := b.faker.DateRange(b.now.Add(-21*24*time.Hour), b.now.Add(21*24*time.Hour)).Truncate(time.Minute)
	status := models.DateStatusScheduled
	if at.Before(b.now) {
		status = models.DateStatus(b.faker.RandomString([]string{
			string(models.DateStatusCompleted), string(models.DateStatusCompleted), string(models.DateStatusCancelled),
		}))
	}
	venue := b.faker.RandomString(venues)
	return models.ScheduledDate{
		ID:              b.id(),
		User1ID:         user1ID,
		User2ID:         user2ID,
		GenieID:         genieID,
		ScheduledAt:     at.Unix(),
		DurationMinutes: b.faker.RandomInt([]int{45, 60, 90, 120}),
		DateType:        b.faker.RandomString(DateTypes),
		Status:          status,
		Location:        &venue,
		CreatedAt:       at.Add(-time.Duration(b.faker.IntRange(24, 240)) * time.Hour).UTC(),
	}
}

// Suggestion builds a suggestion with an explicit score. Scores outside [0,1] are clamped.
func (b *Builder) Suggestion(candidate models.UserSummary, score float64, shared []string) models.DateSuggestion {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return models.DateSuggestion{
		Candidate:          candidate,
		CompatibilityScore: score,
		SharedInterests:    shared,
	}
}
