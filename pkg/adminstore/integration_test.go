package adminstore

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genielabs/genie-admin/config"
	"github.com/genielabs/genie-admin/pkg/adminapi"
	"github.com/genielabs/genie-admin/pkg/models"
	"github.com/genielabs/genie-admin/pkg/server"
	"github.com/genielabs/genie-admin/pkg/tokenstore"
)

func TestStoreAgainstDemoServer(t *testing.T) {
	cfg := config.Defaults()
	cfg.Demo.UserCount = 45

	backend, err := server.NewDemoBackend(cfg)
	require.NoError(t, err)
	appState, err := server.NewAppState(cfg, backend)
	require.NoError(t, err)
	srv := httptest.NewServer(server.Create(appState).Handler)
	defer srv.Close()

	ctx := context.Background()
	storage := tokenstore.NewFileStorage(filepath.Join(t.TempDir(), "session.json"))
	client := adminapi.NewClient(srv.URL, storage)

	s := New(client, storage)
	defer s.Dispose()

	err = s.Login(ctx, cfg.Demo.AdminEmail, "wrong")
	require.EqualError(t, err, "Invalid credentials")
	assert.Equal(t, "Invalid credentials", s.Snapshot().Error)

	require.NoError(t, s.Login(ctx, cfg.Demo.AdminEmail, cfg.Demo.AdminPassword))
	assert.Empty(t, s.Snapshot().Error)

	s.FetchUsers(ctx, &models.ListUsersParams{Page: 3})
	snap := s.Snapshot()
	require.Empty(t, snap.Error)
	assert.Len(t, snap.Users, 5)
	assert.Equal(t, 45, snap.TotalUsers)
	assert.Equal(t, 3, snap.TotalPages)
	assert.Equal(t, 3, snap.CurrentPage)

	first := snap.Users[0]
	s.OpenUserDetail(ctx, first.ID)
	snap = s.Snapshot()
	require.NotNil(t, snap.SelectedUser)
	assert.Equal(t, first.ID, snap.SelectedUser.ID)

	date, err := s.CreateDate(ctx, &models.CreateDateRequest{
		User1ID:         snap.Users[0].ID,
		User2ID:         snap.Users[1].ID,
		ScheduledTime:   time.Now().Add(24 * time.Hour).Unix(),
		DurationMinutes: 45,
		DateType:        "coffee",
	})
	require.NoError(t, err)

	snap = s.Snapshot()
	found := false
	for _, d := range snap.GenieDates {
		assert.Equal(t, snap.Admin.AdminID, d.GenieID)
		found = found || d.ID == date.ID
	}
	assert.True(t, found)

	require.NoError(t, s.UpdateDateStatus(ctx, date.ID, models.DateStatusCancelled, nil))

	// a new process picks the session up from the file
	restored, err := FromPersistedSnapshot(ctx, client, tokenstore.NewFileStorage(storage.Path()))
	require.NoError(t, err)
	defer restored.Dispose()
	assert.True(t, restored.Snapshot().IsAuthenticated)

	restored.SearchUsers(ctx, first.Email)
	assert.Empty(t, restored.Snapshot().Error)
	assert.GreaterOrEqual(t, restored.Snapshot().TotalUsers, 1)

	require.NoError(t, s.Logout(ctx))
	s.FetchUsers(ctx, nil)
	assert.Equal(t, "Unauthorized", s.Snapshot().Error)
}
