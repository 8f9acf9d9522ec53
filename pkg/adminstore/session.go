package adminstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/genielabs/genie-admin/pkg/models"
	"github.com/genielabs/genie-admin/pkg/tokenstore"
)

// Login authenticates against the API. Only presence of both credentials is checked
// locally. On success the tokens and the session slice are persisted; on failure the
// message is recorded and the error returned.
func (s *Store) Login(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return s.fail(ctx, models.OpLogin, ErrMissingCredentials)
	}

	c, ctx, cancel, err := s.begin(ctx, models.OpLogin, "")
	if err != nil {
		return err
	}
	defer cancel()

	resp, err := s.api.Login(ctx, email, password)
	if err == nil {
		err = s.persistLogin(ctx, resp)
	}
	if err != nil {
		s.finish(c, err, nil)
		return err
	}

	if !s.finish(c, nil, func(st *Snapshot) {
		admin := *resp.Admin
		st.Admin = &admin
		st.IsAuthenticated = true
		st.AccessToken = resp.AccessToken
	}) {
		return ErrDisposed
	}

	log.Infof("logged in as %s (%s)", resp.Admin.Email, resp.Admin.Role)
	return nil
}

var errIncompleteLogin = errors.New("login failed: response is missing the admin id or access token")

// persistLogin writes both tokens and the session slice. A failed write removes all
// three keys so no partial session is left behind.
func (s *Store) persistLogin(ctx context.Context, resp *models.LoginResponse) error {
	if resp.Admin == nil || resp.Admin.AdminID == "" || resp.AccessToken == "" {
		return errIncompleteLogin
	}

	session, err := json.Marshal(persistedSession{
		Admin:           resp.Admin,
		IsAuthenticated: true,
		AccessToken:     resp.AccessToken,
	})
	if err != nil {
		return err
	}

	writes := []struct {
		key, value, what string
	}{
		{tokenstore.AccessTokenKey, resp.AccessToken, "access token"},
		{tokenstore.RefreshTokenKey, resp.RefreshToken, "refresh token"},
		{tokenstore.SessionKey, string(session), "session"},
	}
	for _, w := range writes {
		if err := s.storage.Set(ctx, w.key, w.value); err != nil {
			if clearErr := s.clearStorage(ctx); clearErr != nil {
				log.Warnf("failed to roll back partial login: %v", clearErr)
			}
			return fmt.Errorf("failed to store %s: %w", w.what, err)
		}
	}
	return nil
}

func (s *Store) clearStorage(ctx context.Context) error {
	return s.storage.Delete(
		ctx,
		tokenstore.AccessTokenKey,
		tokenstore.RefreshTokenKey,
		tokenstore.SessionKey,
	)
}

// Logout clears the session and every fetched collection in one commit and removes
// the durable tokens. It makes no network call and is idempotent. Responses still in
// flight are discarded when they arrive.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return ErrDisposed
	}
	s.state.resetSession(s.pageSize)
	s.bumpAllLocked()
	snap, listeners := s.prepareNotifyLocked()
	s.mu.Unlock()
	notify(snap, listeners)

	if err := s.clearStorage(ctx); err != nil {
		return fmt.Errorf("failed to clear stored session: %w", err)
	}
	return nil
}

// actingAdminID returns the id dates are scoped to.
func (s *Store) actingAdminID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.state.IsAuthenticated || s.state.Admin == nil {
		return "", false
	}
	return s.state.Admin.AdminID, true
}
