package persistence

import (
	"fmt"
	"sync"
	"time"

	"taskdash/domain/model"
	"taskdash/domain/repository"
)

// Settings keys, one triplet per project.
const (
	accessTokenKeyFmt  = "youtube_access_token_%s"
	refreshTokenKeyFmt = "youtube_refresh_token_%s"
	tokenExpiryKeyFmt  = "youtube_token_expiry_%s"
)

// TokenCache holds per-project token state in memory and mirrors it to the
// settings store so tokens survive restarts.
type TokenCache struct {
	settings *SettingsStore
	now      func() time.Time

	mu    sync.Mutex
	state map[string]model.ProjectTokenState
}

func NewTokenCache(settings *SettingsStore) *TokenCache {
	return &TokenCache{
		settings: settings,
		now:      time.Now,
		state:    make(map[string]model.ProjectTokenState),
	}
}

// Load restores the token state for a project. The refresh token is restored
// unconditionally; the access token only if its persisted expiry is still in
// the future, which forces a refresh on first use otherwise.
func (c *TokenCache) Load(projectID string) (model.ProjectTokenState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if st, ok := c.state[projectID]; ok {
		return st, nil
	}

	st := model.ProjectTokenState{ProjectID: projectID}
	if rt, ok := c.settings.Get(fmt.Sprintf(refreshTokenKeyFmt, projectID)); ok {
		st.RefreshToken = rt
	}
	if expStr, ok := c.settings.Get(fmt.Sprintf(tokenExpiryKeyFmt, projectID)); ok {
		if exp, err := time.Parse(time.RFC3339, expStr); err == nil && c.now().Before(exp) {
			if at, ok := c.settings.Get(fmt.Sprintf(accessTokenKeyFmt, projectID)); ok {
				st.AccessToken = at
				st.Expiry = exp
			}
		}
	}
	c.state[projectID] = st
	return st, nil
}

// Save persists whichever fields of the state are set; unset fields are
// never cleared implicitly.
func (c *TokenCache) Save(state model.ProjectTokenState) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if state.AccessToken != "" {
		if err := c.settings.Set(fmt.Sprintf(accessTokenKeyFmt, state.ProjectID), state.AccessToken); err != nil {
			return err
		}
	}
	if state.RefreshToken != "" {
		if err := c.settings.Set(fmt.Sprintf(refreshTokenKeyFmt, state.ProjectID), state.RefreshToken); err != nil {
			return err
		}
	}
	if !state.Expiry.IsZero() {
		if err := c.settings.Set(fmt.Sprintf(tokenExpiryKeyFmt, state.ProjectID), state.Expiry.UTC().Format(time.RFC3339)); err != nil {
			return err
		}
	}

	merged := c.state[state.ProjectID]
	merged.ProjectID = state.ProjectID
	if state.AccessToken != "" {
		merged.AccessToken = state.AccessToken
	}
	if state.RefreshToken != "" {
		merged.RefreshToken = state.RefreshToken
	}
	if !state.Expiry.IsZero() {
		merged.Expiry = state.Expiry
	}
	c.state[state.ProjectID] = merged
	return nil
}

// Clear removes all token material for a project from memory and storage.
func (c *TokenCache) Clear(projectID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.state, projectID)
	return c.settings.Delete(
		fmt.Sprintf(accessTokenKeyFmt, projectID),
		fmt.Sprintf(refreshTokenKeyFmt, projectID),
		fmt.Sprintf(tokenExpiryKeyFmt, projectID),
	)
}

var _ repository.ITokenCache = (*TokenCache)(nil)
