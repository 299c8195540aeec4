package persistence_test

import (
	"testing"
	"time"

	"taskdash/domain/model"
	"taskdash/infrastructure/persistence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCache_SaveAndLoad(t *testing.T) {
	settings := persistence.NewSettingsStore(t.TempDir())
	cache := persistence.NewTokenCache(settings)

	expiry := time.Now().Add(time.Hour)
	err := cache.Save(model.ProjectTokenState{
		ProjectID:    "p1",
		AccessToken:  "at-1",
		Expiry:       expiry,
		RefreshToken: "rt-1",
	})
	require.NoError(t, err)

	st, err := cache.Load("p1")
	require.NoError(t, err)
	assert.Equal(t, "at-1", st.AccessToken)
	assert.Equal(t, "rt-1", st.RefreshToken)
	assert.True(t, st.AccessTokenValid(time.Now()))
}

func TestTokenCache_ExpiredAccessTokenNotRestored(t *testing.T) {
	dir := t.TempDir()
	settings := persistence.NewSettingsStore(dir)

	require.NoError(t, settings.Set("youtube_access_token_p1", "stale"))
	require.NoError(t, settings.Set("youtube_refresh_token_p1", "rt-1"))
	require.NoError(t, settings.Set("youtube_token_expiry_p1", time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)))

	// A fresh cache simulates a process restart.
	cache := persistence.NewTokenCache(settings)
	st, err := cache.Load("p1")
	require.NoError(t, err)
	assert.Empty(t, st.AccessToken, "expired access token must not be restored")
	assert.Equal(t, "rt-1", st.RefreshToken, "refresh token is restored unconditionally")
}

func TestTokenCache_ValidAccessTokenRestoredAcrossRestart(t *testing.T) {
	dir := t.TempDir()
	settings := persistence.NewSettingsStore(dir)
	first := persistence.NewTokenCache(settings)

	require.NoError(t, first.Save(model.ProjectTokenState{
		ProjectID:   "p1",
		AccessToken: "at-1",
		Expiry:      time.Now().Add(30 * time.Minute),
	}))

	second := persistence.NewTokenCache(persistence.NewSettingsStore(dir))
	st, err := second.Load("p1")
	require.NoError(t, err)
	assert.Equal(t, "at-1", st.AccessToken)
}

func TestTokenCache_SaveKeepsUnsetFields(t *testing.T) {
	settings := persistence.NewSettingsStore(t.TempDir())
	cache := persistence.NewTokenCache(settings)

	require.NoError(t, cache.Save(model.ProjectTokenState{
		ProjectID:    "p1",
		AccessToken:  "at-1",
		Expiry:       time.Now().Add(time.Hour),
		RefreshToken: "rt-1",
	}))
	// A refresh response without a rotated refresh token.
	require.NoError(t, cache.Save(model.ProjectTokenState{
		ProjectID:   "p1",
		AccessToken: "at-2",
		Expiry:      time.Now().Add(2 * time.Hour),
	}))

	st, _ := cache.Load("p1")
	assert.Equal(t, "at-2", st.AccessToken)
	assert.Equal(t, "rt-1", st.RefreshToken)
}

func TestTokenCache_Clear(t *testing.T) {
	dir := t.TempDir()
	settings := persistence.NewSettingsStore(dir)
	cache := persistence.NewTokenCache(settings)

	require.NoError(t, cache.Save(model.ProjectTokenState{
		ProjectID:    "p1",
		AccessToken:  "at-1",
		Expiry:       time.Now().Add(time.Hour),
		RefreshToken: "rt-1",
	}))
	require.NoError(t, cache.Clear("p1"))

	st, err := cache.Load("p1")
	require.NoError(t, err)
	assert.Empty(t, st.AccessToken)
	assert.Empty(t, st.RefreshToken)

	_, ok := settings.Get("youtube_refresh_token_p1")
	assert.False(t, ok)
}
