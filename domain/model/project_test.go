package model_test

import (
	"testing"
	"time"

	"taskdash/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClientSecretJSON(t *testing.T) {
	installed := `{"installed":{"client_id":"id-1","client_secret":"sec-1","redirect_uris":["http://localhost"]}}`
	id, secret, err := model.ParseClientSecretJSON([]byte(installed))
	require.NoError(t, err)
	assert.Equal(t, "id-1", id)
	assert.Equal(t, "sec-1", secret)

	web := `{"web":{"client_id":"id-2","client_secret":"sec-2"}}`
	id, secret, err = model.ParseClientSecretJSON([]byte(web))
	require.NoError(t, err)
	assert.Equal(t, "id-2", id)
	assert.Equal(t, "sec-2", secret)

	_, _, err = model.ParseClientSecretJSON([]byte(`{"other":{}}`))
	assert.Error(t, err)

	_, _, err = model.ParseClientSecretJSON([]byte(`not json`))
	assert.Error(t, err)
}

func TestProjectCredential_Complete(t *testing.T) {
	assert.False(t, model.ProjectCredential{ClientID: "id"}.Complete())
	assert.False(t, model.ProjectCredential{ClientSecret: "sec"}.Complete())
	assert.True(t, model.ProjectCredential{ClientID: "id", ClientSecret: "sec"}.Complete())
}

func TestProjectTokenState_AccessTokenValid(t *testing.T) {
	now := time.Now()
	st := model.ProjectTokenState{AccessToken: "tok", Expiry: now.Add(time.Minute)}
	assert.True(t, st.AccessTokenValid(now))
	assert.False(t, st.AccessTokenValid(now.Add(2*time.Minute)))
	assert.False(t, model.ProjectTokenState{Expiry: now.Add(time.Minute)}.AccessTokenValid(now))
}
