package model

import (
	"encoding/json"
	"fmt"
	"time"
)

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectCredential holds the OAuth client pair stored for a project.
// Persisted to the flat api_keys.txt store keyed by project name.
type ProjectCredential struct {
	ProjectID    string `json:"project_id"`
	ProjectName  string `json:"project_name"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// Complete reports whether both halves of the client pair are present.
func (c ProjectCredential) Complete() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// ParseClientSecretJSON extracts the client id/secret from a downloaded
// Google client-secret JSON file. Both "installed" and "web" credential
// sections are accepted.
func ParseClientSecretJSON(raw []byte) (clientID, clientSecret string, err error) {
	var doc struct {
		Installed *struct {
			ClientID     string `json:"client_id"`
			ClientSecret string `json:"client_secret"`
		} `json:"installed"`
		Web *struct {
			ClientID     string `json:"client_id"`
			ClientSecret string `json:"client_secret"`
		} `json:"web"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", "", fmt.Errorf("invalid client secret json: %w", err)
	}
	section := doc.Installed
	if section == nil {
		section = doc.Web
	}
	if section == nil {
		return "", "", fmt.Errorf("client secret json has no installed or web section")
	}
	if section.ClientID == "" || section.ClientSecret == "" {
		return "", "", fmt.Errorf("client secret json missing client_id or client_secret")
	}
	return section.ClientID, section.ClientSecret, nil
}

// ProjectTokenState is the per-project OAuth token material.
// The access token is only usable while now < Expiry; when it is absent or
// expired and a refresh token exists, a refresh must be attempted before any
// authenticated call.
type ProjectTokenState struct {
	ProjectID    string    `json:"project_id"`
	AccessToken  string    `json:"access_token"`
	Expiry       time.Time `json:"expiry"`
	RefreshToken string    `json:"refresh_token"`
}

// AccessTokenValid reports whether the cached access token can still be used.
func (t ProjectTokenState) AccessTokenValid(now time.Time) bool {
	return t.AccessToken != "" && now.Before(t.Expiry)
}
