package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"taskdash/domain/dto"
	"taskdash/domain/model"
	"taskdash/domain/repository"
	"taskdash/infrastructure/logger"
	"taskdash/infrastructure/loopback"

	"github.com/google/uuid"
	"github.com/pkg/browser"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	youtubeapi "google.golang.org/api/youtube/v3"
	analyticsapi "google.golang.org/api/youtubeanalytics/v2"
)

const stateLength = 32

const stateAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// IAuthUsecase drives the per-project OAuth2 authorization-code flow and the
// token lifecycle around it.
type IAuthUsecase interface {
	// Authenticate runs the full browser-redirect flow for a project and
	// reports success. It blocks until a terminal outcome: redirect
	// received, provider error, state mismatch, cancellation or timeout.
	Authenticate(ctx context.Context, projectID, projectName string) (bool, error)
	// Cancel resolves an in-flight authentication for the project with a
	// failure and releases the loopback port.
	Cancel(projectID string)
	// Logout clears all token material for the project.
	Logout(projectID string) error
	// IsAuthenticated reports whether the project has a usable or
	// refreshable token.
	IsAuthenticated(projectID string) bool
	// Status summarizes the project's credential and token state.
	Status(projectID, projectName string) dto.AuthStatusResponse
	// FreshToken returns a valid access token for the project, performing
	// at most one refresh attempt when the cached token is absent or
	// expired.
	FreshToken(ctx context.Context, projectID string) (*oauth2.Token, error)
}

// AuthConfig carries the knobs the flow needs. Endpoint and OpenBrowser are
// overridable so tests can point at a local token server.
type AuthConfig struct {
	LoopbackPort int
	AuthTimeout  time.Duration
	Endpoint     oauth2.Endpoint
	OpenBrowser  func(url string) error
}

type AuthUsecase struct {
	creds    repository.ICredentialStore
	tokens   repository.ITokenCache
	projects repository.IProjectStore
	config   AuthConfig
	now      func() time.Time

	// portMu serializes authentication attempts across projects: the
	// loopback port is fixed, so two concurrent attempts would race to
	// bind it.
	portMu sync.Mutex

	sessionMu sync.Mutex
	sessions  map[string]context.CancelFunc
}

func NewAuthUsecase(creds repository.ICredentialStore, tokens repository.ITokenCache, projects repository.IProjectStore, config AuthConfig) *AuthUsecase {
	if config.AuthTimeout == 0 {
		config.AuthTimeout = 5 * time.Minute
	}
	if config.Endpoint.AuthURL == "" {
		config.Endpoint = google.Endpoint
	}
	if config.OpenBrowser == nil {
		config.OpenBrowser = browser.OpenURL
	}
	return &AuthUsecase{
		creds:    creds,
		tokens:   tokens,
		projects: projects,
		config:   config,
		now:      time.Now,
		sessions: make(map[string]context.CancelFunc),
	}
}

func (u *AuthUsecase) oauthConfig(cred model.ProjectCredential) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cred.ClientID,
		ClientSecret: cred.ClientSecret,
		RedirectURL:  loopback.RedirectURI(u.config.LoopbackPort),
		Scopes: []string{
			youtubeapi.YoutubeReadonlyScope,
			youtubeapi.YoutubeUploadScope,
			analyticsapi.YtAnalyticsReadonlyScope,
		},
		Endpoint: u.config.Endpoint,
	}
}

func (u *AuthUsecase) Authenticate(ctx context.Context, projectID, projectName string) (bool, error) {
	cred, err := u.creds.Get(projectID, projectName)
	if err != nil {
		return false, err
	}
	if !cred.Complete() {
		return false, fmt.Errorf("%w: project %s", model.ErrMissingCredentials, projectName)
	}

	// One attempt at a time: the loopback port is fixed.
	u.portMu.Lock()
	defer u.portMu.Unlock()

	state, err := randomState(stateLength)
	if err != nil {
		return false, err
	}

	listener, err := loopback.Start(u.config.LoopbackPort, state)
	if err != nil {
		return false, err
	}

	conf := u.oauthConfig(cred)
	authURL := conf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	if err := u.config.OpenBrowser(authURL); err != nil {
		listener.Close()
		return false, fmt.Errorf("failed to open browser: %w", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, u.config.AuthTimeout)
	defer cancel()
	sessionID := uuid.NewString()
	u.registerSession(projectID, cancel)
	defer u.unregisterSession(projectID)

	logger.GetLogger().WithField("project_id", projectID).WithField("session_id", sessionID).Info("Waiting for OAuth redirect")

	code, err := listener.Wait(waitCtx)
	if err != nil {
		logger.GetLogger().WithField("project_id", projectID).WithField("error", err).Warn("Authentication did not complete")
		return false, err
	}

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return false, fmt.Errorf("%w: %v", model.ErrTokenExchangeFailed, err)
	}

	if err := u.tokens.Save(model.ProjectTokenState{
		ProjectID:    projectID,
		AccessToken:  tok.AccessToken,
		Expiry:       tok.Expiry,
		RefreshToken: tok.RefreshToken,
	}); err != nil {
		return false, err
	}

	logger.GetLogger().WithField("project_id", projectID).Info("Authentication successful")
	return true, nil
}

func (u *AuthUsecase) registerSession(projectID string, cancel context.CancelFunc) {
	u.sessionMu.Lock()
	defer u.sessionMu.Unlock()
	u.sessions[projectID] = cancel
}

func (u *AuthUsecase) unregisterSession(projectID string) {
	u.sessionMu.Lock()
	defer u.sessionMu.Unlock()
	delete(u.sessions, projectID)
}

// Cancel resolves the pending authentication, if any. The listener tears
// down and the waiting call returns a failure.
func (u *AuthUsecase) Cancel(projectID string) {
	u.sessionMu.Lock()
	cancel, ok := u.sessions[projectID]
	u.sessionMu.Unlock()
	if ok {
		cancel()
	}
}

func (u *AuthUsecase) Logout(projectID string) error {
	return u.tokens.Clear(projectID)
}

func (u *AuthUsecase) IsAuthenticated(projectID string) bool {
	st, err := u.tokens.Load(projectID)
	if err != nil {
		return false
	}
	return st.AccessTokenValid(u.now()) || st.RefreshToken != ""
}

func (u *AuthUsecase) Status(projectID, projectName string) dto.AuthStatusResponse {
	resp := dto.AuthStatusResponse{ProjectID: projectID}
	if cred, err := u.creds.Get(projectID, projectName); err == nil {
		resp.HasCredentials = cred.Complete()
	}
	if st, err := u.tokens.Load(projectID); err == nil {
		resp.Authenticated = st.AccessTokenValid(u.now()) || st.RefreshToken != ""
		resp.HasRefreshToken = st.RefreshToken != ""
		if !st.Expiry.IsZero() {
			exp := st.Expiry
			resp.AccessExpiry = &exp
		}
	}
	return resp
}

// FreshToken returns a usable access token, refreshing lazily when the
// cached one is absent or expired. On refresh failure the prior state is
// left untouched and the caller gets ErrAuthenticationRequired.
func (u *AuthUsecase) FreshToken(ctx context.Context, projectID string) (*oauth2.Token, error) {
	st, err := u.tokens.Load(projectID)
	if err != nil {
		return nil, err
	}
	if st.AccessTokenValid(u.now()) {
		return &oauth2.Token{AccessToken: st.AccessToken, TokenType: "Bearer", Expiry: st.Expiry}, nil
	}
	if st.RefreshToken == "" {
		return nil, fmt.Errorf("%w: project %s has no refresh token", model.ErrAuthenticationRequired, projectID)
	}

	project, err := u.projects.Get(projectID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrAuthenticationRequired, err)
	}
	cred, err := u.creds.Get(projectID, project.Name)
	if err != nil || !cred.Complete() {
		return nil, fmt.Errorf("%w: project %s", model.ErrMissingCredentials, project.Name)
	}

	conf := u.oauthConfig(cred)
	newTok, err := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: st.RefreshToken}).Token()
	if err != nil {
		return nil, fmt.Errorf("%w: refresh failed: %v", model.ErrAuthenticationRequired, err)
	}

	// The provider does not rotate refresh tokens on refresh; Save keeps
	// the stored one when the response omits it.
	save := model.ProjectTokenState{
		ProjectID:   projectID,
		AccessToken: newTok.AccessToken,
		Expiry:      newTok.Expiry,
	}
	if newTok.RefreshToken != "" && newTok.RefreshToken != st.RefreshToken {
		save.RefreshToken = newTok.RefreshToken
	}
	if err := u.tokens.Save(save); err != nil {
		return nil, err
	}
	return newTok, nil
}

func randomState(n int) (string, error) {
	out := make([]byte, n)
	max := big.NewInt(int64(len(stateAlphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate state token: %w", err)
		}
		out[i] = stateAlphabet[idx.Int64()]
	}
	return string(out), nil
}

var _ IAuthUsecase = (*AuthUsecase)(nil)
