package persistence

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"taskdash/domain/model"
	"taskdash/domain/repository"
)

const (
	credentialFileName = "api_keys.txt"
	clientIDSuffix     = "_YouTube_Client_ID"
	clientSecretSuffix = "_YouTube_Client_Secret"
)

// CredentialStore keeps per-project OAuth client pairs in a flat
// line-oriented KEY=VALUE file. The dashboard is a single-user process,
// so a process-local mutex is the only writer coordination needed.
type CredentialStore struct {
	path string
	mu   sync.Mutex
}

func NewCredentialStore(dataDir string) *CredentialStore {
	return &CredentialStore{path: filepath.Join(dataDir, credentialFileName)}
}

// Get parses the flat store and returns the client pair for the project.
// A missing file or missing keys yield empty fields, never an error.
func (s *CredentialStore) Get(projectID, projectName string) (model.ProjectCredential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred := model.ProjectCredential{ProjectID: projectID, ProjectName: projectName}
	lines, err := s.readLines()
	if err != nil {
		return cred, nil
	}
	idKey := projectName + clientIDSuffix
	secretKey := projectName + clientSecretSuffix
	for _, line := range lines {
		if v, ok := strings.CutPrefix(line, idKey+"="); ok {
			cred.ClientID = strings.TrimSpace(v)
		} else if v, ok := strings.CutPrefix(line, secretKey+"="); ok {
			cred.ClientSecret = strings.TrimSpace(v)
		}
	}
	return cred, nil
}

// Set upserts the client pair: stale lines for the project's keys are
// removed, fresh ones appended, and the whole file rewritten.
func (s *CredentialStore) Set(projectName, clientID, clientSecret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idKey := projectName + clientIDSuffix
	secretKey := projectName + clientSecretSuffix

	lines, _ := s.readLines()
	kept := make([]string, 0, len(lines)+2)
	for _, line := range lines {
		if strings.HasPrefix(line, idKey+"=") || strings.HasPrefix(line, secretKey+"=") {
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}
	kept = append(kept, fmt.Sprintf("%s=%s", idKey, clientID))
	kept = append(kept, fmt.Sprintf("%s=%s", secretKey, clientSecret))

	content := strings.Join(kept, "\n") + "\n"
	if err := os.WriteFile(s.path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("%w: write %s: %v", model.ErrFileIO, s.path, err)
	}
	return nil
}

func (s *CredentialStore) readLines() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n"), nil
}

var _ repository.ICredentialStore = (*CredentialStore)(nil)
