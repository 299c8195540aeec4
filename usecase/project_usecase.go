package usecase

import (
	"fmt"
	"strings"
	"time"

	"taskdash/domain/dto"
	"taskdash/domain/model"
	"taskdash/domain/repository"
	"taskdash/infrastructure/logger"

	"github.com/google/uuid"
)

// IProjectUsecase manages the project registry and the per-project OAuth
// client credentials.
type IProjectUsecase interface {
	Create(name, description string) (model.Project, error)
	Get(id string) (model.Project, error)
	List() ([]model.Project, error)
	Delete(id string) error
	// SetCredentials stores a client pair for a project, accepting either
	// explicit fields or the downloaded client-secret JSON.
	SetCredentials(req dto.CredentialRequest) error
	Credentials(projectID, projectName string) (model.ProjectCredential, error)
}

type ProjectUsecase struct {
	projects repository.IProjectStore
	creds    repository.ICredentialStore
	now      func() time.Time
}

func NewProjectUsecase(projects repository.IProjectStore, creds repository.ICredentialStore) *ProjectUsecase {
	return &ProjectUsecase{
		projects: projects,
		creds:    creds,
		now:      time.Now,
	}
}

func (u *ProjectUsecase) Create(name, description string) (model.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Project{}, fmt.Errorf("project name is required")
	}
	now := u.now()
	project := model.Project{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.projects.Save(project); err != nil {
		return model.Project{}, err
	}
	logger.GetLogger().WithField("project_id", project.ID).WithField("name", name).Info("Project created")
	return project, nil
}

func (u *ProjectUsecase) Get(id string) (model.Project, error) {
	return u.projects.Get(id)
}

func (u *ProjectUsecase) List() ([]model.Project, error) {
	return u.projects.List()
}

func (u *ProjectUsecase) Delete(id string) error {
	return u.projects.Delete(id)
}

func (u *ProjectUsecase) SetCredentials(req dto.CredentialRequest) error {
	clientID, clientSecret := req.ClientID, req.ClientSecret
	if req.ClientSecretJSON != "" {
		var err error
		clientID, clientSecret, err = model.ParseClientSecretJSON([]byte(req.ClientSecretJSON))
		if err != nil {
			return err
		}
	}
	if clientID == "" || clientSecret == "" {
		return fmt.Errorf("%w: both client id and client secret are required", model.ErrMissingCredentials)
	}
	return u.creds.Set(req.ProjectName, clientID, clientSecret)
}

func (u *ProjectUsecase) Credentials(projectID, projectName string) (model.ProjectCredential, error) {
	return u.creds.Get(projectID, projectName)
}

var _ IProjectUsecase = (*ProjectUsecase)(nil)
