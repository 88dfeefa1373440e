package services

import (
	"context"
	"encoding/json"

	"github.com/virtuali-gob/backend/internal/domain/entities"
	"github.com/virtuali-gob/backend/internal/domain/providers"
	"github.com/virtuali-gob/backend/internal/domain/repositories"
	apperrors "github.com/virtuali-gob/backend/pkg/errors"
)

// fakeProjectRepo is an in-memory ProjectRepository.
type fakeProjectRepo struct {
	projects map[string]*entities.Project
	updates  []*entities.Project
}

func newFakeProjectRepo(projects ...*entities.Project) *fakeProjectRepo {
	repo := &fakeProjectRepo{projects: map[string]*entities.Project{}}
	for _, p := range projects {
		repo.projects[p.ID] = p
	}
	return repo
}

func (r *fakeProjectRepo) Create(ctx context.Context, project *entities.Project) error {
	r.projects[project.ID] = project
	return nil
}

func (r *fakeProjectRepo) GetByID(ctx context.Context, id string) (*entities.Project, error) {
	project, ok := r.projects[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("project not found")
	}
	return project, nil
}

func (r *fakeProjectRepo) GetByCode(ctx context.Context, code string) (*entities.Project, error) {
	for _, p := range r.projects {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, apperrors.NewNotFoundError("project not found")
}

func (r *fakeProjectRepo) List(ctx context.Context, filter repositories.ProjectFilter) ([]*entities.Project, error) {
	var out []*entities.Project
	for _, p := range r.projects {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProjectRepo) Update(ctx context.Context, project *entities.Project) error {
	if _, ok := r.projects[project.ID]; !ok {
		return apperrors.NewNotFoundError("project not found")
	}
	r.projects[project.ID] = project
	r.updates = append(r.updates, project)
	return nil
}

// fakeDocumentHandleRepo is an in-memory DocumentHandleRepository keyed by
// project.
type fakeDocumentHandleRepo struct {
	handles map[string]*entities.DocumentHandle
	deleted []string
}

func newFakeDocumentHandleRepo(handles ...*entities.DocumentHandle) *fakeDocumentHandleRepo {
	repo := &fakeDocumentHandleRepo{handles: map[string]*entities.DocumentHandle{}}
	for _, h := range handles {
		repo.handles[h.ProjectID] = h
	}
	return repo
}

func (r *fakeDocumentHandleRepo) Create(ctx context.Context, handle *entities.DocumentHandle) error {
	r.handles[handle.ProjectID] = handle
	return nil
}

func (r *fakeDocumentHandleRepo) GetByProjectID(ctx context.Context, projectID string) (*entities.DocumentHandle, error) {
	handle, ok := r.handles[projectID]
	if !ok {
		return nil, apperrors.NewNotFoundError("document handle not found")
	}
	return handle, nil
}

func (r *fakeDocumentHandleRepo) Delete(ctx context.Context, id string) error {
	for projectID, h := range r.handles {
		if h.ID == id {
			delete(r.handles, projectID)
			r.deleted = append(r.deleted, id)
			return nil
		}
	}
	return apperrors.NewNotFoundError("document handle not found")
}

// fakeKnowledgeBaseRepo is an in-memory KnowledgeBaseRepository keyed by
// project.
type fakeKnowledgeBaseRepo struct {
	kbs     map[string]*entities.KnowledgeBase
	updates []*entities.KnowledgeBase
}

func newFakeKnowledgeBaseRepo(kbs ...*entities.KnowledgeBase) *fakeKnowledgeBaseRepo {
	repo := &fakeKnowledgeBaseRepo{kbs: map[string]*entities.KnowledgeBase{}}
	for _, kb := range kbs {
		repo.kbs[kb.ProjectID] = kb
	}
	return repo
}

func (r *fakeKnowledgeBaseRepo) Create(ctx context.Context, kb *entities.KnowledgeBase) error {
	r.kbs[kb.ProjectID] = kb
	return nil
}

func (r *fakeKnowledgeBaseRepo) GetByProjectID(ctx context.Context, projectID string) (*entities.KnowledgeBase, error) {
	kb, ok := r.kbs[projectID]
	if !ok {
		return nil, apperrors.NewNotFoundError("knowledge base not found")
	}
	return kb, nil
}

func (r *fakeKnowledgeBaseRepo) Update(ctx context.Context, kb *entities.KnowledgeBase) error {
	r.kbs[kb.ProjectID] = kb
	r.updates = append(r.updates, kb)
	return nil
}

// fakeSurveyRepo is an in-memory SurveyRepository.
type fakeSurveyRepo struct {
	surveys map[string]*entities.Survey
	answers map[string][]*entities.SurveyAnswer
	created []*entities.Survey
}

func newFakeSurveyRepo() *fakeSurveyRepo {
	return &fakeSurveyRepo{
		surveys: map[string]*entities.Survey{},
		answers: map[string][]*entities.SurveyAnswer{},
	}
}

func (r *fakeSurveyRepo) Create(ctx context.Context, survey *entities.Survey) error {
	r.surveys[survey.ID] = survey
	r.created = append(r.created, survey)
	return nil
}

func (r *fakeSurveyRepo) GetByID(ctx context.Context, id string) (*entities.Survey, error) {
	survey, ok := r.surveys[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("survey not found")
	}
	return survey, nil
}

func (r *fakeSurveyRepo) ListByProjectID(ctx context.Context, projectID string) ([]*entities.Survey, error) {
	var out []*entities.Survey
	for _, s := range r.surveys {
		if s.ProjectID == projectID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSurveyRepo) ListAnswers(ctx context.Context, surveyID string) ([]*entities.SurveyAnswer, error) {
	return r.answers[surveyID], nil
}

// fakeBlobStore is an in-memory BlobStore.
type fakeBlobStore struct {
	objects map[string][]byte
	puts    []string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string][]byte{}}
}

func (s *fakeBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	body, ok := s.objects[key]
	if !ok {
		return nil, apperrors.NewNotFoundError("object not found")
	}
	return body, nil
}

func (s *fakeBlobStore) Put(ctx context.Context, key string, body []byte, contentType string, public bool) (string, error) {
	s.objects[key] = body
	s.puts = append(s.puts, key)
	return "https://cdn.test/" + key, nil
}

func (s *fakeBlobStore) List(ctx context.Context, prefix string) ([]providers.BlobObject, error) {
	var out []providers.BlobObject
	for key, body := range s.objects {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			out = append(out, providers.BlobObject{Key: key, Size: int64(len(body))})
		}
	}
	return out, nil
}

// fakeGenerator is a scripted DocumentGenerator.
type fakeGenerator struct {
	uploadCount    int
	uploadResult   *providers.UploadedDocument
	uploadErr      error
	waitErr        error
	generateResult json.RawMessage
	generateErr    error
	prompts        []string
	schemas        []map[string]any
}

func (g *fakeGenerator) Upload(ctx context.Context, content []byte, displayName, mimeType string) (*providers.UploadedDocument, error) {
	g.uploadCount++
	if g.uploadErr != nil {
		return nil, g.uploadErr
	}
	if g.uploadResult != nil {
		return g.uploadResult, nil
	}
	return &providers.UploadedDocument{
		Name:        "files/fake-upload",
		DisplayName: displayName,
		URI:         "https://generativelanguage.test/files/fake-upload",
		MIMEType:    mimeType,
		State:       entities.DocumentStateProcessing,
	}, nil
}

func (g *fakeGenerator) GetState(ctx context.Context, name string) (string, error) {
	return entities.DocumentStateActive, nil
}

func (g *fakeGenerator) WaitUntilActive(ctx context.Context, name string) error {
	return g.waitErr
}

func (g *fakeGenerator) GenerateStructured(ctx context.Context, docURI, docMIMEType, prompt string, jsonSchema map[string]any) (json.RawMessage, error) {
	g.prompts = append(g.prompts, prompt)
	g.schemas = append(g.schemas, jsonSchema)
	if g.generateErr != nil {
		return nil, g.generateErr
	}
	return g.generateResult, nil
}

// fakeIndexProvider is a scripted KnowledgeIndexProvider.
type fakeIndexProvider struct {
	createInfo   *providers.KnowledgeBaseInfo
	createErr    error
	createdNames []string
	createdDS    []providers.KnowledgeBaseDatasource

	retrieveInfo *providers.KnowledgeBaseInfo
	retrieveErr  error

	queryResult  json.RawMessage
	queryQueries []string
	queryNum     []int
	queryAlpha   []float64
}

func (p *fakeIndexProvider) Create(ctx context.Context, name string, ds providers.KnowledgeBaseDatasource) (*providers.KnowledgeBaseInfo, error) {
	p.createdNames = append(p.createdNames, name)
	p.createdDS = append(p.createdDS, ds)
	if p.createErr != nil {
		return nil, p.createErr
	}
	return p.createInfo, nil
}

func (p *fakeIndexProvider) Retrieve(ctx context.Context, uuid string) (*providers.KnowledgeBaseInfo, error) {
	if p.retrieveErr != nil {
		return nil, p.retrieveErr
	}
	return p.retrieveInfo, nil
}

func (p *fakeIndexProvider) Query(ctx context.Context, uuid, query string, numResults int, alpha float64) (json.RawMessage, error) {
	p.queryQueries = append(p.queryQueries, query)
	p.queryNum = append(p.queryNum, numResults)
	p.queryAlpha = append(p.queryAlpha, alpha)
	return p.queryResult, nil
}
