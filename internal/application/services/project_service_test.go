package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtuali-gob/backend/internal/domain/entities"
	"github.com/virtuali-gob/backend/internal/domain/providers"
	apperrors "github.com/virtuali-gob/backend/pkg/errors"
)

func newProjectService(projects *fakeProjectRepo, kbs *fakeKnowledgeBaseRepo, blobs *fakeBlobStore, index *fakeIndexProvider) *ProjectService {
	return NewProjectService(projects, kbs, blobs, index, "virtuali-gob", "nyc3")
}

func publishableProject() *entities.Project {
	return &entities.Project{
		ID:          "project-1",
		Code:        "abc123def456",
		Name:        "Ley de Transparencia",
		Slug:        "ley-de-transparencia",
		Title:       "Ley de Transparencia Activa",
		Description: "Obliga a publicar información pública",
		Summary:     "Resumen del proyecto",
		Category:    "Justicia y Derechos Humanos",
		Content: entities.ProjectContent{
			Objective:       "Transparentar la gestión",
			Justification:   "Demanda ciudadana",
			KeyChanges:      "Publicación proactiva",
			ImpactOnSociety: "Mayor control ciudadano",
		},
		Status: entities.ProjectStatusReady,
	}
}

func TestCreate_ProvisionsProjectAndKnowledgeBase(t *testing.T) {
	projects := newFakeProjectRepo()
	kbs := newFakeKnowledgeBaseRepo()
	blobs := newFakeBlobStore()
	index := &fakeIndexProvider{
		createInfo: &providers.KnowledgeBaseInfo{
			UUID: "remote-uuid",
			Name: "remote-name",
			LastIndexingJob: &providers.IndexingJob{
				Phase:  entities.IndexPhasePending,
				Status: entities.IndexStatusPending,
			},
		},
	}

	svc := newProjectService(projects, kbs, blobs, index)

	project, kb, err := svc.Create(context.Background(), CreateProjectInput{
		Name:           "Ley de Transparencia",
		Slug:           "ley-de-transparencia",
		AuthorFullname: "Diputada Pérez",
		PDF:            []byte("%PDF-1.4"),
	})
	require.NoError(t, err)

	// The code is a dash-stripped UUID prefix.
	assert.Len(t, project.Code, 12)
	assert.NotContains(t, project.Code, "-")
	assert.Equal(t, project.Code+"-project.pdf", project.Filename)
	assert.Equal(t, entities.ProjectStatusCreated, project.Status)

	// The primary PDF lands in the knowledge-base folder.
	require.Len(t, blobs.puts, 1)
	assert.Equal(t, project.PrimaryDocumentKey(), blobs.puts[0])
	assert.True(t, strings.HasPrefix(blobs.puts[0], "knowledge_bases/"+project.Code+"-files/knowledge_base/"))

	// The knowledge base indexes that folder.
	require.Len(t, index.createdNames, 1)
	assert.Equal(t, project.Code+"-kb", index.createdNames[0])
	assert.Equal(t, "virtuali-gob", index.createdDS[0].BucketName)
	assert.Equal(t, entities.KnowledgeBaseFolder(project.Code), index.createdDS[0].ItemPath)
	assert.Equal(t, "nyc3", index.createdDS[0].Region)

	assert.Equal(t, "remote-uuid", kb.UUID)
	assert.Equal(t, project.ID, kb.ProjectID)
	assert.Equal(t, entities.IndexStatusPending, kb.Status)

	stored, err := kbs.GetByProjectID(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, kb.ID, stored.ID)
}

func TestCreate_DefaultsStatusWhenNoIndexingJob(t *testing.T) {
	index := &fakeIndexProvider{
		createInfo: &providers.KnowledgeBaseInfo{UUID: "remote-uuid"},
	}
	svc := newProjectService(newFakeProjectRepo(), newFakeKnowledgeBaseRepo(), newFakeBlobStore(), index)

	_, kb, err := svc.Create(context.Background(), CreateProjectInput{
		Name:           "Ley",
		Slug:           "ley",
		AuthorFullname: "Autor",
		PDF:            []byte("%PDF-1.4"),
	})
	require.NoError(t, err)
	assert.Equal(t, entities.IndexStatusUnknown, kb.Status)
}

func TestCreate_Validation(t *testing.T) {
	svc := newProjectService(newFakeProjectRepo(), newFakeKnowledgeBaseRepo(), newFakeBlobStore(), &fakeIndexProvider{})

	_, _, err := svc.Create(context.Background(), CreateProjectInput{
		Slug: "ley", AuthorFullname: "Autor", PDF: []byte("%PDF"),
	})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, _, err = svc.Create(context.Background(), CreateProjectInput{
		Name: "Ley", Slug: "ley", AuthorFullname: "Autor",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Contains(t, err.Error(), "PDF")
}

func TestPublish_Gate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(p *entities.Project)
		wantMissing string
	}{
		{"not ready", func(p *entities.Project) { p.Status = entities.ProjectStatusCreated }, "status"},
		{"missing title", func(p *entities.Project) { p.Title = "" }, "title"},
		{"missing summary", func(p *entities.Project) { p.Summary = "" }, "summary"},
		{"missing category", func(p *entities.Project) { p.Category = "" }, "category"},
		{"empty content", func(p *entities.Project) { p.Content = entities.ProjectContent{} }, "content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project := publishableProject()
			tt.mutate(project)
			svc := newProjectService(newFakeProjectRepo(project), newFakeKnowledgeBaseRepo(), newFakeBlobStore(), &fakeIndexProvider{})

			_, err := svc.Publish(context.Background(), project.ID)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
			assert.Contains(t, err.Error(), tt.wantMissing)
		})
	}
}

func TestPublish_SetsStatusAndTimestamp(t *testing.T) {
	project := publishableProject()
	repo := newFakeProjectRepo(project)
	svc := newProjectService(repo, newFakeKnowledgeBaseRepo(), newFakeBlobStore(), &fakeIndexProvider{})

	published, err := svc.Publish(context.Background(), project.ID)
	require.NoError(t, err)

	assert.Equal(t, entities.ProjectStatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)
	require.Len(t, repo.updates, 1)
}

func TestUnpublish_RevertsToReady(t *testing.T) {
	project := publishableProject()
	project.Status = entities.ProjectStatusPublished
	now := project.CreatedAt
	project.PublishedAt = &now

	svc := newProjectService(newFakeProjectRepo(project), newFakeKnowledgeBaseRepo(), newFakeBlobStore(), &fakeIndexProvider{})

	unpublished, err := svc.Unpublish(context.Background(), project.ID)
	require.NoError(t, err)

	assert.Equal(t, entities.ProjectStatusReady, unpublished.Status)
	assert.Nil(t, unpublished.PublishedAt)
}

func TestListKnowledgeBaseFiles(t *testing.T) {
	project := publishableProject()
	blobs := newFakeBlobStore()
	blobs.objects[project.PrimaryDocumentKey()] = []byte("%PDF-1.4")
	blobs.objects["unrelated/other.pdf"] = []byte("%PDF-1.4")

	svc := newProjectService(newFakeProjectRepo(project), newFakeKnowledgeBaseRepo(), blobs, &fakeIndexProvider{})

	files, err := svc.ListKnowledgeBaseFiles(context.Background(), project.ID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, project.PrimaryDocumentKey(), files[0].Key)
}
