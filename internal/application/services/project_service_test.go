package services_test

import (
	"context"
	"math/rand"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geognosis/orecast/internal/application/services"
	"github.com/geognosis/orecast/internal/domain/entities"
	"github.com/geognosis/orecast/internal/testutil"
	apperrors "github.com/geognosis/orecast/pkg/errors"
)

type projectFixture struct {
	repo        *testutil.MemoryProjectRepository
	metricsRepo *testutil.MemoryMetricsRepository
	historyRepo *testutil.MemoryHistoryRepository
	service     *services.ProjectService
}

func newProjectFixture(seedDemo bool) *projectFixture {
	repo := testutil.NewMemoryProjectRepository()
	metricsRepo := testutil.NewMemoryMetricsRepository()
	historyRepo := testutil.NewMemoryHistoryRepository()
	return &projectFixture{
		repo:        repo,
		metricsRepo: metricsRepo,
		historyRepo: historyRepo,
		service:     services.NewProjectService(repo, metricsRepo, historyRepo, rand.New(rand.NewSource(99)), seedDemo),
	}
}

func TestProjectService_Create(t *testing.T) {
	f := newProjectFixture(false)

	project, err := f.service.Create(context.Background(), services.CreateProjectInput{
		Name:     "Sierra Verde",
		Location: "Atacama Belt",
		Country:  "Chile",
		Minerals: []string{"copper", "Gold"},
	})
	require.NoError(t, err)

	assert.True(t, len(project.ID) > len("proj-"))
	assert.Equal(t, "Sierra Verde", project.Name)
	assert.Equal(t, entities.StatusPlanning, project.Status)
	assert.False(t, project.FromDrillingEstimator)
	assert.Regexp(t, regexp.MustCompile(`^\$\d+M - \$\d+M$`), project.NPVRange)
	assert.Len(t, f.repo.Projects, 1)
}

func TestProjectService_Create_Validation(t *testing.T) {
	f := newProjectFixture(false)

	_, err := f.service.Create(context.Background(), services.CreateProjectInput{
		Name:     " ",
		Minerals: []string{"Gold"},
	})
	require.Error(t, err)

	_, err = f.service.Create(context.Background(), services.CreateProjectInput{
		Name: "No Minerals",
	})
	require.Error(t, err)
	assert.Empty(t, f.repo.Projects)
}

func TestProjectService_SaveFromHistory(t *testing.T) {
	f := newProjectFixture(false)
	history := services.NewHistoryService(f.historyRepo, newEstimator(8), false)

	item, err := history.Submit(context.Background(), validSubmit())
	require.NoError(t, err)

	project, err := f.service.SaveFromHistory(context.Background(), item.ID)
	require.NoError(t, err)

	assert.Equal(t, item.Name, project.Name)
	assert.Equal(t, item.LocationDetails.Name, project.Location)
	assert.Equal(t, item.LocationDetails.Country, project.Country)
	assert.Equal(t, item.CostRange, project.CostRange)
	assert.Equal(t, item.CostPerMeterRange, project.CostPerMeter)
	assert.Equal(t, item.SelectedMinerals, project.Minerals)
	assert.True(t, project.FromDrillingEstimator)
	assert.Equal(t, entities.StatusInProgress, project.DisplayStatus())

	// The originating history item stays in place.
	assert.Len(t, f.historyRepo.Items, 1)
}

func TestProjectService_SaveFromHistory_NotFound(t *testing.T) {
	f := newProjectFixture(false)

	_, err := f.service.SaveFromHistory(context.Background(), "missing-id")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestProjectService_Delete_RemovesMetricsRecord(t *testing.T) {
	f := newProjectFixture(false)

	project, err := f.service.Create(context.Background(), services.CreateProjectInput{
		Name:     "To Remove",
		Minerals: []string{"Gold"},
	})
	require.NoError(t, err)

	require.NoError(t, f.metricsRepo.Save(context.Background(), &entities.FinancialMetrics{ProjectID: project.ID, NPV: 1}))

	remaining, err := f.service.Delete(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	_, err = f.metricsRepo.GetByProjectID(context.Background(), project.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestProjectService_Delete_NotFound(t *testing.T) {
	f := newProjectFixture(false)

	_, err := f.service.Delete(context.Background(), "missing-id")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestProjectService_List_SeedsDemoPortfolio(t *testing.T) {
	f := newProjectFixture(true)

	projects, err := f.service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 4)
	for _, project := range projects {
		assert.True(t, len(project.ID) > len(entities.DemoIDPrefix))
		assert.NotEmpty(t, project.NPVRange)
	}

	projects, err = f.service.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, projects, 4)
}

func TestProjectService_DisplayStatus(t *testing.T) {
	estimatorProject := &entities.ProjectData{FromDrillingEstimator: true, Status: entities.StatusCompleted}
	assert.Equal(t, entities.StatusInProgress, estimatorProject.DisplayStatus())

	bare := &entities.ProjectData{}
	assert.Equal(t, entities.StatusNA, bare.DisplayStatus())

	manual := &entities.ProjectData{Status: entities.StatusPlanning}
	assert.Equal(t, entities.StatusPlanning, manual.DisplayStatus())
}
