package usecase

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"testing"

	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/domain/entity"
	domainRepo "doctor-directory/internal/domain/repository"
	"doctor-directory/internal/repository"
	"doctor-directory/internal/service"
	"doctor-directory/pkg/requestid"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	doctors []entity.Doctor
	calls   int
	onFetch func()
}

func (c *fakeClient) FetchDoctors(ctx context.Context) []entity.Doctor {
	c.calls++
	if c.onFetch != nil {
		c.onFetch()
	}
	return c.doctors
}

func testDoctors() []entity.Doctor {
	return []entity.Doctor{
		{ID: "anu", Name: "Dr. Anu Gupta", Specialties: []string{"Dermatologist"}, Fee: decimal.NewFromInt(500), ExperienceYears: 10, VideoConsult: true},
		{ID: "bala", Name: "Dr. Bala Rao", Specialties: []string{"Dentist"}, Fee: decimal.NewFromInt(300), ExperienceYears: 20, InClinic: true},
		{ID: "meera", Name: "Dr. Meera Anand", Specialties: []string{"Trichologist", "Dermatologist"}, Fee: decimal.NewFromInt(700), ExperienceYears: 8, VideoConsult: true, InClinic: true},
	}
}

func newTestUsecase(client *fakeClient) (DoctorDirectoryUsecase, domainRepo.DoctorRepository) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	repo := repository.NewDoctorRepository()
	filter := service.NewDoctorFilter(service.SearchSubstring, service.SpecialtyAny)
	return NewDoctorDirectoryUsecase(log, client, repo, filter, 3), repo
}

func loaded(t *testing.T) DoctorDirectoryUsecase {
	t.Helper()
	u, _ := newTestUsecase(&fakeClient{doctors: testDoctors()})
	require.NoError(t, u.Load(context.Background()))
	return u
}

func responseIDs(doctors []dto.DoctorResponse) []string {
	out := make([]string, len(doctors))
	for i, d := range doctors {
		out[i] = d.ID
	}
	return out
}

func TestLoad_FetchesOnce(t *testing.T) {
	client := &fakeClient{doctors: testDoctors()}
	u, repo := newTestUsecase(client)
	ctx := context.Background()

	require.NoError(t, u.Load(ctx))
	require.NoError(t, u.Load(ctx))

	assert.Equal(t, 1, client.calls)
	assert.Equal(t, domainRepo.DirectoryReady, repo.Status(ctx))
}

func TestLoad_CancelledResultIsDiscarded(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &fakeClient{doctors: testDoctors(), onFetch: cancel}
	u, repo := newTestUsecase(client)

	err := u.Load(ctx)

	assert.ErrorIs(t, err, ErrLoadCancelled)
	assert.Equal(t, domainRepo.DirectoryLoading, repo.Status(context.Background()))
}

func TestListDoctors_LoadingBeforeFetch(t *testing.T) {
	u, _ := newTestUsecase(&fakeClient{doctors: testDoctors()})

	resp, err := u.ListDoctors(context.Background(), entity.FilterState{Search: "gupta"})
	require.NoError(t, err)

	assert.Equal(t, "loading", resp.Status)
	assert.Empty(t, resp.Doctors)
	assert.Empty(t, resp.Message)
	assert.Equal(t, "search=gupta", resp.Query)
}

func TestListDoctors_FiltersAndSorts(t *testing.T) {
	u := loaded(t)

	resp, err := u.ListDoctors(context.Background(), entity.FilterState{
		Specialties: []string{"Dermatologist"},
		Sort:        entity.SortFees,
	})
	require.NoError(t, err)

	assert.Equal(t, "ready", resp.Status)
	assert.Equal(t, []string{"anu", "meera"}, responseIDs(resp.Doctors))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "sort=fees&specialties=Dermatologist", resp.Query)
	assert.Equal(t, []string{"Dermatologist"}, resp.Filters.Specialties)
}

func TestListDoctors_FailedFetchRendersNoResults(t *testing.T) {
	u, _ := newTestUsecase(&fakeClient{doctors: []entity.Doctor{}})
	require.NoError(t, u.Load(context.Background()))

	resp, err := u.ListDoctors(context.Background(), entity.FilterState{})
	require.NoError(t, err)

	assert.Equal(t, "ready", resp.Status)
	assert.Empty(t, resp.Doctors)
	assert.Equal(t, NoResultsMessage, resp.Message)
}

func TestSuggest(t *testing.T) {
	u := loaded(t)

	resp, err := u.Suggest(context.Background(), "an")
	require.NoError(t, err)
	require.Len(t, resp.Suggestions, 2)
	assert.Equal(t, "anu", resp.Suggestions[0].ID)
	assert.Equal(t, "meera", resp.Suggestions[1].ID)
}

func TestGetDoctor(t *testing.T) {
	u := loaded(t)

	d, err := u.GetDoctor(context.Background(), "bala")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Bala Rao", d.Name)

	_, err = u.GetDoctor(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestListSpecialties(t *testing.T) {
	u := loaded(t)

	resp, err := u.ListSpecialties(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Specialties, len(entity.SpecialtyCatalog)+1)
	assert.Equal(t, "General Physician", resp.Specialties[0].Name)

	counts := map[string]int{}
	for _, s := range resp.Specialties {
		counts[s.Name] = s.DoctorCount
	}
	assert.Equal(t, 2, counts["Dermatologist"])
	assert.Equal(t, 1, counts["Dentist"])
	assert.Equal(t, 0, counts["ENT"])
	assert.Equal(t, "Trichologist", resp.Specialties[len(resp.Specialties)-1].Name)
}

func TestApplyAction_KeepsDeepLinkedState(t *testing.T) {
	u := loaded(t)
	query := url.Values{"search": {"gupta"}, "sort": {"fees"}}

	result, err := u.ApplyAction(context.Background(), query, &dto.ViewActionRequest{Type: ActionMode, Value: "Video Consult"})
	require.NoError(t, err)

	assert.True(t, result.Changed)
	assert.Equal(t, "gupta", result.State.Search)
	assert.Equal(t, entity.SortFees, result.State.Sort)
	assert.Equal(t, entity.ModeVideoConsult, result.State.Mode)
	assert.Equal(t, "mode=Video+Consult&search=gupta&sort=fees", result.Query.Encode())
	assert.Equal(t, []string{"anu"}, responseIDs(result.Listing.Doctors))
}

func TestApplyAction_SearchReturnsSuggestions(t *testing.T) {
	u := loaded(t)

	result, err := u.ApplyAction(context.Background(), url.Values{}, &dto.ViewActionRequest{Type: ActionSearch, Value: "an"})
	require.NoError(t, err)

	assert.Len(t, result.Suggestions, 2)
	assert.Equal(t, "search=an", result.Query.Encode())
}

func TestApplyAction_SelectSuggestion(t *testing.T) {
	u := loaded(t)

	result, err := u.ApplyAction(context.Background(), url.Values{"search": {"bal"}}, &dto.ViewActionRequest{Type: ActionSelectSuggestion, Value: "bala"})
	require.NoError(t, err)

	assert.Equal(t, "Dr. Bala Rao", result.State.Search)
	assert.Empty(t, result.Suggestions)
	assert.Equal(t, []string{"bala"}, responseIDs(result.Listing.Doctors))

	_, err = u.ApplyAction(context.Background(), url.Values{}, &dto.ViewActionRequest{Type: ActionSelectSuggestion, Value: "ghost"})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestApplyAction_ToggleAndClear(t *testing.T) {
	u := loaded(t)
	ctx := context.Background()

	result, err := u.ApplyAction(ctx, url.Values{"specialties": {"Dentist"}}, &dto.ViewActionRequest{Type: ActionToggleSpecialty, Value: "Dermatologist"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Dentist", "Dermatologist"}, result.State.Specialties)
	assert.Equal(t, 3, result.Listing.Total)

	result, err = u.ApplyAction(ctx, result.Query, &dto.ViewActionRequest{Type: ActionClear})
	require.NoError(t, err)
	assert.True(t, result.State.IsZero())
	assert.Equal(t, "", result.Query.Encode())
}

func TestApplyAction_UnchangedState(t *testing.T) {
	u := loaded(t)

	result, err := u.ApplyAction(context.Background(), url.Values{"sort": {"experience"}}, &dto.ViewActionRequest{Type: ActionSort, Value: "experience"})
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Equal(t, []string{"bala", "anu", "meera"}, responseIDs(result.Listing.Doctors))
}

func TestApplyAction_UnknownType(t *testing.T) {
	u := loaded(t)

	_, err := u.ApplyAction(context.Background(), url.Values{}, &dto.ViewActionRequest{Type: "teleport"})
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestApplyAction_LogsRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)

	filter := service.NewDoctorFilter(service.SearchSubstring, service.SpecialtyAny)
	u := NewDoctorDirectoryUsecase(log, &fakeClient{doctors: testDoctors()}, repository.NewDoctorRepository(), filter, 3)
	require.NoError(t, u.Load(context.Background()))
	buf.Reset()

	ctx := requestid.WithContext(context.Background(), "req-42")
	_, err := u.ApplyAction(ctx, url.Values{}, &dto.ViewActionRequest{Type: ActionSort, Value: "fees"})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
	assert.Contains(t, buf.String(), `"action":"sort"`)
	assert.Contains(t, buf.String(), `"changed":true`)
}

func TestLoad_LogsWithoutRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	filter := service.NewDoctorFilter(service.SearchSubstring, service.SpecialtyAny)
	u := NewDoctorDirectoryUsecase(log, &fakeClient{doctors: testDoctors()}, repository.NewDoctorRepository(), filter, 3)
	require.NoError(t, u.Load(context.Background()))

	assert.Contains(t, buf.String(), "Directory loaded with 3 doctors")
	assert.NotContains(t, buf.String(), "request_id")
}
