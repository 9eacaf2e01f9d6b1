package usecase

import (
	"context"
	"errors"
	"net/url"
	"sort"

	"doctor-directory/internal/converter"
	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/domain/entity"
	"doctor-directory/internal/domain/repository"
	"doctor-directory/internal/infrastructure/directory"
	"doctor-directory/internal/service"
	"doctor-directory/internal/urlstate"
	"doctor-directory/pkg/requestid"

	"github.com/sirupsen/logrus"
)

var (
	ErrDoctorNotFound = errors.New("doctor not found")
	ErrLoadCancelled  = errors.New("directory load cancelled")
	ErrUnknownAction  = errors.New("unknown view action")
)

const NoResultsMessage = "No doctors found matching your criteria."

// View actions, one per user interaction on the listing page.
const (
	ActionSearch           = "search"
	ActionSelectSuggestion = "select_suggestion"
	ActionMode             = "mode"
	ActionToggleSpecialty  = "toggle_specialty"
	ActionSort             = "sort"
	ActionClear            = "clear"
)

type DoctorDirectoryUsecase interface {
	Load(ctx context.Context) error
	ListDoctors(ctx context.Context, state entity.FilterState) (*dto.DoctorListResponse, error)
	Suggest(ctx context.Context, term string) (*dto.SuggestionListResponse, error)
	GetDoctor(ctx context.Context, id string) (*dto.DoctorResponse, error)
	ListSpecialties(ctx context.Context) (*dto.SpecialtyListResponse, error)
	ApplyAction(ctx context.Context, query url.Values, req *dto.ViewActionRequest) (*ViewActionResult, error)
}

// ViewActionResult is the outcome of one view action: the rewritten query and
// everything the page needs to re-render.
type ViewActionResult struct {
	State       entity.FilterState
	Query       url.Values
	Changed     bool
	Listing     *dto.DoctorListResponse
	Suggestions []dto.SuggestionResponse
}

type doctorDirectoryUsecase struct {
	log             *logrus.Logger
	client          directory.Client
	doctorRepo      repository.DoctorRepository
	filter          *service.DoctorFilter
	suggestionLimit int
}

func NewDoctorDirectoryUsecase(
	log *logrus.Logger,
	client directory.Client,
	doctorRepo repository.DoctorRepository,
	filter *service.DoctorFilter,
	suggestionLimit int,
) DoctorDirectoryUsecase {
	if suggestionLimit <= 0 {
		suggestionLimit = service.DefaultSuggestionLimit
	}
	return &doctorDirectoryUsecase{
		log:             log,
		client:          client,
		doctorRepo:      doctorRepo,
		filter:          filter,
		suggestionLimit: suggestionLimit,
	}
}

// Load fetches the directory once. When ctx ends before the fetch resolves the
// result is thrown away and the snapshot stays untouched.
func (u *doctorDirectoryUsecase) Load(ctx context.Context) error {
	if u.doctorRepo.Status(ctx) == repository.DirectoryReady {
		return nil
	}

	doctors := u.client.FetchDoctors(ctx)
	if ctx.Err() != nil {
		u.logger(ctx).Warnf("Discarding directory fetch result: %+v", ctx.Err())
		return ErrLoadCancelled
	}

	if !u.doctorRepo.Store(ctx, doctors) {
		u.logger(ctx).Debug("Directory already loaded, ignoring second result")
		return nil
	}

	u.logger(ctx).Infof("Directory loaded with %d doctors", len(doctors))
	return nil
}

func (u *doctorDirectoryUsecase) ListDoctors(ctx context.Context, state entity.FilterState) (*dto.DoctorListResponse, error) {
	resp := &dto.DoctorListResponse{
		Status:  string(u.doctorRepo.Status(ctx)),
		Doctors: []dto.DoctorResponse{},
		Filters: converter.FilterStateToResponse(state),
		Query:   urlstate.Query(state),
	}

	if resp.Status == string(repository.DirectoryLoading) {
		return resp, nil
	}

	doctors, err := u.doctorRepo.FindAll(ctx)
	if err != nil {
		u.logger(ctx).Warnf("Failed to find all doctors: %+v", err)
		return nil, err
	}

	results := doctors
	if !state.IsZero() {
		results = u.filter.Apply(doctors, state)
	}
	resp.Doctors = converter.DoctorsToResponses(results)
	resp.Total = len(results)
	if resp.Total == 0 {
		resp.Message = NoResultsMessage
	}

	return resp, nil
}

func (u *doctorDirectoryUsecase) Suggest(ctx context.Context, term string) (*dto.SuggestionListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(ctx)
	if err != nil {
		u.logger(ctx).Warnf("Failed to find all doctors: %+v", err)
		return nil, err
	}

	return &dto.SuggestionListResponse{
		Suggestions: converter.DoctorsToSuggestions(u.filter.Suggest(doctors, term, u.suggestionLimit)),
	}, nil
}

func (u *doctorDirectoryUsecase) GetDoctor(ctx context.Context, id string) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, id)
	if err != nil {
		u.logger(ctx).Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	resp := converter.DoctorToResponse(*doctor)
	return &resp, nil
}

// ListSpecialties returns the catalog in display order followed by any other
// specialty present in the directory, alphabetically.
func (u *doctorDirectoryUsecase) ListSpecialties(ctx context.Context) (*dto.SpecialtyListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(ctx)
	if err != nil {
		u.logger(ctx).Warnf("Failed to find all doctors: %+v", err)
		return nil, err
	}

	counts := make(map[string]int)
	for _, d := range doctors {
		for _, s := range d.Specialties {
			counts[s]++
		}
	}

	specialties := make([]dto.SpecialtyResponse, 0, len(entity.SpecialtyCatalog)+len(counts))
	inCatalog := make(map[string]struct{}, len(entity.SpecialtyCatalog))
	for _, name := range entity.SpecialtyCatalog {
		inCatalog[name] = struct{}{}
		specialties = append(specialties, dto.SpecialtyResponse{Name: name, DoctorCount: counts[name]})
	}

	var extra []string
	for name := range counts {
		if _, ok := inCatalog[name]; !ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		specialties = append(specialties, dto.SpecialtyResponse{Name: name, DoctorCount: counts[name]})
	}

	return &dto.SpecialtyListResponse{Specialties: specialties}, nil
}

// ApplyAction hydrates a view from query, applies one user action and returns
// the rewritten query with the new listing.
func (u *doctorDirectoryUsecase) ApplyAction(ctx context.Context, query url.Values, req *dto.ViewActionRequest) (*ViewActionResult, error) {
	result := &ViewActionResult{Suggestions: []dto.SuggestionResponse{}}
	sync := urlstate.NewSynchronizer(func(url.Values) {
		result.Changed = true
	})
	sync.Hydrate(query)

	transition, err := u.transitionFor(ctx, req)
	if err != nil {
		return nil, err
	}

	if _, err := sync.Dispatch(transition); err != nil {
		return nil, err
	}
	result.State = sync.State()
	result.Query = sync.Query()

	u.logger(ctx).WithFields(logrus.Fields{
		"action":  req.Type,
		"changed": result.Changed,
	}).Debug("View action applied")

	if req.Type == ActionSearch {
		suggestions, err := u.Suggest(ctx, req.Value)
		if err != nil {
			return nil, err
		}
		result.Suggestions = suggestions.Suggestions
	}

	listing, err := u.ListDoctors(ctx, result.State)
	if err != nil {
		return nil, err
	}
	result.Listing = listing

	return result, nil
}

func (u *doctorDirectoryUsecase) transitionFor(ctx context.Context, req *dto.ViewActionRequest) (func(entity.FilterState) entity.FilterState, error) {
	switch req.Type {
	case ActionSearch:
		return func(s entity.FilterState) entity.FilterState { return s.WithSearch(req.Value) }, nil
	case ActionSelectSuggestion:
		doctor, err := u.doctorRepo.FindByID(ctx, req.Value)
		if err != nil {
			u.logger(ctx).Warnf("Failed to find doctor: %+v", err)
			return nil, err
		}
		if doctor == nil {
			return nil, ErrDoctorNotFound
		}
		return func(s entity.FilterState) entity.FilterState { return s.SelectSuggestion(*doctor) }, nil
	case ActionMode:
		mode := entity.ParseConsultationMode(req.Value)
		return func(s entity.FilterState) entity.FilterState { return s.WithMode(mode) }, nil
	case ActionToggleSpecialty:
		return func(s entity.FilterState) entity.FilterState { return s.ToggleSpecialty(req.Value) }, nil
	case ActionSort:
		key := entity.ParseSortKey(req.Value)
		return func(s entity.FilterState) entity.FilterState { return s.WithSort(key) }, nil
	case ActionClear:
		return func(s entity.FilterState) entity.FilterState { return s.Cleared() }, nil
	}
	return nil, ErrUnknownAction
}

// logger tags entries with the request id carried by ctx, if any.
func (u *doctorDirectoryUsecase) logger(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(u.log)
	if id, ok := requestid.FromContext(ctx); ok {
		entry = entry.WithField("request_id", id)
	}
	return entry
}
