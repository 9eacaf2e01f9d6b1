package handler

import (
	"encoding/json"
	"net/http"

	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/urlstate"
	"doctor-directory/internal/usecase"
	"doctor-directory/pkg/response"
	"doctor-directory/pkg/validator"

	"github.com/gorilla/mux"
)

const ListingPath = "/api/v1/doctors"

type DoctorHandler struct {
	directoryUsecase usecase.DoctorDirectoryUsecase
	validator        *validator.CustomValidator
}

func NewDoctorHandler(directoryUsecase usecase.DoctorDirectoryUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		directoryUsecase: directoryUsecase,
		validator:        validator,
	}
}

// ListDoctors serves the listing for the filter state in the query string.
func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	state := urlstate.Decode(r.URL.Query())

	doctors, err := h.directoryUsecase.ListDoctors(r.Context(), state)
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	w.Header().Set("Content-Location", listingURL(doctors.Query))
	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) SuggestDoctors(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.directoryUsecase.Suggest(r.Context(), r.URL.Query().Get(urlstate.ParamSearch))
	if err != nil {
		response.InternalServerError(w, "Failed to get suggestions")
		return
	}

	response.Success(w, http.StatusOK, "Suggestions retrieved successfully", suggestions)
}

func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	doctor, err := h.directoryUsecase.GetDoctor(r.Context(), vars["id"])
	if err != nil {
		if err == usecase.ErrDoctorNotFound {
			response.NotFound(w, "Doctor not found")
			return
		}
		response.InternalServerError(w, "Failed to get doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

func (h *DoctorHandler) ListSpecialties(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.directoryUsecase.ListSpecialties(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get specialties")
		return
	}

	response.Success(w, http.StatusOK, "Specialties retrieved successfully", specialties)
}

// ApplyViewAction applies one user action to the view described by the query
// string. The rewritten listing URL comes back in the Location header.
func (h *DoctorHandler) ApplyViewAction(w http.ResponseWriter, r *http.Request) {
	var req dto.ViewActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.directoryUsecase.ApplyAction(r.Context(), r.URL.Query(), &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrUnknownAction:
			response.Error(w, http.StatusBadRequest, "Unknown action", nil)
		default:
			response.InternalServerError(w, "Failed to apply action")
		}
		return
	}

	query := result.Query.Encode()
	location := listingURL(query)
	w.Header().Set("Location", location)

	response.Success(w, http.StatusOK, "View updated successfully", &dto.ViewActionResponse{
		Query:       query,
		Location:    location,
		Listing:     result.Listing,
		Suggestions: result.Suggestions,
	})
}

func listingURL(query string) string {
	if query == "" {
		return ListingPath
	}
	return ListingPath + "?" + query
}
