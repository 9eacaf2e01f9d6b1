package dto

import (
	"github.com/shopspring/decimal"
)

// Request DTOs

type ViewActionRequest struct {
	Type  string `json:"type" validate:"required,oneof=search select_suggestion mode toggle_specialty sort clear"`
	Value string `json:"value" validate:"max=200"`
}

// Response DTOs

type ClinicResponse struct {
	Name         string `json:"name"`
	Locality     string `json:"locality,omitempty"`
	City         string `json:"city,omitempty"`
	AddressLine1 string `json:"address_line1,omitempty"`
	Location     string `json:"location,omitempty"`
	LogoURL      string `json:"logo_url,omitempty"`
}

type DoctorResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	NameInitials    string          `json:"name_initials,omitempty"`
	Photo           string          `json:"photo,omitempty"`
	Introduction    string          `json:"introduction,omitempty"`
	Specialties     []string        `json:"specialties"`
	ExperienceYears int             `json:"experience_years"`
	Fee             decimal.Decimal `json:"fee"`
	FeeDisplay      string          `json:"fee_display,omitempty"`
	VideoConsult    bool            `json:"video_consult"`
	InClinic        bool            `json:"in_clinic"`
	Languages       []string        `json:"languages,omitempty"`
	Clinic          *ClinicResponse `json:"clinic,omitempty"`
}

type FilterStateResponse struct {
	Search      string   `json:"search,omitempty"`
	Mode        string   `json:"mode,omitempty"`
	Specialties []string `json:"specialties,omitempty"`
	Sort        string   `json:"sort,omitempty"`
}

type DoctorListResponse struct {
	Status  string              `json:"status"`
	Doctors []DoctorResponse    `json:"doctors"`
	Total   int                 `json:"total"`
	Filters FilterStateResponse `json:"filters"`
	Query   string              `json:"query"`
	Message string              `json:"message,omitempty"`
}

type SuggestionResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	NameInitials string   `json:"name_initials,omitempty"`
	Photo        string   `json:"photo,omitempty"`
	Specialties  []string `json:"specialties"`
}

type SuggestionListResponse struct {
	Suggestions []SuggestionResponse `json:"suggestions"`
}

type SpecialtyResponse struct {
	Name        string `json:"name"`
	DoctorCount int    `json:"doctor_count"`
}

type SpecialtyListResponse struct {
	Specialties []SpecialtyResponse `json:"specialties"`
}

type ViewActionResponse struct {
	Query       string               `json:"query"`
	Location    string               `json:"location"`
	Listing     *DoctorListResponse  `json:"listing"`
	Suggestions []SuggestionResponse `json:"suggestions"`
}
