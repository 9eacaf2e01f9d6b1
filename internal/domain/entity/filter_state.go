package entity

import "strings"

type ConsultationMode string

const (
	ModeNone         ConsultationMode = ""
	ModeVideoConsult ConsultationMode = "Video Consult"
	ModeInClinic     ConsultationMode = "In Clinic"
)

// ParseConsultationMode returns ModeNone for anything that is not a known mode.
func ParseConsultationMode(s string) ConsultationMode {
	switch ConsultationMode(strings.TrimSpace(s)) {
	case ModeVideoConsult:
		return ModeVideoConsult
	case ModeInClinic:
		return ModeInClinic
	}
	return ModeNone
}

type SortKey string

const (
	SortNone       SortKey = ""
	SortFees       SortKey = "fees"
	SortExperience SortKey = "experience"
)

// ParseSortKey returns SortNone for anything that is not a known key.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortFees:
		return SortFees
	case SortExperience:
		return SortExperience
	}
	return SortNone
}

// FilterState is the user's current search/filter/sort selection. It is a
// value: every transition returns a new state and leaves the receiver alone.
type FilterState struct {
	Search      string
	Mode        ConsultationMode
	Specialties []string
	Sort        SortKey
}

func (s FilterState) IsZero() bool {
	return s.Search == "" && s.Mode == ModeNone && len(s.Specialties) == 0 && s.Sort == SortNone
}

func (s FilterState) Equal(other FilterState) bool {
	if s.Search != other.Search || s.Mode != other.Mode || s.Sort != other.Sort {
		return false
	}
	if len(s.Specialties) != len(other.Specialties) {
		return false
	}
	for i := range s.Specialties {
		if s.Specialties[i] != other.Specialties[i] {
			return false
		}
	}
	return true
}

func (s FilterState) HasSpecialty(name string) bool {
	for _, sp := range s.Specialties {
		if sp == name {
			return true
		}
	}
	return false
}

func (s FilterState) WithSearch(term string) FilterState {
	next := s.clone()
	next.Search = term
	return next
}

// SelectSuggestion puts the chosen doctor's name into the search box.
func (s FilterState) SelectSuggestion(doctor Doctor) FilterState {
	return s.WithSearch(doctor.Name)
}

func (s FilterState) WithMode(mode ConsultationMode) FilterState {
	next := s.clone()
	next.Mode = mode
	return next
}

// ToggleSpecialty adds name when it is not selected and removes it when it is.
// ToggleSpecialty adds or removes name. Blank names and names containing a
// comma are ignored, since the specialties URL parameter is comma-separated.
func (s FilterState) ToggleSpecialty(name string) FilterState {
	name = strings.TrimSpace(name)
	if name == "" || strings.Contains(name, ",") {
		return s.clone()
	}

	next := s.clone()
	if s.HasSpecialty(name) {
		kept := make([]string, 0, len(s.Specialties))
		for _, sp := range s.Specialties {
			if sp != name {
				kept = append(kept, sp)
			}
		}
		next.Specialties = kept
		return next
	}
	next.Specialties = append(next.Specialties, name)
	return next
}

func (s FilterState) WithSort(key SortKey) FilterState {
	next := s.clone()
	next.Sort = key
	return next
}

func (s FilterState) Cleared() FilterState {
	return FilterState{}
}

func (s FilterState) clone() FilterState {
	next := s
	if s.Specialties != nil {
		next.Specialties = append([]string(nil), s.Specialties...)
	}
	return next
}
