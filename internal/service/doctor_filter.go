package service

import (
	"sort"
	"strings"

	"doctor-directory/internal/domain/entity"
)

// SearchMatch decides how a search term is compared with names.
type SearchMatch string

const (
	SearchSubstring SearchMatch = "substring"
	SearchPrefix    SearchMatch = "prefix"
)

// SpecialtyMatch decides how several selected specialties combine.
type SpecialtyMatch string

const (
	// SpecialtyAny keeps doctors with at least one selected specialty.
	SpecialtyAny SpecialtyMatch = "any"
	// SpecialtyAll keeps doctors with every selected specialty.
	SpecialtyAll SpecialtyMatch = "all"
)

const DefaultSuggestionLimit = 3

// ParseSearchMatch returns SearchSubstring and false for unknown values.
func ParseSearchMatch(s string) (SearchMatch, bool) {
	switch SearchMatch(s) {
	case SearchSubstring, SearchPrefix:
		return SearchMatch(s), true
	}
	return SearchSubstring, false
}

// ParseSpecialtyMatch returns SpecialtyAny and false for unknown values.
func ParseSpecialtyMatch(s string) (SpecialtyMatch, bool) {
	switch SpecialtyMatch(s) {
	case SpecialtyAny, SpecialtyAll:
		return SpecialtyMatch(s), true
	}
	return SpecialtyAny, false
}

// DoctorFilter is the filter/sort engine. It holds only its policies, so one
// value can be shared by every request.
type DoctorFilter struct {
	search    SearchMatch
	specialty SpecialtyMatch
}

func NewDoctorFilter(search SearchMatch, specialty SpecialtyMatch) *DoctorFilter {
	if search == "" {
		search = SearchSubstring
	}
	if specialty == "" {
		specialty = SpecialtyAny
	}
	return &DoctorFilter{search: search, specialty: specialty}
}

func (f *DoctorFilter) SearchMatch() SearchMatch       { return f.search }
func (f *DoctorFilter) SpecialtyMatch() SpecialtyMatch { return f.specialty }

// Apply returns the doctors matching every active predicate of state, ordered
// by state.Sort. The input slice is left untouched.
func (f *DoctorFilter) Apply(doctors []entity.Doctor, state entity.FilterState) []entity.Doctor {
	term := normalizeTerm(state.Search)

	results := make([]entity.Doctor, 0, len(doctors))
	for _, doctor := range doctors {
		if term != "" && !f.matchesSearch(doctor, term) {
			continue
		}
		if state.Mode != entity.ModeNone && !doctor.Offers(state.Mode) {
			continue
		}
		if len(state.Specialties) > 0 && !f.matchesSpecialties(doctor, state.Specialties) {
			continue
		}
		results = append(results, doctor)
	}

	switch state.Sort {
	case entity.SortFees:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Fee.LessThan(results[j].Fee)
		})
	case entity.SortExperience:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].ExperienceYears > results[j].ExperienceYears
		})
	}

	return results
}

// Suggest returns up to limit doctors whose name matches term, in directory
// order. Mode, specialty and sort selections play no part.
func (f *DoctorFilter) Suggest(doctors []entity.Doctor, term string, limit int) []entity.Doctor {
	term = normalizeTerm(term)
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	suggestions := make([]entity.Doctor, 0, limit)
	if term == "" {
		return suggestions
	}

	for _, doctor := range doctors {
		if len(suggestions) == limit {
			break
		}
		if f.matchesText(doctor.Name, term) {
			suggestions = append(suggestions, doctor)
		}
	}
	return suggestions
}

func (f *DoctorFilter) matchesSearch(doctor entity.Doctor, term string) bool {
	if f.matchesText(doctor.Name, term) {
		return true
	}
	for _, s := range doctor.Specialties {
		if f.matchesText(s, term) {
			return true
		}
	}
	return false
}

func (f *DoctorFilter) matchesText(text, term string) bool {
	text = strings.ToLower(text)
	if f.search == SearchPrefix {
		return strings.HasPrefix(text, term)
	}
	return strings.Contains(text, term)
}

func (f *DoctorFilter) matchesSpecialties(doctor entity.Doctor, selected []string) bool {
	if f.specialty == SpecialtyAll {
		for _, s := range selected {
			if !doctor.HasSpecialty(s) {
				return false
			}
		}
		return true
	}

	for _, s := range selected {
		if doctor.HasSpecialty(s) {
			return true
		}
	}
	return false
}

func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}
