package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseConsultationMode(t *testing.T) {
	assert.Equal(t, ModeVideoConsult, ParseConsultationMode("Video Consult"))
	assert.Equal(t, ModeInClinic, ParseConsultationMode(" In Clinic "))
	assert.Equal(t, ModeNone, ParseConsultationMode("in clinic"))
	assert.Equal(t, ModeNone, ParseConsultationMode(""))
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortFees, ParseSortKey("fees"))
	assert.Equal(t, SortExperience, ParseSortKey("Experience"))
	assert.Equal(t, SortNone, ParseSortKey("rating"))
}

func TestFilterState_TransitionsDoNotMutate(t *testing.T) {
	base := FilterState{Search: "an", Specialties: []string{"Dentist"}}

	toggled := base.ToggleSpecialty("ENT")
	assert.Equal(t, []string{"Dentist"}, base.Specialties)
	assert.Equal(t, []string{"Dentist", "ENT"}, toggled.Specialties)

	moded := base.WithMode(ModeInClinic)
	assert.Equal(t, ModeNone, base.Mode)
	assert.Equal(t, ModeInClinic, moded.Mode)

	sorted := base.WithSort(SortFees)
	assert.Equal(t, SortNone, base.Sort)
	assert.Equal(t, SortFees, sorted.Sort)
}

func TestFilterState_ToggleSpecialty(t *testing.T) {
	s := FilterState{}.ToggleSpecialty("Dentist").ToggleSpecialty("ENT").ToggleSpecialty("Dentist")
	assert.Equal(t, []string{"ENT"}, s.Specialties)

	blank := s.ToggleSpecialty("  ")
	assert.True(t, blank.Equal(s))

	withComma := s.ToggleSpecialty("Dietitian, Nutritionist")
	assert.True(t, withComma.Equal(s))
}

func TestFilterState_SelectSuggestion(t *testing.T) {
	s := FilterState{Search: "gu", Sort: SortExperience}.SelectSuggestion(Doctor{Name: "Dr. Anu Gupta"})
	assert.Equal(t, "Dr. Anu Gupta", s.Search)
	assert.Equal(t, SortExperience, s.Sort)
}

func TestFilterState_ClearedAndIsZero(t *testing.T) {
	s := FilterState{Search: "x", Mode: ModeVideoConsult, Specialties: []string{"ENT"}, Sort: SortFees}
	assert.False(t, s.IsZero())
	assert.True(t, s.Cleared().IsZero())
}

func TestFilterState_Equal(t *testing.T) {
	a := FilterState{Search: "x", Specialties: []string{"ENT", "Dentist"}}
	assert.True(t, a.Equal(FilterState{Search: "x", Specialties: []string{"ENT", "Dentist"}}))
	assert.False(t, a.Equal(FilterState{Search: "x", Specialties: []string{"Dentist", "ENT"}}))
	assert.True(t, FilterState{}.Equal(FilterState{Specialties: []string{}}))
}

func TestDoctor_Offers(t *testing.T) {
	d := Doctor{VideoConsult: true}
	assert.True(t, d.Offers(ModeVideoConsult))
	assert.False(t, d.Offers(ModeInClinic))
	assert.True(t, d.Offers(ModeNone))
}
