package converter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SourceDoctorsToEntities normalizes the remote records. Records without an id
// get a stable one derived from their position and name.
func SourceDoctorsToEntities(sources []dto.SourceDoctor) []entity.Doctor {
	doctors := make([]entity.Doctor, 0, len(sources))
	for i, src := range sources {
		doctors = append(doctors, SourceDoctorToEntity(i, src))
	}
	return doctors
}

// SourceDoctorToEntity converts one remote record at list position index.
func SourceDoctorToEntity(index int, src dto.SourceDoctor) entity.Doctor {
	id := strings.TrimSpace(src.ID.Text)
	if id == "" {
		id = uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%d:%s", index, src.Name))).String()
	}

	fee, _ := ParseFee(src.Fees)
	experience, _ := ParseExperience(src.Experience)
	video, clinic := consultationFlags(src)

	doctor := entity.Doctor{
		ID:              id,
		Name:            strings.TrimSpace(src.Name),
		NameInitials:    src.NameInitials,
		Photo:           src.Photo,
		Introduction:    src.DoctorIntroduction,
		Specialties:     specialtyNames(src),
		ExperienceYears: experience,
		Fee:             fee,
		FeeDisplay:      strings.TrimSpace(src.Fees.Text),
		VideoConsult:    video,
		InClinic:        clinic,
		Languages:       src.Languages,
	}

	if src.Clinic != nil {
		doctor.Clinic = &entity.Clinic{
			Name:         src.Clinic.Name,
			Locality:     src.Clinic.Address.Locality,
			City:         src.Clinic.Address.City,
			AddressLine1: src.Clinic.Address.AddressLine1,
			Location:     src.Clinic.Address.Location,
			LogoURL:      src.Clinic.Address.LogoURL,
		}
	}

	return doctor
}

// ParseFee reads "₹ 500", "₹1,200", "500" or 500 into a non-negative amount.
// The bool is false when nothing numeric could be read; the amount is zero then.
func ParseFee(v dto.FlexValue) (decimal.Decimal, bool) {
	if v.IsNumber {
		d, err := decimal.NewFromString(v.Text)
		if err != nil || d.IsNegative() {
			return decimal.Zero, false
		}
		return d, true
	}

	digits := strings.TrimSuffix(leadingNumber(v.Text, true), ".")
	if digits == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseExperience reads "13 Years of experience", "13" or 13 into whole years.
// Values above math.MaxInt32 are unparseable.
func ParseExperience(v dto.FlexValue) (int, bool) {
	if v.IsNumber {
		d, err := decimal.NewFromString(v.Text)
		if err != nil || d.IsNegative() || d.GreaterThan(maxExperience) {
			return 0, false
		}
		return int(d.IntPart()), true
	}

	years, err := strconv.Atoi(leadingNumber(v.Text, false))
	if err != nil || years > math.MaxInt32 {
		return 0, false
	}
	return years, true
}

var maxExperience = decimal.NewFromInt(math.MaxInt32)

// leadingNumber returns the first run of ASCII digits in text. Thousands
// separators inside the run are dropped, and with fraction set a single dot
// is kept. Anything else ends the run.
func leadingNumber(text string, fraction bool) string {
	start := strings.IndexFunc(text, isASCIIDigit)
	if start < 0 {
		return ""
	}

	var b strings.Builder
	dot := false
	for _, r := range text[start:] {
		switch {
		case isASCIIDigit(r):
			b.WriteRune(r)
		case r == ',':
		case r == '.' && fraction && !dot:
			dot = true
			b.WriteRune(r)
		default:
			return b.String()
		}
	}
	return b.String()
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func specialtyNames(src dto.SourceDoctor) []string {
	names := make([]string, 0, len(src.Specialities)+len(src.Specialties))
	seen := make(map[string]struct{})
	for _, list := range [][]dto.SourceSpecialty{src.Specialities, src.Specialties} {
		for _, s := range list {
			name := strings.TrimSpace(s.Name)
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// consultationFlags prefers the boolean flags and falls back to the enum field
// used by older payloads.
func consultationFlags(src dto.SourceDoctor) (video bool, clinic bool) {
	if src.VideoConsult != nil || src.InClinic != nil {
		return src.VideoConsult != nil && *src.VideoConsult, src.InClinic != nil && *src.InClinic
	}

	switch strings.ToLower(strings.TrimSpace(src.ConsultationMode)) {
	case "video consult", "video":
		return true, false
	case "in clinic", "clinic":
		return false, true
	case "both":
		return true, true
	}
	return false, false
}

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor entity.Doctor) dto.DoctorResponse {
	resp := dto.DoctorResponse{
		ID:              doctor.ID,
		Name:            doctor.Name,
		NameInitials:    doctor.NameInitials,
		Photo:           doctor.Photo,
		Introduction:    doctor.Introduction,
		Specialties:     nonNil(doctor.Specialties),
		ExperienceYears: doctor.ExperienceYears,
		Fee:             doctor.Fee,
		FeeDisplay:      doctor.FeeDisplay,
		VideoConsult:    doctor.VideoConsult,
		InClinic:        doctor.InClinic,
		Languages:       doctor.Languages,
	}

	if doctor.Clinic != nil {
		resp.Clinic = &dto.ClinicResponse{
			Name:         doctor.Clinic.Name,
			Locality:     doctor.Clinic.Locality,
			City:         doctor.Clinic.City,
			AddressLine1: doctor.Clinic.AddressLine1,
			Location:     doctor.Clinic.Location,
			LogoURL:      doctor.Clinic.LogoURL,
		}
	}

	return resp
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i, doctor := range doctors {
		responses[i] = DoctorToResponse(doctor)
	}
	return responses
}

func DoctorsToSuggestions(doctors []entity.Doctor) []dto.SuggestionResponse {
	suggestions := make([]dto.SuggestionResponse, len(doctors))
	for i, doctor := range doctors {
		suggestions[i] = dto.SuggestionResponse{
			ID:           doctor.ID,
			Name:         doctor.Name,
			NameInitials: doctor.NameInitials,
			Photo:        doctor.Photo,
			Specialties:  nonNil(doctor.Specialties),
		}
	}
	return suggestions
}

func FilterStateToResponse(state entity.FilterState) dto.FilterStateResponse {
	return dto.FilterStateResponse{
		Search:      state.Search,
		Mode:        string(state.Mode),
		Specialties: state.Specialties,
		Sort:        string(state.Sort),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
