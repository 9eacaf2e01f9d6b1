package entity

import "github.com/shopspring/decimal"

// Doctor is a directory record after ingestion. Fee and ExperienceYears are
// always numeric here, whatever shape the source used.
type Doctor struct {
	ID              string
	Name            string
	NameInitials    string
	Photo           string
	Introduction    string
	Specialties     []string
	ExperienceYears int
	Fee             decimal.Decimal
	FeeDisplay      string
	VideoConsult    bool
	InClinic        bool
	Languages       []string
	Clinic          *Clinic
}

type Clinic struct {
	Name         string
	Locality     string
	City         string
	AddressLine1 string
	Location     string
	LogoURL      string
}

// HasSpecialty reports whether name is one of the doctor's specialties.
func (d Doctor) HasSpecialty(name string) bool {
	for _, s := range d.Specialties {
		if s == name {
			return true
		}
	}
	return false
}

// Offers reports whether the doctor can be consulted in the given mode.
// The empty mode is offered by everyone.
func (d Doctor) Offers(mode ConsultationMode) bool {
	switch mode {
	case ModeVideoConsult:
		return d.VideoConsult
	case ModeInClinic:
		return d.InClinic
	case ModeNone:
		return true
	}
	return false
}
