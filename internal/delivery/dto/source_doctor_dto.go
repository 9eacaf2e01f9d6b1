package dto

import (
	"bytes"
	"encoding/json"
)

// SourceDoctor is one element of the remote directory's JSON array. It accepts
// every schema revision the endpoint has served: fees and experience as text or
// numbers, specialities as objects or plain strings, and consultation modes as
// boolean flags or a single enum field.
type SourceDoctor struct {
	ID                 FlexValue         `json:"id"`
	Name               string            `json:"name"`
	NameInitials       string            `json:"name_initials"`
	Photo              string            `json:"photo"`
	DoctorIntroduction string            `json:"doctor_introduction"`
	Specialities       []SourceSpecialty `json:"specialities"`
	Specialties        []SourceSpecialty `json:"specialties"`
	Fees               FlexValue         `json:"fees"`
	Experience         FlexValue         `json:"experience"`
	Languages          []string          `json:"languages"`
	Clinic             *SourceClinic     `json:"clinic"`
	VideoConsult       *bool             `json:"video_consult"`
	InClinic           *bool             `json:"in_clinic"`
	ConsultationMode   string            `json:"consultation_mode"`
}

type SourceClinic struct {
	Name    string `json:"name"`
	Address struct {
		Locality     string `json:"locality"`
		City         string `json:"city"`
		AddressLine1 string `json:"address_line1"`
		Location     string `json:"location"`
		LogoURL      string `json:"logo_url"`
	} `json:"address"`
}

// SourceSpecialty decodes either {"name": "Dentist"} or "Dentist".
type SourceSpecialty struct {
	Name string `json:"name"`
}

func (s *SourceSpecialty) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &s.Name)
	}
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	s.Name = obj.Name
	return nil
}

// FlexValue holds a JSON scalar that may be a string or a number. Text is the
// string contents or the number's literal.
type FlexValue struct {
	Text     string
	IsNumber bool
}

func (v *FlexValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		*v = FlexValue{}
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = FlexValue{Text: s}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*v = FlexValue{Text: n.String(), IsNumber: true}
	return nil
}

func (v FlexValue) IsZero() bool {
	return v.Text == ""
}
