package entity

// SpecialtyCatalog is the fixed list of specialties offered as filters,
// in display order.
var SpecialtyCatalog = []string{
	"General Physician",
	"Dentist",
	"Dermatologist",
	"Paediatrician",
	"Gynaecologist",
	"ENT",
	"Diabetologist",
	"Cardiologist",
	"Physiotherapist",
	"Endocrinologist",
	"Orthopaedic",
	"Ophthalmologist",
	"Gastroenterologist",
	"Pulmonologist",
	"Psychiatrist",
	"Urologist",
	"Dietitian-Nutritionist",
	"Psychologist",
	"Sexologist",
	"Nephrologist",
	"Neurologist",
	"Oncologist",
	"Ayurveda",
	"Homeopath",
}
