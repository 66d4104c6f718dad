// Package department holds the fixed clinical department catalog: each unit's
// consultation price, display color, specialties, and doctor roster.
// The catalog is static configuration, not a mutable entity.
package department

// Department describes a single clinical unit.
type Department struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	ConsultationPrice float64  `json:"consultation_price"`
	AvailableDoctors  []string `json:"available_doctors"`
	Specialties       []string `json:"specialties"`
	Color             string   `json:"color"`
}

var catalog = []Department{
	{
		ID:                "cardiology",
		Name:              "Cardiologie",
		ConsultationPrice: 80,
		AvailableDoctors:  []string{"dr.martin", "dr.dupont"},
		Specialties:       []string{"Cardiologie interventionnelle", "Électrophysiologie", "Insuffisance cardiaque"},
		Color:             "#E53E3E",
	},
	{
		ID:                "neurology",
		Name:              "Neurologie",
		ConsultationPrice: 90,
		AvailableDoctors:  []string{"dr.bernard", "dr.rousseau"},
		Specialties:       []string{"Neurologie générale", "Épilepsie", "Sclérose en plaques"},
		Color:             "#9F7AEA",
	},
	{
		ID:                "pediatrics",
		Name:              "Pédiatrie",
		ConsultationPrice: 60,
		AvailableDoctors:  []string{"dr.laurent", "dr.moreau"},
		Specialties:       []string{"Pédiatrie générale", "Néonatologie", "Pédiatrie d'urgence"},
		Color:             "#38B2AC",
	},
	{
		ID:                "maternity",
		Name:              "Maternité",
		ConsultationPrice: 70,
		AvailableDoctors:  []string{"dr.dubois", "dr.simon"},
		Specialties:       []string{"Obstétrique", "Gynécologie", "Médecine fœtale"},
		Color:             "#ED64A6",
	},
	{
		ID:                "orthopedics",
		Name:              "Orthopédie",
		ConsultationPrice: 75,
		AvailableDoctors:  []string{"dr.garcia", "dr.petit"},
		Specialties:       []string{"Chirurgie orthopédique", "Traumatologie", "Chirurgie de la main"},
		Color:             "#F56500",
	},
	{
		ID:                "dermatology",
		Name:              "Dermatologie",
		ConsultationPrice: 65,
		AvailableDoctors:  []string{"dr.roux", "dr.blanc"},
		Specialties:       []string{"Dermatologie générale", "Dermatologie esthétique", "Oncologie cutanée"},
		Color:             "#38A169",
	},
	{
		ID:                "emergency",
		Name:              "Urgences",
		ConsultationPrice: 120,
		AvailableDoctors:  []string{"dr.urgence1", "dr.urgence2"},
		Specialties:       []string{"Médecine d'urgence", "Réanimation", "SAMU"},
		Color:             "#E53E3E",
	},
	{
		ID:                "psychiatry",
		Name:              "Psychiatrie",
		ConsultationPrice: 85,
		AvailableDoctors:  []string{"dr.mental", "dr.psycho"},
		Specialties:       []string{"Psychiatrie générale", "Pédopsychiatrie", "Addictologie"},
		Color:             "#4299E1",
	},
	{
		ID:                "ophthalmology",
		Name:              "Ophtalmologie",
		ConsultationPrice: 70,
		AvailableDoctors:  []string{"dr.vision", "dr.oeil"},
		Specialties:       []string{"Ophtalmologie générale", "Chirurgie rétinienne", "Glaucome"},
		Color:             "#48BB78",
	},
}

// List returns a copy of the full catalog.
func List() []Department {
	out := make([]Department, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the department with the given id.
func Lookup(id string) (Department, bool) {
	for _, d := range catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Department{}, false
}

// Name returns the display name for a department id, falling back to the id
// itself for unknown departments.
func Name(id string) string {
	if d, ok := Lookup(id); ok {
		return d.Name
	}
	return id
}
