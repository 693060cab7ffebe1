package enums

// vaccineFamilyNames maps short generic-name codes to full descriptive
// names. Display-only: an unknown code is its own display value, never a
// validation failure.
var vaccineFamilyNames = map[string]string{
	"DTaP":               "Diphtheria, Tetanus, Pertussis",
	"DTaP-IPV":           "Diphtheria, Tetanus, Pertussis, Polio",
	"DTaP-IPV-Hib":       "Diphtheria, Tetanus, Pertussis, Polio, Haemophilus influenzae type b",
	"DTaP-IPV-Hib-Hep B": "Diphtheria, Tetanus, Pertussis, Polio, Haemophilus influenzae type b, Hepatitis B",
	"IPV":                "Polio",
	"Hep B":              "Hepatitis B",
	"Hep A":              "Hepatitis A",
	"RSV":                "Respiratory Syncytial Virus",
	"MMR":                "Measles, Mumps, Rubella",
	"MMRV":               "Measles, Mumps, Rubella, Varicella",
	"Hib":                "Haemophilus influenzae type b",
	"Tdap":               "Tetanus, Diphtheria, Pertussis",
	"Varicella":          "Chickenpox",
	"MCV4":               "Meningococcal",
	"MenB":               "Meningococcal B",
	"HPV":                "Human Papillomavirus",
	"PCV15":              "Pneumococcal",
	"RV":                 "Rotavirus",
}

// vaccineFamilyOrder fixes the display order of the reference table.
var vaccineFamilyOrder = []string{
	"DTaP", "DTaP-IPV", "DTaP-IPV-Hib", "DTaP-IPV-Hib-Hep B", "IPV",
	"Hep B", "Hep A", "RSV", "MMR", "MMRV", "Hib", "Tdap", "Varicella",
	"MCV4", "MenB", "HPV", "PCV15", "RV",
}

// VaccineFamilyName resolves a generic-name code to its descriptive name.
func VaccineFamilyName(code string) string {
	if name, ok := vaccineFamilyNames[code]; ok {
		return name
	}
	return code
}

// VaccineFamily pairs a generic-name code with its descriptive name.
type VaccineFamily struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// VaccineFamilies returns the reference table in its fixed display order.
func VaccineFamilies() []VaccineFamily {
	families := make([]VaccineFamily, 0, len(vaccineFamilyOrder))
	for _, code := range vaccineFamilyOrder {
		families = append(families, VaccineFamily{Code: code, Name: vaccineFamilyNames[code]})
	}
	return families
}
