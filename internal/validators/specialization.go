package validators

// Specializations providers may register under.
var Specializations = []string{
	"Cardiology",
	"Dermatology",
	"Endocrinology",
	"Family Medicine",
	"Gastroenterology",
	"General Surgery",
	"Internal Medicine",
	"Neurology",
	"Obstetrics and Gynecology",
	"Oncology",
	"Ophthalmology",
	"Orthopedics",
	"Pediatrics",
	"Psychiatry",
	"Pulmonology",
	"Radiology",
	"Urology",
}

func IsSpecializationValid(s string) bool {
	for _, v := range Specializations {
		if v == s {
			return true
		}
	}
	return false
}
