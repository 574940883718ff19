package dto

type DoctorRequest struct {
	Name       string  `json:"name"`
	Surname    string  `json:"surname"`
	Title      string  `json:"title"`
	Specialty  string  `json:"specialty"`
	University string  `json:"university"`
	Experience string  `json:"experience"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email"`
	ImageURL   string  `json:"imageUrl"`
	Bio        string  `json:"bio"`
	Rating     float64 `json:"rating"`
	Patients   int     `json:"patients"`
	// Either a comma-joined string from the admin form or a JSON array.
	Languages      []string                 `json:"languages"`
	AvailableHours map[string]WorkingWindow `json:"availableHours"`
}

// WorkingWindow is one weekday's bookable range, "09:00".."18:00".
type WorkingWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type DoctorListQuery struct {
	Specialty string `query:"specialty"`
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
}
