package entity

// CVData is the structured form of a résumé.
//
// Skills are case-normalized and de-duplicated, keeping the first-seen casing
// and order of first appearance. Dates are normalized strings ("2006-01-02",
// "2006-01", "2006" or the literal "present"); resolving "present" against
// the clock is the validator's job, not the extractor's.
type CVData struct {
	FullName       string           `json:"full_name,omitempty"`
	Email          string           `json:"email,omitempty"`
	Phone          string           `json:"phone,omitempty"`
	Location       string           `json:"location,omitempty"`
	LinkedIn       string           `json:"linkedin,omitempty"`
	Summary        string           `json:"summary,omitempty"`
	Experience     []WorkExperience `json:"experience,omitempty"`
	Education      []Education      `json:"education,omitempty"`
	Skills         []string         `json:"skills,omitempty"`
	Languages      []string         `json:"languages,omitempty"`
	Certifications []string         `json:"certifications,omitempty"`
	RawText        string           `json:"raw_text,omitempty"`
}

// WorkExperience is a single employment entry.
// Invariant: IsCurrent implies EndDate is empty.
type WorkExperience struct {
	Company     string `json:"company,omitempty"`
	Title       string `json:"title,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	IsCurrent   bool   `json:"is_current"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}

// Education is a single study entry.
type Education struct {
	Institution  string `json:"institution,omitempty"`
	Degree       string `json:"degree,omitempty"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	IsCurrent    bool   `json:"is_current"`
}
