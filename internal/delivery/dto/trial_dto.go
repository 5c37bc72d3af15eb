package dto

type TrialResponse struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Status              string   `json:"status"`
	Location            string   `json:"location"`
	StartDate           string   `json:"start_date"`
	EndDate             string   `json:"end_date"`
	EligibilityCriteria []string `json:"eligibility_criteria"`
	Compensation        string   `json:"compensation"`
	SponsoredBy         string   `json:"sponsored_by"`
	ContactEmail        string   `json:"contact_email"`
	ContactPhone        string   `json:"contact_phone"`
	EnrolledCount       int      `json:"enrolled_count"`
}

type TrialListResponse struct {
	Trials []TrialResponse `json:"trials"`
	Total  int             `json:"total"`
}

type EnrolledPatientsResponse struct {
	TrialID       string   `json:"trial_id"`
	PatientEmails []string `json:"patient_emails"`
	Total         int      `json:"total"`
}
