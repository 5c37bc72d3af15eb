package dto

// Request DTOs

type SubmitFeedbackRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

// Response DTOs

type ResourceResponse struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Type            string   `json:"type"`
	Content         string   `json:"content"`
	Summary         string   `json:"summary"`
	Tags            []string `json:"tags"`
	DatePublished   string   `json:"date_published"`
	Author          string   `json:"author,omitempty"`
	ViewCount       int      `json:"view_count"`
	RelatedTrialIDs []string `json:"related_trial_ids"`
}

type ResourceListResponse struct {
	Resources []ResourceResponse `json:"resources"`
	Total     int                `json:"total"`
}

type FeedbackResponse struct {
	ID            string `json:"id"`
	ResourceID    string `json:"resource_id"`
	PatientEmail  string `json:"patient_email"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment,omitempty"`
	DateSubmitted string `json:"date_submitted"`
}

type FeedbackListResponse struct {
	Feedback []FeedbackResponse `json:"feedback"`
	Total    int                `json:"total"`
}

type RatingResponse struct {
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int     `json:"total_ratings"`
}
