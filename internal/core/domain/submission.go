package domain

// Submission is a user-contributed asset awaiting review.
// Submissions live in local storage only and are never merged into the index.
type Submission struct {
	ID          string   `json:"id"`
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Code        string   `json:"code" validate:"required"`
	Author      string   `json:"author" validate:"required"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}
