package types

type NewsItem struct {
	ID           string `json:"id"`
	ProjectName  string `json:"project_name"`
	ProjectImage string `json:"project_image"`
	UserTitle    string `json:"user_title"`
	Description  string `json:"description"`
	CreatedAt    string `json:"created_at"`
}
