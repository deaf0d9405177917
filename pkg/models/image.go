package models

// SelectedImage is an extracted PDF image chosen for a study document.
type SelectedImage struct {
	Path        string  `json:"path"`
	Filename    string  `json:"filename"`
	Score       float64 `json:"relevance_score"`
	Placement   string  `json:"suggested_placement"`
	Description string  `json:"description"`
	AltText     string  `json:"alt_text"`
}
