package models

import "fmt"

// VideoInfo is the metadata resolved for a job's source.
type VideoInfo struct {
	Title     string  `json:"title"`
	Duration  float64 `json:"duration"`
	Uploader  string  `json:"uploader"`
	Thumbnail string  `json:"thumbnail,omitempty"`
	ViewCount int64   `json:"view_count"`
	URL       string  `json:"url,omitempty"`
}

// DurationLabel renders the duration as m:ss, minutes unbounded.
func (v VideoInfo) DurationLabel() string {
	total := int(v.Duration)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
