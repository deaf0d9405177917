package media

import (
	"errors"
	"strings"
)

var ErrUnsupportedURL = errors.New("unsupported video URL")

// CheckURL reports ErrUnsupportedURL unless url contains one of the
// allowed host substrings.
func CheckURL(url string, allowed []string) error {
	if strings.TrimSpace(url) == "" {
		return ErrUnsupportedURL
	}
	lower := strings.ToLower(url)
	for _, d := range allowed {
		if d != "" && strings.Contains(lower, strings.ToLower(d)) {
			return nil
		}
	}
	return ErrUnsupportedURL
}
