package transcriber

import (
	"fmt"
	"path/filepath"
	"regexp"
)

var reModelSize = regexp.MustCompile(`^[a-z0-9][a-z0-9.\-]*$`)

var modelAliases = map[string]string{
	"turbo": "large-v3-turbo",
	"large": "large-v3",
}

// ValidModelSize reports whether size is safe to embed in a model file name.
func ValidModelSize(size string) bool {
	return reModelSize.MatchString(size)
}

// modelPath maps a model size such as "base" or "turbo" to its ggml file.
func (t *implTranscriber) modelPath(size string) (string, error) {
	if size == "" {
		size = t.whisper.DefaultModel
	}
	if !ValidModelSize(size) {
		return "", fmt.Errorf("invalid model size %q", size)
	}
	if alias, ok := modelAliases[size]; ok {
		size = alias
	}
	return filepath.Join(t.whisper.ModelsDir, "ggml-"+size+".bin"), nil
}
