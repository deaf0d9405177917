package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSections(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    []string
		wantErr bool
	}{
		{
			name: "defaults",
			in:   nil,
			want: []string{"overview", "learning_outcomes", "concept_explanation", "examples", "key_takeaways", "practice_exercises", "quiz_questions"},
		},
		{
			name: "dedupe keeps first occurrence order",
			in:   []string{"quiz_questions", "examples", "quiz_questions"},
			want: []string{"quiz_questions", "examples"},
		},
		{
			name: "explicit learning outcomes are not duplicated",
			in:   []string{"learning_outcomes", "overview"},
			want: []string{"learning_outcomes", "overview"},
		},
		{
			name:    "unknown section",
			in:      []string{"overview", "bibliography"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeSections(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDurationLabel(t *testing.T) {
	assert.Equal(t, "0:00", VideoInfo{}.DurationLabel())
	assert.Equal(t, "1:05", VideoInfo{Duration: 65.9}.DurationLabel())
	assert.Equal(t, "75:00", VideoInfo{Duration: 4500}.DurationLabel())
}
