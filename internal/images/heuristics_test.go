package images

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		topic    string
		want     float64
	}{
		{"base score", "photo_1_1.png", "", 0.5},
		{"one keyword", "network diagram_1_1.png", "", 0.7},
		{"two keywords", "process model_3_2.png", "", 0.9},
		{"context word", "sorting_1_1.png", "Sorting algorithms explained", 0.6},
		{"short context words ignored", "the map_1_1.png", "the map of it", 0.5},
		{"capped at one", "diagram chart graph example_1_1.png", "", 1.0},
		{"case insensitive", "DIAGRAM_1_1.PNG", "", 0.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.filename, tt.topic))
		})
	}
}

func TestScoreBounds(t *testing.T) {
	names := []string{"", "x.png", "diagram diagram chart graph model process example.png"}
	topic := "diagram chart graph model process example intro graphs"
	for _, n := range names {
		s := Score(n, topic)
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}

func TestPlacement(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"course introduction_1_1.png", "overview"},
		{"class diagram_2_1.png", "concept_explanation"},
		{"worked sample_3_1.png", "examples"},
		{"important notes_4_1.png", "key_takeaways"},
		{"quiz_5_1.png", "practice_exercises"},
		{"photo_6_1.png", "concept_explanation"},
		// overview precedes key_takeaways for "summary"
		{"summary_7_1.png", "overview"},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, Placement(tt.filename))
		})
	}
}

func TestDescription(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"Diagram_1_1.png", "A diagram illustrating key concepts"},
		{"flowchart_2_1.png", "A chart showing data relationships"},
		{"network_topology_3_1.png", "A network diagram"},
		{"org_hierarchy_1_2.png", "A hierarchical structure"},
		{"real_world_case_4_1.png", "A real-world example"},
		{"canvas_bitmap_1_1.png", "An educational illustration"},
		{"photo_1_1.png", "An educational illustration"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, Description(tt.filename))
		})
	}
}

func TestAltText(t *testing.T) {
	assert.Equal(t, "Educational illustration: Network Diagram 1 2", AltText("network-diagram_1_2.png"))
	assert.Equal(t, "Educational illustration: Élan Vital", AltText("/tmp/élan_VITAL.jpg"))
}

func TestPageName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"first three lines", "Chapter 1\n\nIntro: Graphs?\nNodes/Edges\nignored", "Chapter 1_Intro Graphs_NodesEdges"},
		{"empty text", "", "page"},
		{"only invalid characters", `<>:"/\|?*`, "page"},
		{"parent segments collapse", "a..b", "a.b"},
		{"length capped", "abcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwxyzabcdef", "abcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pageName(tt.text))
		})
	}
}

func TestIsSupportedImage(t *testing.T) {
	for _, n := range []string{"a.jpg", "a.JPEG", "a.png", "a.gif", "a.bmp", "a.webp"} {
		assert.True(t, isSupportedImage(n), n)
	}
	for _, n := range []string{"a.tif", "a.svg", "a", "a.pdf"} {
		assert.False(t, isSupportedImage(n), n)
	}
}
