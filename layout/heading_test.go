package layout

import (
	"testing"

	"github.com/tsawler/docdown/model"
)

func para(style string, runs ...model.Run) model.Paragraph {
	return model.Paragraph{StyleName: style, Runs: runs}
}

func TestHeadingLevel(t *testing.T) {
	bold := model.Run{Text: "x", HasProperties: true, BoldSet: true}

	tests := []struct {
		name string
		p    model.Paragraph
		want int
	}{
		{"heading 1 style", para("Heading 1"), 1},
		{"heading 2 style", para("Heading 2"), 2},
		{"heading 6 style", para("Heading 6"), 6},
		{"heading 9 clamped", para("Heading 9"), 6},
		{"heading id without space", para("Heading3"), 3},
		{"heading without number", para("Heading", bold), 0},
		{"heading 0", para("Heading 0", bold), 0},
		{"title style", para("Title"), 1},
		{"subtitle not title", para("Subtitle"), 0},
		{"normal plain", para("Normal", model.Run{Text: "x"}), 0},
		{"no runs", para("Normal"), 0},
		{"bold only", para("Normal", bold), 3},
		{"bold off", para("Normal", model.Run{HasProperties: true, BoldSet: true, Bold: "0"}), 0},
		{"size 40 half-points", para("Normal", model.Run{HasProperties: true, FontSize: "40"}), 1},
		{"size 39 half-points", para("Normal", model.Run{HasProperties: true, FontSize: "39"}), 2},
		{"size 32 half-points", para("Normal", model.Run{HasProperties: true, FontSize: "32"}), 2},
		{"size 28 half-points", para("Normal", model.Run{HasProperties: true, FontSize: "28"}), 3},
		{"size 24 half-points", para("Normal", model.Run{HasProperties: true, FontSize: "24"}), 0},
		{"small but bold", para("Normal", model.Run{HasProperties: true, FontSize: "22", BoldSet: true}), 3},
		{"malformed size stops chain", para("Normal", model.Run{HasProperties: true, FontSize: "big", BoldSet: true}), 0},
		{"size without value stops chain", para("Normal", model.Run{HasProperties: true, FontSizeSet: true, BoldSet: true}), 0},
		{
			"first formatted run decides",
			para("Normal",
				model.Run{Text: "plain"},
				model.Run{Text: "small", HasProperties: true, FontSize: "20"},
				model.Run{Text: "huge", HasProperties: true, FontSize: "60"},
			),
			0,
		},
		{
			"properties without size or bold",
			para("Normal", model.Run{HasProperties: true, FontName: "Arial"}),
			0,
		},
		{"style beats formatting", para("Heading 2", model.Run{HasProperties: true, FontSize: "48"}), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HeadingLevel(tt.p); got != tt.want {
				t.Errorf("HeadingLevel() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHeadingLevel_Idempotent(t *testing.T) {
	p := para("Normal", model.Run{Text: "Intro", HasProperties: true, FontSize: "32", BoldSet: true})
	first := HeadingLevel(p)
	for i := 0; i < 3; i++ {
		if got := HeadingLevel(p); got != first {
			t.Fatalf("HeadingLevel() changed between calls: %d then %d", first, got)
		}
	}
}

func TestTrailingNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"Heading 1", 1, true},
		{"Heading 12", 12, true},
		{"Heading2", 2, true},
		{"Heading", 0, false},
		{"", 0, false},
		{"Heading 2a", 0, false},
	}
	for _, tt := range tests {
		got, ok := trailingNumber(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("trailingNumber(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
