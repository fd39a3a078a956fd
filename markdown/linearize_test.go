package markdown

import (
	"reflect"
	"testing"

	"github.com/tsawler/docdown/model"
)

var testRefs = map[string]model.ImageReference{
	"rId5": {RelID: "rId5", Seq: 1, Path: "./images/doc_image_1.png"},
	"rId6": {RelID: "rId6", Seq: 2, Path: "./images/doc_image_2.gif", RecognizedText: "Sales chart"},
}

func TestLinearize(t *testing.T) {
	tests := []struct {
		name string
		runs []model.Run
		want []model.ContentItem
	}{
		{
			name: "no runs",
			runs: nil,
			want: nil,
		},
		{
			name: "text keeps surrounding spaces",
			runs: []model.Run{{Text: "  Hello "}, {Text: "world"}},
			want: []model.ContentItem{model.Text("  Hello "), model.Text("world")},
		},
		{
			name: "whitespace runs dropped",
			runs: []model.Run{{Text: "a"}, {Text: "   "}, {Text: "\t"}, {Text: "b"}},
			want: []model.ContentItem{model.Text("a"), model.Text("b")},
		},
		{
			name: "image with description",
			runs: []model.Run{{Drawings: []model.Drawing{{RelID: "rId5", Description: "A diagram"}}}},
			want: []model.ContentItem{model.Image("A diagram", "./images/doc_image_1.png")},
		},
		{
			name: "image replaces run text",
			runs: []model.Run{{Text: "caption", Drawings: []model.Drawing{{RelID: "rId5", Description: "x"}}}},
			want: []model.ContentItem{model.Image("x", "./images/doc_image_1.png")},
		},
		{
			name: "unresolved image keeps text",
			runs: []model.Run{{Text: "caption", Drawings: []model.Drawing{{RelID: "rId99"}}}},
			want: []model.ContentItem{model.Text("caption")},
		},
		{
			name: "default alt text",
			runs: []model.Run{{Drawings: []model.Drawing{{RelID: "rId5"}}}},
			want: []model.ContentItem{model.Image("Image", "./images/doc_image_1.png")},
		},
		{
			name: "declared empty description",
			runs: []model.Run{{Drawings: []model.Drawing{{RelID: "rId6", HasDescription: true}}}},
			want: []model.ContentItem{model.Image("", "./images/doc_image_2.gif")},
		},
		{
			name: "recognized text fills missing description",
			runs: []model.Run{{Drawings: []model.Drawing{{RelID: "rId6"}}}},
			want: []model.ContentItem{model.Image("Sales chart", "./images/doc_image_2.gif")},
		},
		{
			name: "all resolvable drawings in a run",
			runs: []model.Run{{Drawings: []model.Drawing{{RelID: "rId5", Description: "one"}, {RelID: "rId99"}, {RelID: "rId6", Description: "two"}}}},
			want: []model.ContentItem{
				model.Image("one", "./images/doc_image_1.png"),
				model.Image("two", "./images/doc_image_2.gif"),
			},
		},
		{
			name: "order preserved",
			runs: []model.Run{{Text: "See "}, {Drawings: []model.Drawing{{RelID: "rId5", Description: "fig"}}}, {Text: " above"}},
			want: []model.ContentItem{
				model.Text("See "),
				model.Image("fig", "./images/doc_image_1.png"),
				model.Text(" above"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Linearize(model.Paragraph{StyleName: "Normal", Runs: tt.runs}, testRefs)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Linearize() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestAltText(t *testing.T) {
	declared := func(descr string) model.Drawing {
		return model.Drawing{RelID: "rId1", Description: descr, HasDescription: true}
	}

	tests := []struct {
		name       string
		drawing    model.Drawing
		recognized string
		want       string
	}{
		{"plain", declared("Chart"), "", "Chart"},
		{"newlines", declared("  line one\nline two \n"), "", "line one line two"},
		{"crlf", declared("a\r\nb"), "", "a b"},
		{"absent", model.Drawing{RelID: "rId1"}, "", "Image"},
		{"declared empty", declared(""), "", ""},
		{"declared blank", declared("   "), "", ""},
		{"declared empty ignores recognized", declared(""), "From OCR", ""},
		{"absent uses recognized", model.Drawing{RelID: "rId1"}, "From OCR", "From OCR"},
		{"absent blank recognized", model.Drawing{RelID: "rId1"}, "  ", "Image"},
		{"description wins", declared("Given"), "From OCR", "Given"},
		{"nfc", declared("Cafe\u0301"), "", "Caf\u00e9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AltText(tt.drawing, tt.recognized); got != tt.want {
				t.Errorf("AltText(%+v, %q) = %q, want %q", tt.drawing, tt.recognized, got, tt.want)
			}
		})
	}
}
