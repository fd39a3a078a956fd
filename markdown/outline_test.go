package markdown

import "testing"

func TestParseOutline(t *testing.T) {
	md := `# Title
Intro text.

## Setup

![Diagram](./images/doc_image_1.png)

` + "```" + `
# not a heading
![not an image](x.png)
` + "```" + `

### Detail
See ![inline](./images/doc_image_2.png) here.
## Next`

	o := ParseOutline([]byte(md))

	if o.Headings != [6]int{1, 2, 1, 0, 0, 0} {
		t.Errorf("Headings = %v", o.Headings)
	}
	if o.HeadingCount() != 4 {
		t.Errorf("HeadingCount() = %d, want 4", o.HeadingCount())
	}
	if o.CodeBlocks != 1 {
		t.Errorf("CodeBlocks = %d, want 1", o.CodeBlocks)
	}
	if o.Images != 2 {
		t.Errorf("Images = %d, want 2", o.Images)
	}
	if o.Paragraphs != 3 {
		t.Errorf("Paragraphs = %d, want 3", o.Paragraphs)
	}
}

func TestParseOutline_Empty(t *testing.T) {
	if o := ParseOutline(nil); o != (Outline{}) {
		t.Errorf("ParseOutline(nil) = %+v, want zero", o)
	}
}
