package docx

import (
	"encoding/xml"
	"strings"
)

// documentXML represents the structure of word/document.xml
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    *bodyXML `xml:"body"`
}

// bodyXML represents the document body.
// Only direct <w:p> children are collected; paragraphs nested in tables or
// content controls are not part of the body paragraph flow.
type bodyXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

// paragraphXML represents a paragraph element (<w:p>).
type paragraphXML struct {
	XMLName    xml.Name          `xml:"p"`
	Properties paragraphPropsXML `xml:"pPr"`
	Runs       []runXML          `xml:"r"`
}

// paragraphPropsXML represents paragraph properties (<w:pPr>).
type paragraphPropsXML struct {
	Style styleRefXML `xml:"pStyle"`
}

// styleRefXML represents a style reference.
type styleRefXML struct {
	Val string `xml:"val,attr"`
}

// runXML represents a text run (<w:r>).
// It is decoded by hand so text, tabs and breaks keep their document order.
type runXML struct {
	Properties *runPropsXML
	Text       string
	Drawings   []drawingXML
}

// runPropsXML represents run properties (<w:rPr>).
// Pointer fields are nil when the property is not declared.
type runPropsXML struct {
	Bold     *boolXML `xml:"b"`
	FontSize *sizeXML `xml:"sz"`
	Font     *fontXML `xml:"rFonts"`
}

// boolXML represents a boolean toggle property.
type boolXML struct {
	Val string `xml:"val,attr"`
}

// sizeXML represents font size (in half-points).
type sizeXML struct {
	Val string `xml:"val,attr"`
}

// fontXML represents font settings.
type fontXML struct {
	ASCII    string `xml:"ascii,attr"`
	HAnsi    string `xml:"hAnsi,attr"`
	CS       string `xml:"cs,attr"`
	EastAsia string `xml:"eastAsia,attr"`
}

// breakXML represents a break (line or page).
type breakXML struct {
	Type string `xml:"type,attr"` // page, column, textWrapping
}

// drawingXML represents an embedded drawing/image.
type drawingXML struct {
	Inline *inlineXML `xml:"inline"`
	Anchor *inlineXML `xml:"anchor"`
}

// inlineXML represents an inline or anchored picture.
// Blip is the first <a:blip> at any depth, so pictures inside group shapes
// and drawing canvases are found too.
type inlineXML struct {
	DocPr docPrXML
	Blip  *blipXML
}

// docPrXML represents document properties of an image.
type docPrXML struct {
	ID    string  `xml:"id,attr"`
	Name  string  `xml:"name,attr"`
	Descr *string `xml:"descr,attr"` // Alt text; nil when absent
}

// blipXML represents an image reference.
type blipXML struct {
	Embed string `xml:"embed,attr"` // Relationship ID
}

// alternateContentXML represents mc:AlternateContent wrapping a drawing.
type alternateContentXML struct {
	Choice []struct {
		Drawings []drawingXML `xml:"drawing"`
	} `xml:"Choice"`
}

// UnmarshalXML decodes the direct children of <w:r> in order.
func (r *runXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var text strings.Builder

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				props := &runPropsXML{}
				if err := d.DecodeElement(props, &t); err != nil {
					return err
				}
				r.Properties = props
			case "t":
				var s string
				if err := d.DecodeElement(&s, &t); err != nil {
					return err
				}
				text.WriteString(s)
			case "tab", "ptab":
				text.WriteByte('\t')
				if err := d.Skip(); err != nil {
					return err
				}
			case "br":
				var br breakXML
				if err := d.DecodeElement(&br, &t); err != nil {
					return err
				}
				// Page and column breaks carry no text.
				if br.Type == "" || br.Type == "textWrapping" {
					text.WriteByte('\n')
				}
			case "cr":
				text.WriteByte('\n')
				if err := d.Skip(); err != nil {
					return err
				}
			case "noBreakHyphen":
				text.WriteByte('-')
				if err := d.Skip(); err != nil {
					return err
				}
			case "drawing":
				var dr drawingXML
				if err := d.DecodeElement(&dr, &t); err != nil {
					return err
				}
				r.Drawings = append(r.Drawings, dr)
			case "AlternateContent":
				var ac alternateContentXML
				if err := d.DecodeElement(&ac, &t); err != nil {
					return err
				}
				for _, choice := range ac.Choice {
					r.Drawings = append(r.Drawings, choice.Drawings...)
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			r.Text = text.String()
			return nil
		}
	}
}

// UnmarshalXML collects the drawing properties and the first blip below
// <wp:inline> or <wp:anchor>.
func (p *inlineXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	seenDocPr := false
	for depth := 1; depth > 0; {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Local == "docPr" && !seenDocPr:
				if err := d.DecodeElement(&p.DocPr, &t); err != nil {
					return err
				}
				seenDocPr = true
				continue
			case t.Name.Local == "blip" && p.Blip == nil:
				blip := &blipXML{}
				if err := d.DecodeElement(blip, &t); err != nil {
					return err
				}
				p.Blip = blip
				continue
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return nil
}

// picture returns the inline or anchored picture of a drawing.
func (dr drawingXML) picture() *inlineXML {
	if dr.Inline != nil {
		return dr.Inline
	}
	return dr.Anchor
}
