package layout

import (
	"strconv"
	"strings"

	"github.com/tsawler/docdown/model"
)

const (
	headingStylePrefix = "Heading"
	titleStyle         = "Title"

	// MaxHeadingLevel is the deepest heading Markdown can express.
	MaxHeadingLevel = 6
)

// fontSizeLevels maps minimum font sizes in points to heading levels.
var fontSizeLevels = []struct {
	minPoints int
	level     int
}{
	{20, 1},
	{16, 2},
	{14, 3},
}

// boldHeadingLevel is the level given to paragraphs that are only bold.
const boldHeadingLevel = 3

// headingRule inspects a paragraph. matched reports whether the rule
// decided the outcome; level 0 with matched true stops the chain.
type headingRule func(p model.Paragraph) (level int, matched bool)

var headingRules = []headingRule{
	headingStyleRule,
	titleStyleRule,
	runFormattingRule,
}

// HeadingLevel returns the heading level of a paragraph, 1-6, or 0 when the
// paragraph is not a heading.
func HeadingLevel(p model.Paragraph) int {
	for _, rule := range headingRules {
		if level, ok := rule(p); ok {
			return clampLevel(level)
		}
	}
	return 0
}

// headingStyleRule reads the level from "Heading N" style names.
func headingStyleRule(p model.Paragraph) (int, bool) {
	if !strings.HasPrefix(p.StyleName, headingStylePrefix) {
		return 0, false
	}
	level, ok := trailingNumber(p.StyleName)
	if !ok {
		return 0, true
	}
	return level, true
}

func titleStyleRule(p model.Paragraph) (int, bool) {
	if p.StyleName == titleStyle {
		return 1, true
	}
	return 0, false
}

// runFormattingRule inspects the first run that carries explicit properties.
func runFormattingRule(p model.Paragraph) (int, bool) {
	run, ok := firstFormattedRun(p)
	if !ok {
		return 0, false
	}

	halfPoints, declared, err := run.HalfPoints()
	if err != nil {
		return 0, true
	}
	if declared {
		points := halfPoints / 2
		for _, fl := range fontSizeLevels {
			if points >= fl.minPoints {
				return fl.level, true
			}
		}
	}

	if run.IsBold() {
		return boldHeadingLevel, true
	}
	return 0, false
}

func firstFormattedRun(p model.Paragraph) (model.Run, bool) {
	for _, run := range p.Runs {
		if run.HasProperties {
			return run, true
		}
	}
	return model.Run{}, false
}

// trailingNumber parses the digits ending the last whitespace-separated
// token of s ("Heading 2" and "Heading2" both give 2).
func trailingNumber(s string) (int, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, false
	}
	last := fields[len(fields)-1]

	i := len(last)
	for i > 0 && last[i-1] >= '0' && last[i-1] <= '9' {
		i--
	}
	if i == len(last) {
		return 0, false
	}

	n, err := strconv.Atoi(last[i:])
	if err != nil {
		return 0, false
	}
	return n, true
}

func clampLevel(level int) int {
	switch {
	case level < 1:
		return 0
	case level > MaxHeadingLevel:
		return MaxHeadingLevel
	default:
		return level
	}
}
