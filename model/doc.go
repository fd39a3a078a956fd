// Package model provides the intermediate representation shared by the
// docdown packages.
//
// A Word document is read into an ordered list of [Paragraph] values, each
// holding the [Run] spans it was built from, plus a relationship table of
// [Relationship] entries that carry embedded binary parts such as images.
//
// # Translation types
//
// During conversion each paragraph is turned into a [ClassifiedParagraph]:
//
//   - [KindEmpty] - no text and no resolvable image
//   - [KindNormal] - regular text, possibly with inline images
//   - [KindHeading] - heading with a level between 1 and 6
//   - [KindCode] - one line of a fenced code block
//   - [KindImageOnly] - a paragraph holding exactly one image
//
// The content of a classified paragraph is an ordered list of [ContentItem]
// values, each either text or a rendered Markdown image link.
//
// Extracted images are described by [ImageReference], which maps a
// relationship id to the relative path written into the Markdown.
package model
