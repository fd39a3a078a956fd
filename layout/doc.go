// Package layout classifies Word paragraphs for Markdown output.
//
// Classification is a best-effort reading of style metadata and direct
// formatting, not a structural proof. Heading detection is an ordered chain
// of rules; the first rule that matches decides the level:
//
//  1. A style named "Heading N" gives level N (clamped to 6).
//  2. The "Title" style gives level 1.
//  3. The first run with explicit run properties is inspected: a font size
//     of at least 20pt, 16pt or 14pt gives level 1, 2 or 3; otherwise an
//     explicit bold flag gives level 3.
//  4. Anything else is not a heading (level 0).
//
// Formatting that cannot be read, such as a heading style without a number
// or a malformed font size, stops the chain with level 0.
//
// A paragraph that is not a heading is code when its style name starts with
// "code" (case-insensitive), or when every run declaring a font declares a
// monospace font (Consolas or Courier New) and at least one run declares one.
package layout
