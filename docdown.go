// Package docdown provides a fluent API for converting Word documents to
// Markdown.
//
// Basic usage:
//
//	result, err := docdown.Open("report.docx").OutputDir("out").ConvertFile(ctx)
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println("wrote", result.Output)
//
// Converting a directory tree, four documents at a time:
//
//	st, err := docdown.Open("docs").
//	    OutputDir("out").
//	    Concurrency(4).
//	    Convert(ctx)
//	if err != nil {
//	    // handle error
//	}
//	stats.WriteSummary(os.Stdout, st.Snapshot())
//
// Every document produces <name>.md next to an images directory holding the
// pictures it embeds. Headings, fenced code blocks and image links are
// inferred from paragraph styles and run formatting.
//
// For lower-level access, the docx, layout and markdown packages are also
// available.
package docdown

// Open returns a Converter for the given source file or directory.
//
// Example:
//
//	result, err := docdown.Open("notes.docx").ConvertFile(ctx)
func Open(source string) *Converter {
	return &Converter{
		source:  source,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	result := docdown.Must(docdown.Open("notes.docx").ConvertFile(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
