package docdown

import "errors"

var (
	// ErrDocumentEmpty is returned for a zero-byte input file.
	ErrDocumentEmpty = errors.New("docdown: document is empty")

	// ErrDocumentUnreadable is returned when the archive cannot be opened or
	// parsed. The underlying cause is wrapped alongside it.
	ErrDocumentUnreadable = errors.New("docdown: document is unreadable")

	// ErrNotWordDocument is returned when a file with a Word extension does
	// not start with the ZIP signature.
	ErrNotWordDocument = errors.New("docdown: not a valid Word document")

	// ErrLegacyWordDocument is returned alongside ErrNotWordDocument when the
	// file is a binary Word 97-2003 document.
	ErrLegacyWordDocument = errors.New("docdown: legacy binary Word document")

	// ErrNoSource is returned when no source path was given.
	ErrNoSource = errors.New("docdown: no source specified")
)
