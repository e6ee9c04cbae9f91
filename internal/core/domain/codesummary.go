package domain

// CodeSummary is the bounded structural outline of a code base, produced
// once per request and shared read-only across drafting tasks.
type CodeSummary struct {
	// Text is the rendered outline, guaranteed not to exceed the budget
	// the summariser was given.
	Text string

	// Truncated is true when the budget cut off one or more files.
	Truncated bool

	// FilesIncluded is the number of files represented in Text.
	FilesIncluded int

	// FilesTotal is the number of files considered.
	FilesTotal int
}
