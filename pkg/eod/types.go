package eod

// Task is one task record parsed from a report section line.
type Task struct {
	Description string `json:"description"`
	TimeSpent   string `json:"time_spent,omitempty"` // matched duration text verbatim, empty when absent
	RawLine     string `json:"raw_line"`
}

// Section is an extracted end-of-day report section. A Section always
// carries at least one task; a located header whose body yields no
// tasks is reported as no section at all.
type Section struct {
	Header     string `json:"section_header"`
	Tasks      []Task `json:"tasks"`
	RawContent string `json:"raw_content"`
}

// Config controls the matchers an Extractor compiles. Empty fields
// fall back to the package defaults.
type Config struct {
	// Keywords are literal section header keywords, matched
	// case-insensitively. The header keyword and its colon must sit
	// on the same line.
	Keywords []string

	// TimePatterns are regular expression fragments tried as a single
	// alternation. Order is part of the contract: when two patterns
	// match at the same position, the earlier one wins.
	TimePatterns []string

	// Terminators are literal markers that end a section body, such
	// as sign-offs and quoted-reply headers. The earliest occurrence
	// truncates the body.
	Terminators []string
}

// DefaultKeywords returns the stock section header keywords.
func DefaultKeywords() []string {
	return []string{"EOD", "End of Day", "Daily Summary", "Task Summary"}
}

// DefaultTimePatterns returns the stock duration patterns, most
// specific first.
func DefaultTimePatterns() []string {
	return []string{`\d+\s*min`, `\d+:\d+\s*hrs?`, `\d+\.\d+\s*hrs?`, `\d+\s*hrs?`}
}

// DefaultTerminators returns the stock section end markers.
func DefaultTerminators() []string {
	return []string{"Best regards", "Thanks", "Regards", "Sincerely", "\n\n\n", "From:", "Sent:"}
}

// DefaultConfig returns a Config populated with all defaults.
func DefaultConfig() Config {
	return Config{
		Keywords:     DefaultKeywords(),
		TimePatterns: DefaultTimePatterns(),
		Terminators:  DefaultTerminators(),
	}
}
