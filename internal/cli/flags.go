package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile        string
	Serve          bool
	Listen         string
	TargetLanguage string
	OutputFile     string
	ListLanguages  bool

	// Pipeline tuning flags
	MaxChunkChars int
	Concurrency   int

	// Provider flags
	GeminiModel string
	OpenAIModel string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Listen:         ":5000",
		TargetLanguage: "spanish",
		MaxChunkChars:  1000,
		Concurrency:    6,
		GeminiModel:    "gemini-1.5-flash",
		OpenAIModel:    "gpt-4o-mini",
	}
}
