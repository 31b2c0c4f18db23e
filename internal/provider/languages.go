package provider

import "strings"

// Language describes one supported target language: the display name
// used in generative prompts and the ISO code used to select the
// opus-mt model.
type Language struct {
	Name string
	Code string
}

// languages is the fixed supported-language set, keyed case-insensitively.
var languages = map[string]Language{
	"spanish":    {Name: "Spanish", Code: "es"},
	"french":     {Name: "French", Code: "fr"},
	"german":     {Name: "German", Code: "de"},
	"italian":    {Name: "Italian", Code: "it"},
	"portuguese": {Name: "Portuguese", Code: "pt"},
	"dutch":      {Name: "Dutch", Code: "nl"},
	"chinese":    {Name: "Chinese", Code: "zh"},
	"japanese":   {Name: "Japanese", Code: "ja"},
	"korean":     {Name: "Korean", Code: "ko"},
	"arabic":     {Name: "Arabic", Code: "ar"},
	"russian":    {Name: "Russian", Code: "ru"},
	"hindi":      {Name: "Hindi", Code: "hi"},
}

// LookupLanguage resolves a target language by its case-insensitive
// name. The second return value is false for unsupported languages.
func LookupLanguage(name string) (Language, bool) {
	lang, ok := languages[strings.ToLower(strings.TrimSpace(name))]
	return lang, ok
}

// SupportedLanguages returns the names of all supported target
// languages in no particular order.
func SupportedLanguages() []string {
	names := make([]string, 0, len(languages))
	for name := range languages {
		names = append(names, name)
	}
	return names
}
