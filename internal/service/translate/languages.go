package translate

import "sort"

// languageCodes maps supported language names to Google translate codes.
var languageCodes = map[string]string{
	"Hindi":    "hi",
	"Tamil":    "ta",
	"Telugu":   "te",
	"Gujarati": "gu",
	"Marathi":  "mr",
	"Bengali":  "bn",

	"Spanish":              "es",
	"French":               "fr",
	"German":               "de",
	"Arabic":               "ar",
	"Chinese (Simplified)": "zh-CN",
	"Japanese":             "ja",

	"English": "en",
}

// LanguageCode resolves a language name to its code. Unknown names are
// passed through unchanged so callers may supply raw codes directly;
// empty input defaults to English.
func LanguageCode(language string) string {
	if code, ok := languageCodes[language]; ok {
		return code
	}
	if language == "" {
		return "en"
	}
	return language
}

func supportedLanguages() []string {
	names := make([]string, 0, len(languageCodes))
	for name := range languageCodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
