// Package abbrev detects whether a message already uses the short forms
// the general public knows. The whitelist deliberately stops at terms a
// news reader would recognize; professional jargon (API, SQL, ICU, IPO)
// is excluded so casual shorthand in replies never drifts technical.
package abbrev

import "strings"

// whitelist holds the recognized public abbreviations, stored uppercase.
var whitelist = []string{
	// Everyday tech and electronics.
	"PC", "TV", "DVD", "CD", "USB", "WIFI", "GPS", "SMS", "MMS", "QR",
	"APP", "AI", "IT", "SNS", "LED", "LCD", "CCTV", "ATM", "MP3", "MP4",
	"HDMI", "OS", "3D", "VR", "5G",

	// International organizations and countries.
	"UN", "WHO", "NASA", "FBI", "CIA", "EU", "NGO", "OECD", "IMF", "WTO",
	"G7", "G20", "NATO", "OPEC", "ASEAN", "UNESCO", "UNICEF", "USA", "UK",
	"UAE",

	// Economy and business.
	"CEO", "GDP", "VIP", "PR", "VAT", "VISA", "CPI", "M&A",

	// Transportation.
	"KTX",

	// Sports and entertainment.
	"NBA", "MLB", "FIFA", "UEFA", "DJ", "MC", "VJ", "PD",

	// General expressions.
	"FAQ", "OK", "NO", "VS", "TIP", "DIY",
}

// Whitelist returns a copy of the recognized abbreviations.
func Whitelist() []string {
	out := make([]string, len(whitelist))
	copy(out, whitelist)
	return out
}

// Detect reports whether text contains a whitelisted abbreviation as a
// standalone token. Korean particles attach directly ("PC가 느려요"),
// so only adjacent ASCII letters, digits, and '&' block a match; a
// Hangul syllable counts as a boundary.
func Detect(text string) bool {
	upper := strings.ToUpper(text)
	for _, abbr := range whitelist {
		if containsToken(upper, abbr) {
			return true
		}
	}
	return false
}

func containsToken(text, token string) bool {
	for from := 0; ; {
		i := strings.Index(text[from:], token)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(token)
		if boundaryAt(text, start-1) && boundaryAt(text, end) {
			return true
		}
		from = start + 1
	}
}

// boundaryAt reports whether position i (a byte index, possibly out of
// range) does not hold a rune that would extend the token. Whitelist
// entries are pure ASCII, so a single byte check is enough.
func boundaryAt(text string, i int) bool {
	if i < 0 || i >= len(text) {
		return true
	}
	b := text[i]
	if b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' || b >= '0' && b <= '9' {
		return false
	}
	return b != '&'
}
