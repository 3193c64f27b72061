package match

import (
	"slices"
	"strings"
	"unicode"
)

// qualifiers are trailing tokens that say what kind of value a field holds
// rather than what it is about.
var qualifiers = []string{"id", "ids", "at", "utc", "timestamp"}

// TokenizeIdent splits an identifier into lowercase words on separators,
// lower-to-upper transitions and acronym ends:
//   - "orderID" -> [order id]
//   - "HTTPStatus" -> [http status]
//   - "access_token" -> [access token]
func TokenizeIdent(s string) []string {
	var (
		tokens []string
		start  = -1
	)

	runes := []rune(s)

	flush := func(end int) {
		if start >= 0 && end > start {
			tokens = append(tokens, strings.ToLower(string(runes[start:end])))
		}

		start = -1
	}

	for i, r := range runes {
		switch {
		case isSeparator(r):
			flush(i)
		case start < 0:
			start = i
		case boundary(runes, i):
			flush(i)
			start = i
		}
	}

	flush(len(runes))

	return tokens
}

// boundary reports whether a new word starts at runes[i].
func boundary(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	// "XMLParser": the P opens a word when followed by lowercase.
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// NormalizeIdent folds case and separators so that "user_id", "userId" and
// "USER-ID" compare equal.
func NormalizeIdent(s string) string {
	return strings.Join(TokenizeIdent(s), "")
}

// NormalizeStem is NormalizeIdent without a trailing qualifier word, so
// "userId" and "user" share a stem. A lone qualifier is kept.
func NormalizeStem(s string) string {
	tokens := TokenizeIdent(s)
	if len(tokens) > 1 && slices.Contains(qualifiers, tokens[len(tokens)-1]) {
		tokens = tokens[:len(tokens)-1]
	}

	return strings.Join(tokens, "")
}

// StripIDSuffix reports whether name ends in an identifier suffix ("userId",
// "user_id", "userID", "userid") and returns the normalized owner prefix.
// A bare "id" has no owner and is not stripped.
func StripIDSuffix(name string) (string, bool) {
	tokens := TokenizeIdent(name)
	if len(tokens) > 1 && tokens[len(tokens)-1] == "id" {
		return strings.Join(tokens[:len(tokens)-1], ""), true
	}

	folded := NormalizeIdent(name)
	if len(folded) > 2 && strings.HasSuffix(folded, "id") {
		return strings.TrimSuffix(folded, "id"), true
	}

	return "", false
}

// SameStem reports whether two identifiers normalize to the same word,
// allowing a plural form on either side ("user" and "users").
func SameStem(a, b string) bool {
	na, nb := NormalizeIdent(a), NormalizeIdent(b)
	if na == "" || nb == "" {
		return false
	}

	if na == nb {
		return true
	}

	for _, plural := range []string{"s", "es"} {
		if na+plural == nb || nb+plural == na {
			return true
		}
	}

	return false
}
