package naming

import (
	"go/token"
	"strings"
	"unicode"
)

// Default affixes of generated identifiers and files.
const (
	DefaultValuePrefix   = "autoValue_"
	BuilderSuffix        = "Builder"
	DecoderSuffix        = "Decoder"
	DefaultBuilderSuffix = "_builder.go"
	DefaultDecoderSuffix = "_decoder.go"
)

// ValueClassName returns the synthetic value-class name for a type: each
// enclosing name is prepended, innermost first, joined by "_".
//
//	ValueClassName("Response", []string{"Demo"})        == "Demo_Response"
//	ValueClassName("C", []string{"A", "B"})             == "A_B_C"
func ValueClassName(simpleName string, enclosing []string) string {
	name := simpleName
	for i := len(enclosing) - 1; i >= 0; i-- {
		name = enclosing[i] + "_" + name
	}

	return name
}

// QualifiedName returns the package-qualified name of a type.
func QualifiedName(pkgPath, simpleName string) string {
	if pkgPath == "" {
		return simpleName
	}

	return pkgPath + "." + simpleName
}

// ConstructorName returns the canonical constructor function name.
func ConstructorName(prefix, valueClass string) string {
	if prefix == "" {
		prefix = DefaultValuePrefix
	}

	return prefix + valueClass
}

// BuilderName returns the builder type name for a target type.
func BuilderName(simpleName string) string {
	return simpleName + BuilderSuffix
}

// DecoderName returns the decoder type name for a target type.
func DecoderName(simpleName string) string {
	return simpleName + DecoderSuffix
}

// Filename returns the snake_case file name for a type plus suffix:
// Filename("UserProfile", "_builder.go") == "user_profile_builder.go".
func Filename(simpleName, suffix string) string {
	words := Words(simpleName)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}

	return strings.Join(words, "_") + suffix
}

// Exported returns the exported Go form of a name, honoring initialisms:
// "id" -> "ID", "userId" -> "UserID", "created_at" -> "CreatedAt".
func Exported(name string) string {
	var sb strings.Builder
	for _, w := range Words(name) {
		sb.WriteString(titleWord(w))
	}

	return sb.String()
}

// Unexported returns the unexported Go form of a name:
// "ID" -> "id", "UserID" -> "userID", "HTTPServer" -> "httpServer".
func Unexported(name string) string {
	words := Words(name)
	if len(words) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(lowerWord(words[0]))

	for _, w := range words[1:] {
		sb.WriteString(titleWord(w))
	}

	return sb.String()
}

// Param returns a name usable as a parameter, local or unexported field:
// the unexported form, suffixed with "_" when it is a Go keyword.
func Param(name string) string {
	p := Unexported(name)
	if token.IsKeyword(p) {
		return p + "_"
	}

	return p
}

// Words splits an identifier into words at case changes and separators.
// Digits stay attached to the preceding word.
func Words(name string) []string {
	runes := []rune(name)

	var (
		words []string
		cur   []rune
	)

	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = nil
		}
	}

	for i, r := range runes {
		if r == '_' || r == '-' || r == ' ' || r == '.' {
			flush()
			continue
		}

		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}

		cur = append(cur, r)
	}

	flush()

	return words
}

func titleWord(w string) string {
	if upper := strings.ToUpper(w); commonInitialisms[upper] {
		return upper
	}

	r := []rune(w)
	r[0] = unicode.ToUpper(r[0])

	return string(r)
}

func lowerWord(w string) string {
	if upper := strings.ToUpper(w); commonInitialisms[upper] || upper == w {
		return strings.ToLower(w)
	}

	r := []rune(w)
	r[0] = unicode.ToLower(r[0])

	return string(r)
}

// commonInitialisms is the golint list of initialisms kept upper case.
var commonInitialisms = map[string]bool{
	"ACL":   true,
	"API":   true,
	"ASCII": true,
	"CPU":   true,
	"CSS":   true,
	"DNS":   true,
	"EOF":   true,
	"GUID":  true,
	"HTML":  true,
	"HTTP":  true,
	"HTTPS": true,
	"ID":    true,
	"IP":    true,
	"JSON":  true,
	"LHS":   true,
	"QPS":   true,
	"RAM":   true,
	"RHS":   true,
	"RPC":   true,
	"SLA":   true,
	"SMTP":  true,
	"SQL":   true,
	"SSH":   true,
	"TCP":   true,
	"TLS":   true,
	"TTL":   true,
	"UDP":   true,
	"UI":    true,
	"UID":   true,
	"UUID":  true,
	"URI":   true,
	"URL":   true,
	"UTF8":  true,
	"VM":    true,
	"XML":   true,
	"XMPP":  true,
	"XSRF":  true,
	"XSS":   true,
}
