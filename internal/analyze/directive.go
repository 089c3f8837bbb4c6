package analyze

import (
	"fmt"
	"go/ast"
	"strings"

	"autojson-generator/internal/match"
)

// Directive marks a struct type for generation.
const Directive = "//autojson:deserialize"

// directiveArgs holds the parsed arguments of a directive line.
type directiveArgs struct {
	Enclosing []string
}

// findDirective returns the arguments of the first directive in the comment
// groups, and false when none of them carries one.
func findDirective(groups ...*ast.CommentGroup) (directiveArgs, bool, error) {
	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, c := range g.List {
			rest, ok := strings.CutPrefix(c.Text, Directive)
			if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
				continue
			}

			args, err := parseDirective(rest)

			return args, true, err
		}
	}

	return directiveArgs{}, false, nil
}

func parseDirective(rest string) (directiveArgs, error) {
	var args directiveArgs

	for _, field := range strings.Fields(rest) {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return args, fmt.Errorf("directive argument %q: expected key=value", field)
		}

		switch key {
		case "enclosing":
			for _, name := range strings.Split(value, ".") {
				if name == "" {
					return args, fmt.Errorf("directive argument %q: empty enclosing name", field)
				}

				args.Enclosing = append(args.Enclosing, name)
			}
		default:
			return args, fmt.Errorf("directive argument %q: unknown key %q%s", field, key, match.Hint(key, "enclosing"))
		}
	}

	return args, nil
}

// deprecation returns the message of a "Deprecated:" paragraph in a field
// doc. Multi-line paragraphs keep their line breaks.
func deprecation(groups ...*ast.CommentGroup) (string, bool) {
	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, para := range strings.Split(g.Text(), "\n\n") {
			msg, ok := strings.CutPrefix(para, "Deprecated:")
			if !ok {
				continue
			}

			lines := strings.Split(strings.TrimSpace(msg), "\n")
			for i, l := range lines {
				lines[i] = strings.TrimSpace(l)
			}

			return strings.Join(lines, "\n"), true
		}
	}

	return "", false
}
