// Package annotate carries property metadata onto generated builder setters.
package annotate

import (
	"autojson-generator/internal/schema"
)

// Propagate returns the annotations a generated setter carries for p: every
// annotation of the source field, in order, plus a synthesized wire-name
// annotation keyed by p.Name when the field has none. The result always holds
// exactly one wire-name annotation. Annotations are deep copies.
func Propagate(p schema.Property) []schema.Annotation {
	out := make([]schema.Annotation, 0, len(p.Annotations)+1)

	hasWireName := false
	for _, a := range p.Annotations {
		if a.Kind == schema.AnnotationWireName {
			if hasWireName {
				// Struct tags cannot repeat a key; keep the first.
				continue
			}

			hasWireName = true
		}

		out = append(out, a.Clone())
	}

	if !hasWireName {
		out = append(out, schema.NewWireName(defaultWireName(p), ""))
	}

	return out
}

// WireName returns the name p is matched by on the wire, and false when the
// property is excluded from decoding by a `json:"-"` tag.
func WireName(p schema.Property) (string, bool) {
	if p.WireName != "" {
		return p.WireName, p.WireName != "-"
	}

	for _, a := range p.Annotations {
		if a.Kind != schema.AnnotationWireName {
			continue
		}

		switch name := a.Value(); {
		case name == "-":
			_, hasOpts := a.Member(schema.MemberOptions)
			if !hasOpts {
				return "", false
			}
			// `json:"-,"` names the field "-".
			return name, true
		case name != "":
			return name, true
		}

		return p.Name, true
	}

	return p.Name, true
}

func defaultWireName(p schema.Property) string {
	if p.WireName != "" {
		return p.WireName
	}

	return p.Name
}
