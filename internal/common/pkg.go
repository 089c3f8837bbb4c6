package common

import (
	"path"
	"strings"
)

// PkgAlias returns the name a package is referred to by in generated code:
// the last path element without a major-version element or a gopkg.in style
// ".vN" suffix, with dashes replaced. Returns "" for an empty path.
//
//	PkgAlias("example.com/rt/jsonstream/v2") == "jsonstream"
//	PkgAlias("gopkg.in/yaml.v3")             == "yaml"
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	dir, name := path.Split(pkgPath)
	if isMajorVersion(name) && dir != "" {
		name = path.Base(dir)
	}

	if i := strings.Index(name, ".v"); i > 0 && isMajorVersion(name[i+1:]) {
		name = name[:i]
	}

	return strings.ReplaceAll(name, "-", "_")
}

func isMajorVersion(s string) bool {
	digits, ok := strings.CutPrefix(s, "v")
	if !ok || digits == "" {
		return false
	}

	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
