package artifact

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strings"
	"text/template"
)

var fileTemplate = template.Must(
	template.New("file").
		Funcs(template.FuncMap{
			"comment": comment,
			"params":  params,
			"results": results,
			"isFunc":  isFunc,
		}).
		Parse(`{{if .Header}}// {{.Header}}

{{end}}package {{.Package}}
{{if .Imports}}
import (
{{- range .Imports}}
	"{{.}}"
{{- end}}
)
{{end}}
{{- range .Decls}}
{{if isFunc .}}{{template "func" .}}{{else}}{{template "struct" .}}{{end}}
{{end}}

{{- define "struct"}}{{range .Doc}}{{comment .}}
{{end}}type {{.Name}} struct {
{{- range .Fields}}
	{{.Name}} {{.Type}}{{if .Tag}} ` + "`{{.Tag}}`" + `{{end}}
{{- end}}
}
{{- end}}

{{- define "func"}}{{range .Doc}}{{comment .}}
{{end}}func {{with .Recv}}({{.Name}} {{.Type}}) {{end}}{{.Name}}({{params .Params}}){{results .Results}} {
{{- range .Body}}
{{.}}
{{- end}}
}
{{- end}}
`))

// Render renders f as gofmt-formatted Go source. When formatting fails the
// unformatted source is returned together with the error.
func Render(f *File) ([]byte, error) {
	data := *f
	data.Imports = sortedImports(f.Imports)

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, &data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.Bytes(), fmt.Errorf("formatting code: %w", err)
	}

	return formatted, nil
}

func isFunc(d Decl) bool {
	_, ok := d.(*Func)
	return ok
}

func sortedImports(in []string) []string {
	seen := make(map[string]bool, len(in))

	var out []string
	for _, p := range in {
		if p == "" || seen[p] {
			continue
		}

		seen[p] = true
		out = append(out, p)
	}

	sort.Strings(out)

	return out
}

// comment renders one doc line. Directive lines ("autojson:...", "go:...")
// are written without the space after the slashes.
func comment(line string) string {
	switch {
	case line == "":
		return "//"
	case strings.HasPrefix(line, "autojson:"), strings.HasPrefix(line, "go:"):
		return "//" + line
	default:
		return "// " + line
	}
}

func params(ps []Param) string {
	parts := make([]string, 0, len(ps))
	for _, p := range ps {
		parts = append(parts, p.Name+" "+p.Type)
	}

	return strings.Join(parts, ", ")
}

func results(rs []string) string {
	switch len(rs) {
	case 0:
		return ""
	case 1:
		return " " + rs[0]
	default:
		return " (" + strings.Join(rs, ", ") + ")"
	}
}
