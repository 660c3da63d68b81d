package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"
)

// allRowWidth is how many handle references fit on one line of the All
// literal before it wraps.
const allRowWidth = 8

// outputsData holds pre-computed data for the outputs template.
type outputsData struct {
	Package string
	Names   []string // field names in index order
	Single  string   // the All literal body when it fits on one line
	Rows    []string // wrapped All literal rows, set when Single is empty
}

// templates holds the parsed code generation templates.
var templates = template.Must(template.New("").Parse(outputsTmpl))

const outputsTmpl = `{{define "outputs"}}// Code generated by muxkit-gen. DO NOT EDIT.

package {{.Package}}

import (
"github.com/muxkit/muxkit-go/pkg/demux"
)

// Outputs holds the chip's output handles, named after the part's pins.
type Outputs struct {
{{- range .Names}}
{{.}} *demux.Output
{{- end}}
}

// newOutputs binds the selector's handles to their pin names.
func newOutputs(sel *demux.Selector) Outputs {
outs := sel.Split()
return Outputs{
{{- range $i, $name := .Names}}
{{$name}}: outs[{{$i}}],
{{- end}}
}
}

// All returns the handles in index order.
func (o Outputs) All() []*demux.Output {
{{- if .Rows}}
return []*demux.Output{
{{- range .Rows}}
{{.}},
{{- end}}
}
{{- else}}
return []*demux.Output{ {{- .Single -}} }
{{- end}}
}
{{end}}`

// GenerateOutputs renders the Outputs bundle for a chip definition. The
// result is valid but unindented Go; run it through writeFormatted.
func GenerateOutputs(def *RawChipDef) (string, error) {
	count := def.OutputCount()
	names := make([]string, count)
	refs := make([]string, count)
	for i := range names {
		names[i] = def.OutputPrefix + strconv.Itoa(i)
		refs[i] = "o." + names[i]
	}

	data := outputsData{
		Package: def.Package,
		Names:   names,
	}
	if count <= allRowWidth {
		data.Single = strings.Join(refs, ", ")
	} else {
		for start := 0; start < count; start += allRowWidth {
			end := min(start+allRowWidth, count)
			data.Rows = append(data.Rows, strings.Join(refs[start:end], ", "))
		}
	}

	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, "outputs", data); err != nil {
		return "", fmt.Errorf("rendering outputs: %w", err)
	}
	return b.String(), nil
}
