// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"bufio"
	"fmt"
	"html/template"
	"strings"
)

var stmtHTMLTemplate = template.Must(template.New("stmt").Funcs(template.FuncMap{"join": strings.Join}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Name}}</title>
<style>
body { font-family: monospace; }
.kw { color: #7d3c98; font-weight: bold; }
.fn { color: #1f618d; }
.ty { color: #117a65; }
.produce { margin-left: 2em; }
</style>
</head>
<body>
<h1>{{.Name}}</h1>
<p>target <span class="ty">{{.Target}}</span>, linkage <span class="kw">{{.Linkage}}</span></p>
<h2>Arguments</h2>
<ul>
{{- range .Arguments}}
<li><span class="kw">{{.Kind}}</span> <span class="ty">{{.Type}}</span> {{.Name}}{{if .IsBuffer}} [{{.Dimensions}}]{{end}}</li>
{{- end}}
</ul>
<h2>Realization</h2>
{{- range .Functions}}
<div class="produce"><span class="kw">produce</span> <span class="fn">{{.Name}}</span>
<pre>
{{- $f := .}}
{{- range $i, $v := .Values}}
{{$f.Name}}({{join $f.Args ", "}}) = {{$v}}
{{- end}}
</pre>
</div>
{{- end}}
</body>
</html>
`))

func writeStmt(w *bufio.Writer, m *Module) error {
	if m.Runtime {
		fmt.Fprintf(w, "module runtime target=%s\n", m.Target)
		return nil
	}
	fmt.Fprintf(w, "module name=%s, target=%s, linkage=%s\n", m.Name, m.Target, m.Linkage)
	params := make([]string, len(m.Arguments))
	for i, a := range m.Arguments {
		params[i] = a.Name
	}
	fmt.Fprintf(w, "func %s(%s) {\n", m.Name, strings.Join(params, ", "))
	for _, f := range m.Functions {
		fmt.Fprintf(w, "  produce %s {\n", f.Name)
		for i, v := range f.Values {
			name := f.Name
			if len(f.Values) > 1 {
				name = fmt.Sprintf("%s[%d]", f.Name, i)
			}
			fmt.Fprintf(w, "    %s(%s) = %s\n", name, strings.Join(f.Args, ", "), v)
		}
		w.WriteString("  }\n")
	}
	_, err := w.WriteString("}\n")
	return err
}

func writeStmtHTML(w *bufio.Writer, m *Module) error {
	return stmtHTMLTemplate.Execute(w, m)
}
