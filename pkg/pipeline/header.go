// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"bufio"
	"strings"
	"text/template"

	"github.com/gengen/gengen/pkg/artifact"
	"github.com/gengen/gengen/pkg/target"
)

// bufferStructDecl is shared by every header and C source so that several
// generated headers can be included in one translation unit.
const bufferStructDecl = `#ifndef GENGEN_BUFFER_T_DEFINED
#define GENGEN_BUFFER_T_DEFINED
struct gengen_buffer_t {
    uint64_t dev;
    uint8_t *host;
    int32_t extent[4];
    int32_t stride[4];
    int32_t min[4];
    int32_t elem_size;
    bool host_dirty;
    bool dev_dirty;
};
#endif
`

var headerTemplate = template.Must(template.New("header").Parse(`#ifndef {{.Guard}}
#define {{.Guard}}

// Generated by gengen for target {{.Target}}.

#include <stdbool.h>
#include <stddef.h>
#include <stdint.h>

{{.BufferDecl}}
{{- if .Mangled}}
{{range .Namespaces}}namespace {{.}} {
{{end}}
{{- else}}
#ifdef __cplusplus
extern "C" {
#endif
{{end}}
{{range .Prototypes}}{{.}};
{{end}}
{{- if .Mangled}}
{{range .Namespaces}}}  // namespace {{.}}
{{end}}
{{- else}}
#ifdef __cplusplus
}  // extern "C"
#endif
{{end}}
#endif
`))

// runtimePrototypes are the entry points of the standalone runtime.
var runtimePrototypes = []string{
	"void *gengen_malloc(void *user_context, size_t size)",
	"void gengen_free(void *user_context, void *ptr)",
	"void gengen_error(void *user_context, const char *msg)",
	"void gengen_print(void *user_context, const char *msg)",
	"int gengen_copy_to_host(void *user_context, struct gengen_buffer_t *buf)",
	"int gengen_device_free(void *user_context, struct gengen_buffer_t *buf)",
}

type headerData struct {
	Guard      string
	Target     string
	BufferDecl string
	Mangled    bool
	Namespaces []string
	Prototypes []string
}

func writeHeader(w *bufio.Writer, m *Module) error {
	namespaces, simple := artifact.SplitNamespaces(m.Name)
	data := headerData{
		Guard:      "GENGEN_" + strings.ToUpper(simple) + "_H",
		Target:     m.Target.String(),
		BufferDecl: bufferStructDecl,
		Mangled:    m.Target.HasFeature(target.CPlusPlusNameMangling),
		Namespaces: namespaces,
	}
	if m.Runtime {
		data.Prototypes = runtimePrototypes
	} else {
		data.Prototypes = []string{signature(simple, m.Arguments), argvSignature(simple)}
	}
	return headerTemplate.Execute(w, data)
}

// signature renders the C prototype of the generated function.
func signature(name string, args []Argument) string {
	params := make([]string, len(args))
	for i, a := range args {
		params[i] = cParam(a)
	}
	return "int " + name + "(" + strings.Join(params, ", ") + ")"
}

func argvSignature(name string) string {
	return "int " + name + "_argv(void **args)"
}

func cParam(a Argument) string {
	if a.IsBuffer() {
		return "struct gengen_buffer_t *" + a.Name
	}
	return a.Type.CType() + " " + a.Name
}
