// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/gengen/gengen/pkg/artifact"
	"github.com/gengen/gengen/pkg/target"
)

func writeCSource(w *bufio.Writer, m *Module) error {
	namespaces, simple := artifact.SplitNamespaces(m.Name)
	mangled := m.Target.HasFeature(target.CPlusPlusNameMangling)

	fmt.Fprintf(w, "// Generated by gengen for target %s.\n\n", m.Target)
	w.WriteString("#include <stdbool.h>\n#include <stddef.h>\n#include <stdint.h>\n\n")
	w.WriteString(bufferStructDecl)
	w.WriteString("\n")

	if m.Runtime {
		return writeRuntimeSource(w)
	}

	for _, ns := range namespaces {
		fmt.Fprintf(w, "namespace %s {\n", ns)
	}
	if !mangled {
		w.WriteString("#ifdef __cplusplus\nextern \"C\" {\n#endif\n\n")
	}

	storage := ""
	if m.Linkage == LinkageInternal {
		storage = "static "
	}
	fmt.Fprintf(w, "%s%s {\n", storage, signature(simple, m.Arguments))
	for _, f := range m.Functions {
		for i, v := range f.Values {
			fmt.Fprintf(w, "    // %s %s(%s) = %s\n", f.Types[i].CType(), f.Name, strings.Join(f.Args, ", "), v)
		}
	}
	w.WriteString("    return 0;\n}\n\n")

	fmt.Fprintf(w, "%s%s {\n", storage, argvSignature(simple))
	params := make([]string, len(m.Arguments))
	for i, a := range m.Arguments {
		if a.IsBuffer() {
			params[i] = fmt.Sprintf("(struct gengen_buffer_t *)args[%d]", i)
		} else {
			params[i] = fmt.Sprintf("*(%s *)args[%d]", a.Type.CType(), i)
		}
	}
	fmt.Fprintf(w, "    return %s(%s);\n}\n", simple, strings.Join(params, ", "))

	if !mangled {
		w.WriteString("\n#ifdef __cplusplus\n}  // extern \"C\"\n#endif\n")
	}
	for i := len(namespaces) - 1; i >= 0; i-- {
		fmt.Fprintf(w, "}  // namespace %s\n", namespaces[i])
	}
	return nil
}

func writeRuntimeSource(w *bufio.Writer) error {
	w.WriteString("#include <stdio.h>\n#include <stdlib.h>\n\n")
	w.WriteString("void *gengen_malloc(void *user_context, size_t size) { return malloc(size); }\n")
	w.WriteString("void gengen_free(void *user_context, void *ptr) { free(ptr); }\n")
	w.WriteString("void gengen_error(void *user_context, const char *msg) { fprintf(stderr, \"Error: %s\\n\", msg); }\n")
	w.WriteString("void gengen_print(void *user_context, const char *msg) { fputs(msg, stderr); }\n")
	w.WriteString("int gengen_copy_to_host(void *user_context, struct gengen_buffer_t *buf) { buf->dev_dirty = false; return 0; }\n")
	_, err := w.WriteString("int gengen_device_free(void *user_context, struct gengen_buffer_t *buf) { buf->dev = 0; return 0; }\n")
	return err
}
