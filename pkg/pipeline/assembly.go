// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"bufio"
	"fmt"
)

// writeAssembly emits a listing that names each realized Func in order. The
// body is a stub returning zero.
func writeAssembly(w *bufio.Writer, m *Module) error {
	symbol := m.SimpleName()
	if m.Runtime {
		symbol = "gengen_runtime"
	}
	fmt.Fprintf(w, "\t# target %s\n", m.Target)
	w.WriteString("\t.text\n")
	if m.Linkage == LinkageExternal {
		fmt.Fprintf(w, "\t.globl\t%s\n", symbol)
	}
	if !m.Target.IsWindowsCOFF() {
		fmt.Fprintf(w, "\t.type\t%s,@function\n", symbol)
	}
	fmt.Fprintf(w, "%s:\n", symbol)
	for _, f := range m.Functions {
		fmt.Fprintf(w, "\t# produce %s\n", f.Name)
	}
	w.WriteString("\txor\t%eax, %eax\n\tret\n")
	return nil
}
