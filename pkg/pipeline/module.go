// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gengen/gengen/pkg/artifact"
	"github.com/gengen/gengen/pkg/target"
)

type (
	// Module is a pipeline lowered for one target.
	Module struct {
		Name      string
		Target    target.Target
		Linkage   Linkage
		Arguments []Argument
		Functions []LoweredFunc

		// Runtime marks the standalone runtime module, which has no
		// generated function of its own.
		Runtime bool
	}

	// LoweredFunc is one realized Func in producer-first order.
	LoweredFunc struct {
		Name   string
		Args   []string
		Values []string
		Types  []Type
	}

	writeFunc func(w *bufio.Writer, m *Module) error
)

// WithName returns a shallow copy of m that generates a function called name.
func (m *Module) WithName(name string) *Module {
	c := *m
	c.Name = name
	return &c
}

// SimpleName returns the function name without namespace qualification.
func (m *Module) SimpleName() string {
	_, simple := artifact.SplitNamespaces(m.Name)
	return simple
}

// Compile writes every artifact that has a path in outputs.
func (m *Module) Compile(outputs artifact.Outputs) error {
	for _, k := range outputs.Requested() {
		path := outputs.Path(k)
		var err error
		switch k {
		case artifact.Header:
			err = writeFile(path, m, writeHeader)
		case artifact.CSource:
			err = writeFile(path, m, writeCSource)
		case artifact.Stmt:
			err = writeFile(path, m, writeStmt)
		case artifact.StmtHTML:
			err = writeFile(path, m, writeStmtHTML)
		case artifact.Assembly:
			err = writeFile(path, m, writeAssembly)
		case artifact.Bitcode:
			err = writeFile(path, m, imageWriter(ImageBitcode))
		case artifact.Object:
			err = writeFile(path, m, imageWriter(m.objectKind()))
		case artifact.StaticLibrary:
			err = writeFile(path, m, writeStaticLibrary)
		}
		if err != nil {
			return err
		}
		slog.Debug("wrote artifact", "kind", k, "path", path, "function", m.Name)
	}
	return nil
}

// objectKind is bitcode for portable bitcode targets.
func (m *Module) objectKind() ImageKind {
	if m.Target.Arch() == target.PNaCl {
		return ImageBitcode
	}
	return ImageObject
}

// ObjectMemberName is the archive member name of m's object image.
func (m *Module) ObjectMemberName() string {
	if m.Target.IsWindowsCOFF() {
		return m.SimpleName() + ".obj"
	}
	return m.SimpleName() + ".o"
}

// WriteHeaderFile writes only the C header for m to path.
func WriteHeaderFile(path string, m *Module) error {
	return writeFile(path, m, writeHeader)
}

func writeFile(path string, m *Module, write writeFunc) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	if err = write(w, m); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
