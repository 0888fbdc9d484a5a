// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/gengen/gengen/internal/generators"
	"github.com/gengen/gengen/pkg/generator"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"gengen": func() {
			r := generator.NewRegistry()
			generators.Register(r)
			os.Exit(int(Run(context.Background(), NewApp(Dependencies{Registry: r}), os.Args[1:])))
		},
	})
}

// TestScripts runs the txtar scripts under testdata/script against the
// gengen command with the sample generators linked in.
func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: filepath.Join("testdata", "script"),
		Setup: func(env *testscript.Env) error {
			env.Setenv("XDG_CONFIG_HOME", filepath.Join(env.WorkDir, ".config"))
			return nil
		},
	})
}
