// SPDX-License-Identifier: MPL-2.0

package generators

import "github.com/gengen/gengen/pkg/generator"

func init() {
	Register(generator.DefaultRegistry)
}

// Register adds every sample generator to r.
func Register(r *generator.Registry) {
	r.MustRegister("brighten", generator.NewFactory(NewBrighten))
	r.MustRegister("gradient", generator.NewFactory(NewGradient))
	r.MustRegister("threshold", generator.NewFactory(NewThreshold))
}
