// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/gengen/gengen/pkg/types"
)

// ExitError carries an exit code other than ExitFailure out of RunE, such as
// ExitInterrupted when a signal cancels a multitarget build.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }
