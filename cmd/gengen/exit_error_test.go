// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"testing"

	"github.com/gengen/gengen/pkg/types"
)

func TestExitError(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	err := &ExitError{Code: types.ExitFailure, Err: cause}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if err.Error() != "cause" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestExitError_NoCause(t *testing.T) {
	t.Parallel()

	err := &ExitError{Code: types.ExitInterrupted}
	if err.Error() != "exit status 130" {
		t.Errorf("Error() = %q", err.Error())
	}
}
