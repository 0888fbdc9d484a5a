// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/gengen/gengen/internal/issue"
)

// ServiceError is a build or config failure the CLI reports with extra help:
// optional pre-styled details, then the issue catalog entry for IssueID.
// Create it with newServiceError.
type ServiceError struct {
	Err error
	// IssueID selects the catalog entry; zero renders none.
	IssueID issue.Id
	// StyledMessage is printed verbatim between the error line and the entry.
	StyledMessage string
}

func newServiceError(err error, issueID issue.Id, styledMessage string) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{Err: err, IssueID: issueID, StyledMessage: styledMessage}
}

func (e *ServiceError) Error() string { return e.Err.Error() }

func (e *ServiceError) Unwrap() error { return e.Err }

// renderServiceError writes the styled details and the catalog entry of
// svcErr to w, rendering markdown with the glamour style named by style.
func renderServiceError(w io.Writer, svcErr *ServiceError, style string) {
	if svcErr == nil {
		return
	}
	fmt.Fprint(w, svcErr.StyledMessage)
	renderIssue(w, svcErr.IssueID, style)
}

// renderIssue writes the catalog entry for id, if there is one.
func renderIssue(w io.Writer, id issue.Id, style string) {
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	rendered, err := entry.Render(style)
	if err != nil {
		slog.Warn("failed to render issue catalog entry", "issueID", id, "error", err)
		return
	}
	fmt.Fprint(w, rendered)
}
