// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

var allIds = []Id{
	UsageErrorId,
	UnknownGeneratorId,
	InvalidGeneratorParamId,
	InvalidTargetId,
	ConfigLoadFailedId,
	CompileFailedId,
	OutputWriteFailedId,
	InternalErrorId,
}

func TestId_Constants(t *testing.T) {
	t.Parallel()

	seen := make(map[Id]bool)
	for _, id := range allIds {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	if UsageErrorId != 1 {
		t.Errorf("UsageErrorId = %d, want 1", UsageErrorId)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	for _, id := range allIds {
		i := Get(id)
		if i == nil {
			t.Fatalf("Get(%d) returned nil", id)
		}
		if i.Id() != id {
			t.Errorf("Get(%d).Id() = %d", id, i.Id())
		}
	}

	if Get(Id(9999)) != nil {
		t.Error("Get(9999) should return nil")
	}
}

func TestIssue_MarkdownMsg(t *testing.T) {
	t.Parallel()

	msg := Get(UnknownGeneratorId).MarkdownMsg()
	if !strings.Contains(string(msg), "Generator not found") {
		t.Errorf("MarkdownMsg() = %q, want it to mention the missing generator", msg)
	}
}

func TestIssue_LinksAreCloned(t *testing.T) {
	t.Parallel()

	i := &Issue{id: UsageErrorId, docLinks: []HttpLink{"https://a.example"}, extLinks: []HttpLink{"https://b.example"}}

	docs := i.DocLinks()
	docs[0] = "changed"
	if i.docLinks[0] != "https://a.example" {
		t.Error("DocLinks() must return a copy")
	}

	ext := i.ExtLinks()
	ext[0] = "changed"
	if i.extLinks[0] != "https://b.example" {
		t.Error("ExtLinks() must return a copy")
	}
}

func TestIssue_Render_WithLinks(t *testing.T) {
	t.Parallel()

	i := &Issue{
		id:       UsageErrorId,
		mdMsg:    "# Title",
		docLinks: []HttpLink{"https://docs.example/usage"},
	}
	out, err := i.Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "See also") {
		t.Errorf("Render() = %q, want a See also section", out)
	}
	if !strings.Contains(out, "https://docs.example/usage") {
		t.Errorf("Render() = %q, want the doc link", out)
	}
}

func TestIssue_Render_NoLinks(t *testing.T) {
	t.Parallel()

	i := &Issue{id: UsageErrorId, mdMsg: "# Title"}
	out, err := i.Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(out, "See also") {
		t.Errorf("Render() = %q, want no See also section", out)
	}
}

func TestValues(t *testing.T) {
	t.Parallel()

	values := Values()
	if len(values) != len(allIds) {
		t.Fatalf("len(Values()) = %d, want %d", len(values), len(allIds))
	}
	for n, i := range values {
		if i.Id() != allIds[n] {
			t.Errorf("Values()[%d].Id() = %d, want %d", n, i.Id(), allIds[n])
		}
	}
}

func TestAllIssuesAreRenderable(t *testing.T) {
	t.Parallel()

	for _, i := range Values() {
		if strings.TrimSpace(string(i.MarkdownMsg())) == "" {
			t.Errorf("issue %d has no markdown", i.Id())
		}
		out, err := i.Render("dark")
		if err != nil {
			t.Errorf("issue %d: Render() error = %v", i.Id(), err)
			continue
		}
		if out == "" {
			t.Errorf("issue %d rendered to empty output", i.Id())
		}
	}
}
