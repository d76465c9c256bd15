// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"strings"
	"testing"
)

func allIds() []Id {
	return []Id{
		DefinitionFileNotFoundId,
		PermissionDeniedId,
		RegistryParseErrorId,
		UnsupportedRegistryFormatId,
		ConfigLoadFailedId,
		WatchFailedId,
	}
}

func stubRender(t *testing.T) {
	t.Helper()
	originalRender := render
	t.Cleanup(func() { render = originalRender })

	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}
}

func TestId_Constants(t *testing.T) {
	seen := make(map[Id]bool)
	for _, id := range allIds() {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	if DefinitionFileNotFoundId != 1 {
		t.Errorf("DefinitionFileNotFoundId = %d, want 1", DefinitionFileNotFoundId)
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		id       Id
		contains string
	}{
		{DefinitionFileNotFoundId, "Definition file not found"},
		{PermissionDeniedId, "Permission denied"},
		{RegistryParseErrorId, "Failed to parse the registry file"},
		{UnsupportedRegistryFormatId, "Unsupported registry format"},
		{ConfigLoadFailedId, "Failed to load configuration"},
		{WatchFailedId, "File watching stopped"},
	}

	for _, tt := range tests {
		issue := Get(tt.id)
		if issue == nil {
			t.Errorf("Get(%d) returned nil", tt.id)
			continue
		}
		if issue.Id() != tt.id {
			t.Errorf("Get(%d).Id() = %d", tt.id, issue.Id())
		}
		if !strings.Contains(string(issue.MarkdownMsg()), tt.contains) {
			t.Errorf("Get(%d) message does not contain %q", tt.id, tt.contains)
		}
	}

	if Get(Id(0)) != nil {
		t.Error("Get(0) should return nil")
	}
}

func TestValues(t *testing.T) {
	if got, want := len(Values()), len(allIds()); got != want {
		t.Errorf("len(Values()) = %d, want %d", got, want)
	}
}

func TestIssue_LinksAreCloned(t *testing.T) {
	issue := Get(DefinitionFileNotFoundId)
	links := issue.DocLinks()
	if len(links) == 0 {
		t.Fatal("DocLinks() is empty")
	}
	links[0] = "modified"
	if issue.DocLinks()[0] == "modified" {
		t.Error("DocLinks() should return a clone")
	}
}

func TestIssue_Render_WithLinks(t *testing.T) {
	stubRender(t)

	rendered, err := Get(UnsupportedRegistryFormatId).Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if !strings.Contains(rendered, "## See also") {
		t.Error("Render() output should contain a See also section")
	}
	if !strings.Contains(rendered, "<https://cuelang.org/docs/>") {
		t.Error("Render() output should list the external link")
	}
}

func TestIssue_Render_NoLinks(t *testing.T) {
	stubRender(t)

	rendered, err := Get(PermissionDeniedId).Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if strings.Contains(rendered, "See also") {
		t.Error("Render() output should not contain See also without links")
	}
}

func TestAllIssuesAreRenderable(t *testing.T) {
	for _, issue := range Values() {
		if issue.MarkdownMsg() == "" {
			t.Errorf("Issue %d has empty MarkdownMsg", issue.Id())
		}
		rendered, err := issue.Render("notty")
		if err != nil {
			t.Errorf("Issue %d failed to render: %v", issue.Id(), err)
		}
		if strings.TrimSpace(rendered) == "" {
			t.Errorf("Issue %d rendered to empty string", issue.Id())
		}
	}
}
