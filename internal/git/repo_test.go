package git

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseRemoteURL(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		expectOwner string
		expectRepo  string
		expectError bool
	}{
		{
			name:        "HTTPS with .git suffix",
			url:         "https://github.com/octocat/hello-world.git",
			expectOwner: "octocat",
			expectRepo:  "hello-world",
		},
		{
			name:        "HTTPS without suffix",
			url:         "https://github.com/octocat/hello-world",
			expectOwner: "octocat",
			expectRepo:  "hello-world",
		},
		{
			name:        "SSH format",
			url:         "git@github.com:octocat/hello-world.git",
			expectOwner: "octocat",
			expectRepo:  "hello-world",
		},
		{
			name:        "git protocol",
			url:         "git://github.com/octocat/hello-world.git",
			expectOwner: "octocat",
			expectRepo:  "hello-world",
		},
		{
			name:        "self-hosted HTTPS",
			url:         "https://git.example.com/team/project",
			expectOwner: "team",
			expectRepo:  "project",
		},
		{
			name:        "unrecognized format",
			url:         "/local/path/repo",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := ParseRemoteURL(tt.url)
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error, got %s/%s", owner, repo)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if owner != tt.expectOwner || repo != tt.expectRepo {
				t.Errorf("got %s/%s, want %s/%s", owner, repo, tt.expectOwner, tt.expectRepo)
			}
		})
	}
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	t.Run("finds root from nested directory", func(t *testing.T) {
		got, err := FindRoot(nested)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// Resolve symlinks so macOS /private/var tempdirs compare equal
		want, _ := filepath.EvalSymlinks(root)
		gotResolved, _ := filepath.EvalSymlinks(got)
		if gotResolved != want {
			t.Errorf("FindRoot = %q, want %q", gotResolved, want)
		}
	})

	t.Run("finds root at the root itself", func(t *testing.T) {
		if _, err := FindRoot(root); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("fails outside any repository", func(t *testing.T) {
		outside := t.TempDir()
		if _, err := FindRoot(outside); err == nil {
			t.Error("expected NotARepository error")
		}
	})
}

func TestIsGitHubRemote(t *testing.T) {
	if !IsGitHubRemote("https://github.com/a/b.git") {
		t.Error("expected github.com HTTPS remote to match")
	}
	if !IsGitHubRemote("git@github.com:a/b.git") {
		t.Error("expected github.com SSH remote to match")
	}
	if IsGitHubRemote("https://gitlab.com/a/b.git") {
		t.Error("gitlab remote should not match")
	}
}
