package taskdir

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestPaths(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"config in cwd", ConfigPath(""), filepath.Join(".tasks", "tasks.toml")},
		{"dir dot", DirPath("."), ".tasks"},
		{"config under home", ConfigPath("/home/ana"), filepath.Join("/home/ana", ".tasks", "tasks.toml")},
		{"dir", DirPath("/srv"), filepath.Join("/srv", ".tasks")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestUserConfigPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "xdg"))

	paths := UserConfigPaths()
	if len(paths) == 0 {
		t.Fatal("expected at least one user config path")
	}
	if paths[0] != filepath.Join(home, ".tasks", "tasks.toml") {
		t.Errorf("first path = %q, want the ~/.tasks config", paths[0])
	}
	for _, p := range paths[1:] {
		if !strings.HasSuffix(p, filepath.Join("tasks", "tasks.toml")) {
			t.Errorf("unexpected user config path %q", p)
		}
	}
}

func TestProjectConfigPaths(t *testing.T) {
	got := ProjectConfigPaths("")
	want := []string{"tasks.toml", ".tasks.toml"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("path %d = %q, want %q", i, got[i], want[i])
		}
	}
}
