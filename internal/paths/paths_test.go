package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestHome(t *testing.T) {
	got := Home()
	want, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("os.UserHomeDir() failed: %v", err)
	}
	if got != want {
		t.Errorf("Home() = %q, want %q", got, want)
	}
}

func TestResolveHome(t *testing.T) {
	got, err := ResolveHome()
	want, _ := os.UserHomeDir()

	if err != nil {
		if !errors.Is(err, ErrHomeDirNotFound) {
			t.Errorf("unexpected error type: %v", err)
		}
	} else if got != want {
		t.Errorf("ResolveHome() = %q, want %q", got, want)
	}
}

func TestXDGDirs(t *testing.T) {
	tests := []struct {
		name   string
		got    string
		suffix string
	}{
		{"ConfigDir", ConfigDir(), AppName},
		{"BackupDir", BackupDir(), filepath.Join(AppName, "backups")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !filepath.IsAbs(tt.got) {
				t.Errorf("%s() = %q, want absolute path", tt.name, tt.got)
			}
			if !strings.HasSuffix(tt.got, tt.suffix) {
				t.Errorf("%s() = %q, want suffix %q", tt.name, tt.got, tt.suffix)
			}
		})
	}
	if !strings.HasPrefix(ConfigDir(), ConfigHome()) {
		t.Errorf("ConfigDir() = %q, want under %q", ConfigDir(), ConfigHome())
	}
	if !strings.HasPrefix(BackupDir(), DataHome()) {
		t.Errorf("BackupDir() = %q, want under %q", BackupDir(), DataHome())
	}
}

func TestResourceDir(t *testing.T) {
	home := filepath.FromSlash("/home/ana")
	tests := []struct {
		name    string
		goos    string
		appData string
		want    string
	}{
		{
			name: "darwin",
			goos: "darwin",
			want: filepath.Join(home, "Library", "Application Support", "REAPER"),
		},
		{
			name:    "windows with APPDATA",
			goos:    "windows",
			appData: filepath.FromSlash("/roaming"),
			want:    filepath.Join(filepath.FromSlash("/roaming"), "REAPER"),
		},
		{
			name: "windows without APPDATA",
			goos: "windows",
			want: filepath.Join(home, "AppData", "Roaming", "REAPER"),
		},
		{
			name: "linux",
			goos: "linux",
			want: filepath.Join(home, ".config", "REAPER"),
		},
		{
			name: "freebsd",
			goos: "freebsd",
			want: filepath.Join(home, ".config", "REAPER"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resourceDir(tt.goos, home, tt.appData); got != tt.want {
				t.Errorf("resourceDir(%q) = %q, want %q", tt.goos, got, tt.want)
			}
		})
	}
}

func TestDefaultKeymapPath(t *testing.T) {
	res := filepath.FromSlash("/music/REAPER")
	want := filepath.Join(res, "KeyMaps", "rkm.ReaperKeyMap")
	if got := DefaultKeymapPath(res); got != want {
		t.Errorf("DefaultKeymapPath() = %q, want %q", got, want)
	}

	got := DefaultKeymapPath("")
	if !strings.HasPrefix(got, ResourceDir()) {
		t.Errorf("DefaultKeymapPath(\"\") = %q, want under %q", got, ResourceDir())
	}
}

func TestExpandHome(t *testing.T) {
	home, err := ResolveHome()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "~", want: home},
		{in: "~/keys/a.ReaperKeyMap", want: filepath.Join(home, "keys", "a.ReaperKeyMap")},
		{in: "/abs/path", want: "/abs/path"},
		{in: "~other/x", want: "~other/x"},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExpandHome(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPath) {
					t.Errorf("ExpandHome(%q) error = %v, want ErrInvalidPath", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExpandHome(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestListKeymaps(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.ReaperKeyMap", "a.ReaperKeyMap", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}

	got, err := ListKeymaps(dir)
	if err != nil {
		t.Fatalf("ListKeymaps() error = %v", err)
	}
	want := []string{filepath.Join(dir, "a.ReaperKeyMap"), filepath.Join(dir, "b.ReaperKeyMap")}
	if len(got) != len(want) {
		t.Fatalf("ListKeymaps() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ListKeymaps()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEnsureDir(t *testing.T) {
	tests := []struct {
		name     string
		perm     os.FileMode
		wantPerm os.FileMode
	}{
		{"default perm", 0, DefaultDirPerm},
		{"explicit perm", 0o755, 0o755},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "a", "b")
			if err := EnsureDir(dir, tt.perm); err != nil {
				t.Fatalf("EnsureDir() error = %v", err)
			}
			info, err := os.Stat(dir)
			if err != nil {
				t.Fatalf("Stat() error = %v", err)
			}
			if !info.IsDir() {
				t.Error("EnsureDir() did not create a directory")
			}
			if got := info.Mode().Perm() &^ 0o022; got != tt.wantPerm&^0o022 {
				t.Errorf("perm = %o, want %o", got, tt.wantPerm)
			}
			if err := EnsureDir(dir, tt.perm); err != nil {
				t.Errorf("EnsureDir() second call error = %v", err)
			}
		})
	}
}
