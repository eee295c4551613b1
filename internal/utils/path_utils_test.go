package utils

import "testing"

func TestHasSourceExt(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"main.py", true},
		{"stubs/os.pyi", true},
		{"readme.md", false},
		{"py", false},
	}
	for _, tc := range cases {
		if got := HasSourceExt(tc.path); got != tc.want {
			t.Errorf("HasSourceExt(%q) = %v", tc.path, got)
		}
	}
}

func TestModuleName(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"main.py", "main"},
		{"pkg/mod.py", "mod"},
		{"pkg/__init__.py", "pkg"},
		{"a/b/__init__.pyi", "b"},
		{"enum.py", "enum"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ModuleName(tc.path); got != tc.want {
			t.Errorf("ModuleName(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
