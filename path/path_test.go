package path

import "testing"

func TestIsValidProtocolName(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"", false},
		{"mem", true},
		{"mem2", true},
		{"Mem", false},
		{"mem-fs", false},
		{"2", true},
	}
	for _, c := range cases {
		if got := IsValidProtocolName(c.name); got != c.want {
			t.Errorf("IsValidProtocolName(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestNormalizePath(t *testing.T) {
	cases := []struct {
		name   string
		path   string
		flags  Flags
		want   string
		failed Flags
	}{
		{"root", "/", GenericFlags, "/", 0},
		{"collapse slashes", "//a///b", LocalFlags, "/a/b", 0},
		{"dot segment", "/a/./b", LocalFlags, "/a/b", 0},
		{"dotdot segment", "/a/b/../c", LocalFlags, "/a/c", 0},
		{"dotdot at root preserved", "/../a", LocalFlags, "/../a", 0},
		{"dotdot at root rejected", "/../a", RequireRoot, "", RequireRoot},
		{"backslashes", `a\b\c`, LocalFlags, "a/b/c", 0},
		{"trailing slash trimmed", "/a/b/", GenericFlags, "/a/b", 0},
		{"trailing slash allowed", "/a/b/", GenericFlags | AllowTrailingSlash, "/a/b/", 0},
		{"protocol lowercased", "MEM:/a", ProtocolFlags, "mem:/a", 0},
		{"protocol required missing", "/a", RequireProtocol, "", RequireProtocol},
		{"protocol disallowed kept as segment", "mem:a", LocalFlags, "mem:a", 0},
		{"dotfile kept literal", "/a/.hidden", LocalFlags, "/a/.hidden", 0},
		{"host", "//host/a", HostFlags, "//host/a", 0},
		{"host required missing", "/a", RequireHost, "", RequireHost},
		{"lowercase forced", "/A/B", RequireLowercase, "/a/b", 0},
		{"idempotent", "/a/b/c", GenericFlags, "/a/b/c", 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, failed := NormalizePath(c.path, c.flags)
			if got != c.want || failed != c.failed {
				t.Errorf("NormalizePath(%q, %v) = (%q, %v), want (%q, %v)", c.path, c.flags, got, failed, c.want, c.failed)
			}
		})
	}
}

func TestNormalizePathIdempotent(t *testing.T) {
	inputs := []string{"/a/b/c", "mem:/x/y", "//host/a/b", "a/b", "/"}
	for _, in := range inputs {
		once, failed := NormalizePath(in, GenericFlags)
		if failed != 0 {
			continue
		}
		twice, failed2 := NormalizePath(once, GenericFlags)
		if failed2 != 0 || once != twice {
			t.Errorf("normalize(normalize(%q)) = %q, want %q", in, twice, once)
		}
	}
}

func TestJoinPath(t *testing.T) {
	cases := []struct {
		a, b, want string
	}{
		{"/a", "b", "/a/b"},
		{"/a/", "b", "/a/b"},
		{"/a", "/b", "/a/b"},
		{"mem:/a", "mem:/b", "mem:/a/b"},
		{"mem:/a", "/b", "mem:/a/b"},
		{"mem:/a", "other:/b", ""},
	}
	for _, c := range cases {
		if got := JoinPath(c.a, c.b, GenericFlags); got != c.want {
			t.Errorf("JoinPath(%q, %q) = %q, want %q", c.a, c.b, got, c.want)
		}
	}
}

func TestJoinPathRoundTrip(t *testing.T) {
	paths := []string{"/a/b/c", "mem:/x/y/z", "/solo"}
	for _, p := range paths {
		folder, filename := RemoveFilename(p, GenericFlags)
		got := JoinPath(folder, filename, GenericFlags)
		norm, _ := NormalizePath(got, GenericFlags)
		want, _ := NormalizePath(p, GenericFlags)
		if norm != want {
			t.Errorf("join(folder_of(%q), filename_of(%q)) = %q, want %q", p, p, norm, want)
		}
	}
}

func TestPathMatchesPattern(t *testing.T) {
	cases := []struct {
		path, pattern string
		want          bool
	}{
		{"/a/b", "/a/b", true},
		{"/a/b", "/a/*", true},
		{"/a/b", "*/b", true},
		{"/a/b", "*", true},
		{"/a/b", "/a/b/c", false},
		{"/a/b", "/a/bc", false},
		{"abcabc", "a*c", true},
		{"abcabd", "a*c", false},
		{"ab", "a*c", false},
	}
	for _, c := range cases {
		if got := PathMatchesPattern(c.path, c.pattern); got != c.want {
			t.Errorf("PathMatchesPattern(%q, %q) = %v, want %v", c.path, c.pattern, got, c.want)
		}
	}
}

func TestPathMatchesPatternNoStarIsExactMatch(t *testing.T) {
	cases := []string{"/a/b", "", "abc"}
	for _, p := range cases {
		if !PathMatchesPattern(p, p) {
			t.Errorf("PathMatchesPattern(%q, %q) = false, want true", p, p)
		}
		if PathMatchesPattern(p+"x", p) {
			t.Errorf("PathMatchesPattern(%q, %q) = true, want false", p+"x", p)
		}
	}
}

func TestRemoveFilename(t *testing.T) {
	cases := []struct {
		path, folder, filename string
	}{
		{"/a/b", "/a", "b"},
		{"/a", "/", "a"},
		{"/", "/", ""},
		{"mem:/a/b", "mem:/a", "b"},
	}
	for _, c := range cases {
		folder, filename := RemoveFilename(c.path, GenericFlags)
		if folder != c.folder || filename != c.filename {
			t.Errorf("RemoveFilename(%q) = (%q, %q), want (%q, %q)", c.path, folder, filename, c.folder, c.filename)
		}
	}
}

func TestGetHostName(t *testing.T) {
	cases := []struct {
		path, want string
	}{
		{"//host/a", "host"},
		{"//host", "host"},
		{"/a", ""},
		{"a", ""},
	}
	for _, c := range cases {
		if got := GetHostName(c.path, HostFlags); got != c.want {
			t.Errorf("GetHostName(%q) = %q, want %q", c.path, got, c.want)
		}
	}
}
