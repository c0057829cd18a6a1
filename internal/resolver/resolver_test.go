package resolver

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildPath(elems ...string) string {
	return filepath.Join(append([]string{string(filepath.Separator), "usr"}, elems...)...)
}

// nestedRoots registers both the parent of some_package and the parent of
// inner_module as search roots
func nestedRoots() (SearchRoots, string) {
	packagePath := buildPath("find_module_name", "some_package")
	innerModulePath := filepath.Join(packagePath, "inner_module")
	filePath := filepath.Join(innerModulePath, "foo", "bar.py")

	return SearchRoots{filepath.Dir(packagePath), filepath.Dir(innerModulePath)}, filePath
}

func TestFindOutermostModuleName(t *testing.T) {
	roots, filePath := nestedRoots()

	name, ok := New(roots).FindModuleName(filePath, false)
	require.True(t, ok)
	assert.Equal(t, "some_package.inner_module.foo.bar", name)
}

func TestFindInnermostModuleName(t *testing.T) {
	roots, filePath := nestedRoots()

	name, ok := New(roots).FindModuleName(filePath, true)
	require.True(t, ok)
	assert.Equal(t, "inner_module.foo.bar", name)
}

func TestFindModuleNameRootOrderDoesNotMatter(t *testing.T) {
	roots, filePath := nestedRoots()
	reversed := SearchRoots{roots[1], roots[0]}

	outer, _ := New(reversed).FindModuleName(filePath, false)
	inner, _ := New(reversed).FindModuleName(filePath, true)
	assert.Equal(t, "some_package.inner_module.foo.bar", outer)
	assert.Equal(t, "inner_module.foo.bar", inner)
}

func TestFindNonexistentModuleName(t *testing.T) {
	filePath := buildPath("find_nonexistent_module_name", "bar.py")

	name, ok := New(SearchRoots{buildPath("elsewhere")}).FindModuleName(filePath, false)
	assert.False(t, ok)
	assert.Empty(t, name)

	name, ok = New(nil).FindModuleName(filePath, true)
	assert.False(t, ok)
	assert.Empty(t, name)
}

func TestFindModuleNameDirectChild(t *testing.T) {
	root := buildPath("project")

	name, ok := FindModuleName(filepath.Join(root, "setup.py"), []string{root}, false)
	require.True(t, ok)
	assert.Equal(t, "setup", name)
}

func TestFindModuleNameCleansRoots(t *testing.T) {
	root := buildPath("project")
	unclean := root + string(filepath.Separator) + "." + string(filepath.Separator)

	name, ok := FindModuleName(filepath.Join(root, "pkg", "mod.py"), []string{"", unclean}, false)
	require.True(t, ok)
	assert.Equal(t, "pkg.mod", name)
}

func TestFindModuleNameReadsRootsAtCallTime(t *testing.T) {
	root := buildPath("late")
	filePath := filepath.Join(root, "pkg", "mod.py")

	var roots SearchRoots
	r := New(&roots)

	_, ok := r.FindModuleName(filePath, false)
	require.False(t, ok)

	roots = append(roots, root)
	name, ok := r.FindModuleName(filePath, false)
	require.True(t, ok)
	assert.Equal(t, "pkg.mod", name)
}

func TestFindModuleNameCaseInsensitive(t *testing.T) {
	roots := SearchRoots{buildPath("a", "package")}
	filePath := buildPath("A", "Package", "module.py")

	_, ok := New(roots, WithPathsEqual(func(a, b string) bool { return a == b })).FindModuleName(filePath, false)
	assert.False(t, ok)

	name, ok := New(roots, WithPathsEqual(strings.EqualFold)).FindModuleName(filePath, false)
	require.True(t, ok)
	assert.Equal(t, "module", name)
}

func TestStem(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"bar.py", "bar"},
		{"archive.tar.gz", "archive.tar"},
		{"Makefile", "Makefile"},
		{".hidden", ".hidden"},
		{"..double", "..double"},
		{".hidden.py", ".hidden"},
		{"trailing.", "trailing"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := stem(tt.input)
			if result != tt.expected {
				t.Errorf("stem(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestRootsFromEnv(t *testing.T) {
	sep := string(filepath.ListSeparator)
	value := buildPath("one") + sep + sep + buildPath("two") + sep + " "

	roots := RootsFromEnv(value)
	assert.Equal(t, SearchRoots{buildPath("one"), buildPath("two")}, roots)
	assert.Empty(t, RootsFromEnv(""))
}

func TestRootsFromPythonPath(t *testing.T) {
	t.Setenv("PYTHONPATH", buildPath("site"))
	assert.Equal(t, SearchRoots{buildPath("site")}, RootsFromPythonPath())
}
