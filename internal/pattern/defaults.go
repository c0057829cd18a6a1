package pattern

// PackageMarker is the file whose presence makes a directory a Python package
const PackageMarker = "__init__.py"

// Wildcard defaults. Glob syntax reads the same strings with the same meaning.
var (
	// defaultFileExclusions leaves out non-Python files, dotfiles and
	// tilde-prefixed files
	defaultFileExclusions = []string{"!*.py", ".*", "~*"}

	// defaultDirExclusions leaves out dot directories, tilde-suffixed
	// directories and names used for caches, builds and virtualenvs
	defaultDirExclusions = []string{
		"__pycache__",
		"tmp",
		"build",
		"dist",
		"sdist",
		"wheelhouse",
		"develop-eggs",
		"parts",
		"eggs",
		"var",
		"htmlcov",
		"bin",
		"venv*",
		"pyvenv*",
		".*",
		"*~",
	}

	legacyFileInclusions = []string{"*.py"}
	legacyFileExclusions = []string{".*", "~*"}
	legacyDirInclusions  = []string{"*"}
)

// Regex defaults. (?!.) stands for end of name since matches are only anchored at the start.
var (
	defaultFileExclusionRegexes = []string{`(?!(.*\.py(?!.)))`, `^\..*`, `^~.*`}

	defaultDirExclusionRegexes = []string{
		`^__pycache__(?!.)`,
		`^tmp(?!.)`,
		`^build(?!.)`,
		`^dist(?!.)`,
		`^sdist(?!.)`,
		`^wheelhouse(?!.)`,
		`^develop-eggs(?!.)`,
		`^parts(?!.)`,
		`^eggs(?!.)`,
		`^var(?!.)`,
		`^htmlcov(?!.)`,
		`^bin(?!.)`,
		`^venv.*`,
		`^pyvenv.*`,
		`^\..*`,
		`.*~(?!.)`,
	}

	legacyFileInclusionRegexes = []string{`.*\.py(?!.)`}
	legacyFileExclusionRegexes = []string{`^\..*`, `^~.*`}
	legacyDirInclusionRegexes  = []string{`.*`}
)

// DefaultFileExclusions returns a copy of the built-in file exclusion patterns for syntax
func DefaultFileExclusions(syntax Syntax) []string {
	if syntax == SyntaxRegex {
		return clone(defaultFileExclusionRegexes)
	}
	return clone(defaultFileExclusions)
}

// DefaultDirExclusions returns a copy of the built-in directory exclusion patterns for syntax
func DefaultDirExclusions(syntax Syntax) []string {
	if syntax == SyntaxRegex {
		return clone(defaultDirExclusionRegexes)
	}
	return clone(defaultDirExclusions)
}

func defaultLegacyFileInclusions(syntax Syntax) []string {
	if syntax == SyntaxRegex {
		return legacyFileInclusionRegexes
	}
	return legacyFileInclusions
}

func defaultLegacyFileExclusions(syntax Syntax) []string {
	if syntax == SyntaxRegex {
		return legacyFileExclusionRegexes
	}
	return legacyFileExclusions
}

func defaultLegacyDirInclusions(syntax Syntax) []string {
	if syntax == SyntaxRegex {
		return legacyDirInclusionRegexes
	}
	return legacyDirInclusions
}

func clone(list []string) []string {
	return append([]string(nil), list...)
}
