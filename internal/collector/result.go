package collector

import "sort"

// Entry is a collected file
type Entry struct {
	// Name is the base name of the file
	Name string `json:"name" yaml:"name"`

	// Path is the absolute path of the file
	Path string `json:"path" yaml:"path"`

	// Size is the file size in bytes, of the target when Symlink is set
	Size int64 `json:"size" yaml:"size"`

	// Symlink is set when the entry was reached through a symbolic link
	Symlink bool `json:"symlink,omitempty" yaml:"symlink,omitempty"`
}

// Result is a set of entries keyed by path
type Result struct {
	entries map[string]Entry
}

// NewResult creates an empty Result
func NewResult() *Result {
	return &Result{entries: make(map[string]Entry)}
}

// Add inserts e and reports whether its path was new
func (r *Result) Add(e Entry) bool {
	if _, ok := r.entries[e.Path]; ok {
		return false
	}
	r.entries[e.Path] = e
	return true
}

// Merge adds every entry of other
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	for _, e := range other.entries {
		r.Add(e)
	}
}

// Len returns the number of entries
func (r *Result) Len() int {
	return len(r.entries)
}

// Contains reports whether path was collected
func (r *Result) Contains(path string) bool {
	_, ok := r.entries[path]
	return ok
}

// Paths returns the collected paths in lexical order
func (r *Result) Paths() []string {
	paths := make([]string, 0, len(r.entries))
	for p := range r.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Entries returns the collected entries ordered by path
func (r *Result) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, p := range r.Paths() {
		out = append(out, r.entries[p])
	}
	return out
}

// TotalSize sums the size of every entry
func (r *Result) TotalSize() int64 {
	var total int64
	for _, e := range r.entries {
		total += e.Size
	}
	return total
}
