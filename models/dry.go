package models

// CodeBlock is a hashed window of normalized source, the unit of DRY cache
// storage and cross-file aggregation (§3, §4.6).
type CodeBlock struct {
	FilePath  string
	StartLine int
	EndLine   int
	Snippet   string // pre-normalization text, for violation messages
	HashValue uint64
}

// Overlaps reports whether two blocks from the same file share at least one
// line, inclusive at both endpoints.
func (b CodeBlock) Overlaps(other CodeBlock) bool {
	if b.FilePath != other.FilePath {
		return false
	}
	return b.StartLine <= other.EndLine && other.StartLine <= b.EndLine
}

// CacheRecord is the per-file DRY cache entry. A record is fresh for a file
// iff the on-disk mtime, the content length and the config hash all match
// the stored values exactly (see IsFresh; §3, §4.5).
type CacheRecord struct {
	FilePath      string
	ModTime       int64 // unix nanoseconds, as read from os.FileInfo.ModTime
	ContentLength int
	ConfigHash    string // tags the record to the tokenization config that produced it
	Blocks        []CodeBlock
}

// IsFresh reports whether this record is still valid for a file currently
// at the given mtime/content length/config hash.
func (r CacheRecord) IsFresh(modTime int64, contentLength int, configHash string) bool {
	return r.ModTime == modTime && r.ContentLength == contentLength && r.ConfigHash == configHash
}

// ConstantDefinition is a module/file-level uppercase constant assignment
// found by the duplicate-constants subsystem (§3, §4.6).
type ConstantDefinition struct {
	Name     string
	Value    string
	FilePath string
	Line     int
}
