package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeBlock_Overlaps(t *testing.T) {
	a := CodeBlock{FilePath: "x.py", StartLine: 1, EndLine: 5}
	b := CodeBlock{FilePath: "x.py", StartLine: 5, EndLine: 8}
	c := CodeBlock{FilePath: "x.py", StartLine: 6, EndLine: 8}
	d := CodeBlock{FilePath: "y.py", StartLine: 1, EndLine: 5}

	require.True(t, a.Overlaps(b))
	require.False(t, a.Overlaps(c))
	require.False(t, a.Overlaps(d))
}

func TestCacheRecord_IsFresh(t *testing.T) {
	r := CacheRecord{ModTime: 100, ContentLength: 10, ConfigHash: "abc"}
	require.True(t, r.IsFresh(100, 10, "abc"))
	require.False(t, r.IsFresh(101, 10, "abc"))
	require.False(t, r.IsFresh(100, 11, "abc"))
	require.False(t, r.IsFresh(100, 10, "xyz"))
}
