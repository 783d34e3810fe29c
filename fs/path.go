// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fs defines a portable, OS-agnostic file system abstraction
// (spec §4.10/§4.11): a Path type that understands both UNIX-style and
// Windows-style (drive-letter and UNC) addresses, and a FileSystem
// interface with both a real os-backed implementation (see SystemFileSystem)
// and an in-memory test double (see the memfs subpackage).
package fs

import (
	"strings"
)

// Path is an immutable, portable file system path. It does not touch disk;
// two Paths are equal exactly when their normalized string forms match.
//
// The zero value is the relative path ".".
type Path struct {
	slash    byte     // '/' or '\\', the separator style this path was parsed with
	root     string   // "", "/", "C:\\", or a UNC prefix like "\\\\server\\share\\"
	segments []string // normalized path segments between root and the leaf
}

func isSep(b byte) bool { return b == '/' || b == '\\' }

func isDriveLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// Of parses s into a Path. The separator style ('/' vs '\\') is inferred
// from s: if it contains a backslash and no forward slash, it is treated as
// Windows-style; otherwise UNIX-style. Drive letters ("C:\Users") and UNC
// prefixes ("\\server\share") are recognized as absolute roots regardless.
func Of(s string) Path {
	sep := byte('/')
	if strings.ContainsRune(s, '\\') && !strings.ContainsRune(s, '/') {
		sep = '\\'
	}

	root, rest := "", s
	switch {
	case len(s) >= 2 && s[1] == ':' && isDriveLetter(s[0]):
		sep = '\\'
		if len(s) >= 3 && isSep(s[2]) {
			root, rest = s[:2]+string(sep), s[3:]
		} else {
			root, rest = s[:2], s[2:]
		}
	case len(s) >= 2 && isSep(s[0]) && isSep(s[1]):
		sep = '\\'
		rem := s[2:]
		serverEnd := strings.IndexByte(rem, sep)
		if serverEnd < 0 {
			root, rest = string(sep)+string(sep)+rem, ""
		} else {
			afterServer := rem[serverEnd+1:]
			shareEnd := strings.IndexByte(afterServer, sep)
			if shareEnd < 0 {
				root, rest = string(sep)+string(sep)+rem, ""
			} else {
				prefixLen := 2 + serverEnd + 1 + shareEnd + 1
				root, rest = s[:prefixLen], s[prefixLen:]
			}
		}
	case len(s) >= 1 && isSep(s[0]):
		root, rest = string(sep), s[1:]
	}

	segs := splitSegments(rest, sep)
	return Path{slash: sep, root: root, segments: normalizeSegments(segs, root != "")}
}

func splitSegments(rest string, sep byte) []string {
	var out []string
	start := 0
	for i := 0; i <= len(rest); i++ {
		if i == len(rest) || rest[i] == sep {
			if i > start {
				out = append(out, rest[start:i])
			}
			start = i + 1
		}
	}
	return out
}

func normalizeSegments(segs []string, absolute bool) []string {
	var out []string
	for _, seg := range segs {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(out) > 0 && out[len(out)-1] != ".." {
				out = out[:len(out)-1]
				continue
			}
			if absolute {
				continue
			}
			out = append(out, "..")
		default:
			out = append(out, seg)
		}
	}
	return out
}

// Segments returns a copy of the path's normalized segments between its
// root (if any) and its leaf.
func (p Path) Segments() []string { return append([]string(nil), p.segments...) }

// IsAbsolute reports whether this path has a root (drive, UNC, or leading
// separator).
func (p Path) IsAbsolute() bool { return p.root != "" }

// IsRelative is the complement of IsAbsolute.
func (p Path) IsRelative() bool { return p.root == "" }

// Name returns the last segment, or "" for the root itself.
func (p Path) Name() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

// Parent returns the enclosing directory and true, or the zero Path and
// false if p has no parent: it is a bare root, a relative path with no more
// segments to strip, or a relative path whose last segment is ".." (stepping
// above it names no concrete directory, only another ascent).
func (p Path) Parent() (Path, bool) {
	if len(p.segments) > 0 && p.segments[len(p.segments)-1] != ".." {
		return Path{slash: p.slash, root: p.root, segments: p.segments[:len(p.segments)-1]}, true
	}
	return Path{}, false
}

// Resolve returns the path reached by appending child to p, the way a shell
// resolves a relative path against a working directory. If child is
// absolute, it is returned unchanged.
func (p Path) Resolve(child Path) Path {
	if child.IsAbsolute() {
		return child
	}
	segs := make([]string, 0, len(p.segments)+len(child.segments))
	segs = append(segs, p.segments...)
	segs = append(segs, child.segments...)
	return Path{slash: p.slash, root: p.root, segments: normalizeSegments(segs, p.IsAbsolute())}
}

// ResolveString is a convenience for p.Resolve(Of(child)).
func (p Path) ResolveString(child string) Path { return p.Resolve(Of(child)) }

// RelativeTo returns the relative path that, resolved against base, yields
// p. Fails if p and base do not share the same root (one absolute, one
// relative, or different drives/UNC shares), or if base ascends (contains
// "..") past their common prefix.
func (p Path) RelativeTo(base Path) (Path, bool) {
	if p.root != base.root {
		return Path{}, false
	}
	i := 0
	for i < len(p.segments) && i < len(base.segments) && p.segments[i] == base.segments[i] {
		i++
	}
	for _, s := range base.segments[i:] {
		if s == ".." {
			return Path{}, false
		}
	}
	segs := make([]string, 0, (len(base.segments)-i)+(len(p.segments)-i))
	for range base.segments[i:] {
		segs = append(segs, "..")
	}
	segs = append(segs, p.segments[i:]...)
	return Path{slash: p.slash, segments: segs}, true
}

// String renders the path using its own separator style. A relative path
// with no segments renders as ".".
func (p Path) String() string {
	if p.root == "" && len(p.segments) == 0 {
		return "."
	}
	sep := p.slash
	if sep == 0 {
		sep = '/'
	}
	return p.root + strings.Join(p.segments, string(sep))
}

// Equal reports whether p and other normalize to the same string form.
func (p Path) Equal(other Path) bool { return p.String() == other.String() }

// HashCode returns a deterministic hash of the normalized string form,
// matching the accumulation ByteString.HashCode uses.
func (p Path) HashCode() uint32 {
	var h uint32
	for i := 0; i < len(p.String()); i++ {
		h = h*31 + uint32(p.String()[i])
	}
	return h
}
