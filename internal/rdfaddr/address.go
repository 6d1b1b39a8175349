// Package rdfaddr implements the "RDF address" identifier grammar:
// project/path/to/file.ext#Kind:SymbolPath[/qualifier...].
package rdfaddr

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/codepathfinder/depgraph/internal/graphmodel"
)

var (
	projectPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
	segmentPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Address is a parsed RDF address.
type Address struct {
	Project    string
	File       string
	Kind       graphmodel.NodeKind
	SymbolPath string // dot/slash-joined segments, possibly empty for file-level nodes
}

// Parse validates and decomposes a raw RDF address string. It rejects
// cross-project-looking input (a file path that escapes its project
// root via "..").
func Parse(raw string) (Address, error) {
	hashIdx := strings.IndexByte(raw, '#')
	if hashIdx < 0 {
		return Address{}, fmt.Errorf("rdfaddr: missing '#' separator in %q", raw)
	}
	projectFile := raw[:hashIdx]
	rest := raw[hashIdx+1:]

	slashIdx := strings.IndexByte(projectFile, '/')
	if slashIdx < 0 {
		return Address{}, fmt.Errorf("rdfaddr: missing project/file separator in %q", raw)
	}
	project := projectFile[:slashIdx]
	file := projectFile[slashIdx+1:]

	if !projectPattern.MatchString(project) {
		return Address{}, fmt.Errorf("rdfaddr: invalid project name %q", project)
	}
	canonicalFile, err := canonicalizeFilePath(file)
	if err != nil {
		return Address{}, err
	}

	colonIdx := strings.IndexByte(rest, ':')
	if colonIdx < 0 {
		return Address{}, fmt.Errorf("rdfaddr: missing kind/symbol separator in %q", raw)
	}
	kind := graphmodel.NodeKind(rest[:colonIdx])
	if !kind.Registered() {
		return Address{}, fmt.Errorf("rdfaddr: unregistered node kind %q", kind)
	}
	symbolPath := rest[colonIdx+1:]
	if symbolPath != "" {
		for _, seg := range splitSymbolPath(symbolPath) {
			if !segmentPattern.MatchString(seg) {
				return Address{}, fmt.Errorf("rdfaddr: invalid symbol segment %q in %q", seg, raw)
			}
		}
	}

	return Address{
		Project:    project,
		File:       canonicalFile,
		Kind:       kind,
		SymbolPath: symbolPath,
	}, nil
}

// splitSymbolPath splits on both '.' and '/' while preserving order.
func splitSymbolPath(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == '.' || r == '/' })
}

// canonicalizeFilePath normalizes "./" and rejects ".." that would
// escape the project root.
func canonicalizeFilePath(file string) (string, error) {
	if file == "" {
		return "", fmt.Errorf("rdfaddr: empty file path")
	}
	parts := strings.Split(file, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		switch p {
		case "", ".":
			continue
		case "..":
			if len(out) == 0 {
				return "", fmt.Errorf("rdfaddr: path %q escapes project root", file)
			}
			out = out[:len(out)-1]
		default:
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return "", fmt.Errorf("rdfaddr: path %q resolves to empty", file)
	}
	return strings.Join(out, "/"), nil
}

// String renders the canonical form of a.
func (a Address) String() string {
	var b strings.Builder
	b.WriteString(a.Project)
	b.WriteByte('/')
	b.WriteString(a.File)
	b.WriteByte('#')
	b.WriteString(string(a.Kind))
	b.WriteByte(':')
	b.WriteString(a.SymbolPath)
	return b.String()
}

// Equal compares two addresses component-wise, case-sensitive for the path portion.
func (a Address) Equal(other Address) bool {
	return a.Project == other.Project &&
		a.File == other.File &&
		a.Kind == other.Kind &&
		a.SymbolPath == other.SymbolPath
}
