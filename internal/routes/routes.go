// Package routes discovers the content routes a docs directory provides, so
// internal links in the site configuration can be checked against real pages.
package routes

import (
	"bufio"
	"bytes"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/frontmatter"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
)

// Route is a page the site generator will serve.
type Route struct {
	Path  string // URL path, e.g. "/intro/getting-started"
	File  string // Source file relative to the docs directory, slash separated
	Title string
}

// Discover walks docsDir for markdown pages and returns their routes sorted by path.
func Discover(docsDir string) ([]Route, error) {
	info, err := os.Stat(docsDir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryNotFound, "docs directory not accessible").
			WithContext("path", docsDir).
			Build()
	}
	if !info.IsDir() {
		return nil, errors.NotFoundError("docs path is not a directory").WithContext("path", docsDir).Build()
	}

	var out []Route
	err = filepath.WalkDir(docsDir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if p != docsDir && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			return nil
		}
		rel, err := filepath.Rel(docsDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		content, err := os.ReadFile(p) // #nosec G304 -- path comes from walking docsDir
		if err != nil {
			return err
		}
		out = append(out, Route{Path: PathFor(rel), File: rel, Title: titleFor(rel, content)})
		return nil
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "walk docs directory").
			WithContext("path", docsDir).
			Build()
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	slog.Debug("Discovered content routes", logfields.Path(docsDir), logfields.Count(len(out)))
	return out, nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules"
}

// PathFor maps a slash-separated markdown file path to its URL path.
func PathFor(rel string) string {
	trimmed := strings.TrimSuffix(rel, path.Ext(rel))
	if trimmed == "index" {
		return "/"
	}
	if strings.HasSuffix(trimmed, "/index") {
		return "/" + strings.TrimSuffix(trimmed, "index")
	}
	return "/" + trimmed
}

var titleCaser = cases.Title(language.English)

func titleFor(rel string, content []byte) string {
	fm, body, _, err := frontmatter.Split(content)
	if err == nil {
		if page, perr := frontmatter.Parse(fm); perr == nil && page.Title != "" {
			return page.Title
		}
	} else {
		body = content
	}

	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if heading, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(heading)
		}
	}

	slug := path.Base(strings.TrimSuffix(rel, path.Ext(rel)))
	if slug == "index" {
		dir := path.Dir(rel)
		if dir == "." {
			return "Home"
		}
		slug = path.Base(dir)
	}
	return titleCaser.String(strings.NewReplacer("-", " ", "_", " ").Replace(slug))
}

// Set answers whether a site link resolves to a discovered route.
type Set map[string]Route

// NewSet indexes routes by normalized path.
func NewSet(routes []Route) Set {
	s := make(Set, len(routes))
	for _, r := range routes {
		s[Normalize(r.Path)] = r
	}
	return s
}

// Has reports whether link resolves to a known route.
func (s Set) Has(link string) bool {
	_, ok := s[Normalize(link)]
	return ok
}

// Normalize strips the query, fragment, page extension and trailing slash
// from an internal link.
func Normalize(link string) string {
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		link = link[:i]
	}
	for _, ext := range []string{".html", ".md"} {
		link = strings.TrimSuffix(link, ext)
	}
	if len(link) > 1 {
		link = strings.TrimRight(link, "/")
	}
	if link == "" {
		return "/"
	}
	return link
}
