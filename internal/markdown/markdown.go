// Package markdown owns the markdown extension catalogue and the explicit
// step that applies a site configuration's extensions to a goldmark pipeline.
package markdown

import (
	"bytes"
	"log/slog"
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
	"git.home.luguber.info/inful/sitecfg/internal/site"
)

// Extension identifiers understood by Apply.
const (
	ExtTabs           = "tabs"
	ExtGFM            = "gfm"
	ExtFootnote       = "footnote"
	ExtDefinitionList = "definition-list"
	ExtTypographer    = "typographer"
)

var catalogue = map[string]goldmark.Extender{
	ExtTabs:           TabsExtension,
	ExtGFM:            extension.GFM,
	ExtFootnote:       extension.Footnote,
	ExtDefinitionList: extension.DefinitionList,
	ExtTypographer:    extension.Typographer,
}

// Known reports whether id names a catalogued extension.
func Known(id string) bool {
	_, ok := catalogue[id]
	return ok
}

// IDs returns the catalogued extension identifiers in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(catalogue))
	for id := range catalogue {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Apply registers the extensions named by ids with md, in order, and returns
// the identifiers applied. An unknown identifier stops the application and
// nothing after it is registered.
func Apply(md goldmark.Markdown, ids []string) ([]string, error) {
	applied := make([]string, 0, len(ids))
	for _, id := range ids {
		ext, ok := catalogue[id]
		if !ok {
			return applied, errors.MarkdownError("unknown markdown extension").
				WithContext("extension", id).
				Build()
		}
		ext.Extend(md)
		applied = append(applied, id)
		slog.Debug("Applied markdown extension", logfields.Extension(id))
	}
	return applied, nil
}

// NewPipeline returns a fresh goldmark instance with the extensions of cfg applied.
func NewPipeline(cfg site.SiteConfig) (goldmark.Markdown, error) {
	md := goldmark.New()
	if _, err := Apply(md, cfg.Options.MarkdownExtensions); err != nil {
		return nil, err
	}
	return md, nil
}

// Render converts src to HTML using md.
func Render(md goldmark.Markdown, src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return nil, errors.WrapError(err, errors.CategoryMarkdown, "render markdown").Build()
	}
	return buf.Bytes(), nil
}
