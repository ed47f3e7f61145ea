// Package site holds the documentation site configuration model and the
// builder that assembles it.
//
// A SiteConfig is produced once per build invocation by (*Builder).Build and
// is treated as immutable afterwards: callers pass it by value to the
// exporters, the validation layer and the markdown pipeline. Building never
// registers anything with a markdown engine; that is the separate, explicit
// markdown.Apply step.
package site
