package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
	"git.home.luguber.info/inful/sitecfg/internal/site"
)

// Format selects the encoding of the exported configuration.
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatModule Format = "mjs" // ES module with a default export
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatModule}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatModule:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", errors.ConfigError(fmt.Sprintf("unsupported export format %q", s)).Build()
	}
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".mjs", ".js":
		return FormatModule, true
	default:
		return "", false
	}
}

// Encode writes cfg to w in the given format.
func Encode(w io.Writer, cfg site.SiteConfig, format Format) error {
	data, err := Marshal(cfg, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Marshal returns the encoded document.
func Marshal(cfg site.SiteConfig, format Format) ([]byte, error) {
	doc := NewDocument(cfg)
	var buf bytes.Buffer

	switch format {
	case FormatJSON:
		if err := encodeJSON(&buf, doc); err != nil {
			return nil, err
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, errors.WrapError(err, errors.CategoryBuild, "encode yaml").Build()
		}
		if err := enc.Close(); err != nil {
			return nil, errors.WrapError(err, errors.CategoryBuild, "encode yaml").Build()
		}
	case FormatModule:
		fmt.Fprintf(&buf, "// Generated by sitecfg from %s. Do not edit.\n", cfg.Snapshot)
		buf.WriteString("export default ")
		if err := encodeJSON(&buf, doc); err != nil {
			return nil, err
		}
	default:
		return nil, errors.BuildError(fmt.Sprintf("unsupported export format %q", format)).Build()
	}
	return buf.Bytes(), nil
}

func encodeJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return errors.WrapError(err, errors.CategoryBuild, "encode json").Build()
	}
	return nil
}

// WriteFile writes cfg to path atomically, creating parent directories.
func WriteFile(path string, cfg site.SiteConfig, format Format) error {
	data, err := Marshal(cfg, format)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "create output directory").WithContext("path", dir).Build()
	}

	tmp, err := os.CreateTemp(dir, ".sitecfg-*")
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "create temp file").WithContext("path", dir).Build()
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.WrapError(err, errors.CategoryFileSystem, "write export").WithContext("path", tmpName).Build()
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "close export").WithContext("path", tmpName).Build()
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "chmod export").WithContext("path", tmpName).Build()
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "rename export").WithContext("path", path).Build()
	}

	slog.Info("Wrote site configuration",
		logfields.Path(path),
		logfields.Format(string(format)),
		logfields.Profile(cfg.Snapshot.Profile),
		logfields.Version(cfg.Snapshot.Version))
	return nil
}
