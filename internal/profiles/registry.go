// Package profiles holds the named, version-tagged snapshots of the site
// configuration. Which snapshot is authoritative is always an explicit
// selection made by the caller; there is no default profile.
package profiles

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"

	"git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/site"
)

// Profile is a named snapshot of the site configuration.
type Profile struct {
	Name        string
	Version     string
	Description string
	// Define records the snapshot's literal data on b.
	Define func(b *site.Builder)
}

// Build assembles the profile's configuration. It has no side effects.
func (p Profile) Build() site.SiteConfig {
	b := site.New(p.Name, p.Version)
	if p.Define != nil {
		p.Define(b)
	}
	return b.Build()
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Profile{}
)

// Register adds a profile. Names must be unique and versions must be semver.
func Register(p Profile) error {
	if p.Name == "" {
		return errors.ConfigError("profile name is empty").Build()
	}
	if strings.Contains(p.Name, "@") {
		return errors.ConfigError("profile name must not contain '@'").WithContext("profile", p.Name).Build()
	}
	if _, err := semver.StrictNewVersion(p.Version); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid profile version").
			WithContext("profile", p.Name).
			Build()
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[p.Name]; exists {
		return errors.ConfigError("profile already registered").WithContext("profile", p.Name).Build()
	}
	registry[p.Name] = p
	return nil
}

func mustRegister(p Profile) {
	if err := Register(p); err != nil {
		panic(fmt.Sprintf("register profile %s: %v", p.Name, err))
	}
}

// Names returns the registered profile names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns the registered profiles sorted by name.
func All() []Profile {
	names := Names()
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]Profile, 0, len(names))
	for _, name := range names {
		out = append(out, registry[name])
	}
	return out
}

// Select resolves a selector of the form "name" or "name@constraint",
// for example "tabbed@^2".
func Select(selector string) (Profile, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return Profile{}, errors.ConfigError("no profile selected").
			WithContext("available", strings.Join(Names(), ", ")).
			Build()
	}

	name, constraint, hasConstraint := strings.Cut(selector, "@")

	registryMu.RLock()
	p, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return Profile{}, errors.ConfigError(fmt.Sprintf("unknown profile %q", name)).
			WithContext("available", strings.Join(Names(), ", ")).
			Build()
	}
	if !hasConstraint {
		return p, nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return Profile{}, errors.WrapError(err, errors.CategoryConfig, "invalid version constraint").
			WithContext("selector", selector).
			Build()
	}
	v := semver.MustParse(p.Version)
	if !c.Check(v) {
		return Profile{}, errors.ConfigError(fmt.Sprintf("profile %s@%s does not satisfy %q", p.Name, p.Version, constraint)).
			WithContext("selector", selector).
			Build()
	}
	return p, nil
}
