// Package registry holds the immutable category catalog: per category key the
// label, security level and the two permission reference sets (required and
// optional) that bound what any role of that category may ever hold.
// The catalog is built once at process start from configuration and is
// read-only afterwards.
package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/go-permafrost/permafrost/internal/config"
)

// Ref is a parsed permission reference in "namespace.codename" form.
type Ref struct {
	Namespace string
	Codename  string
}

// String returns the reference in its configuration form.
func (r Ref) String() string {
	return r.Namespace + "." + r.Codename
}

// ParseRef parses a "namespace.codename" string into a Ref.
// The codename itself may contain dots; the namespace may not.
func ParseRef(s string) (Ref, error) {
	namespace, codename, found := strings.Cut(s, ".")
	if !found || namespace == "" || codename == "" {
		return Ref{}, errors.Wrap(ErrMalformedRef, fmt.Sprintf("%q", s))
	}

	return Ref{Namespace: namespace, Codename: codename}, nil
}

// Category is one validated entry of the catalog.
type Category struct {
	Key      string
	Label    string
	Level    int
	Required []Ref
	Optional []Ref
}

// AllRefs returns required followed by optional references.
func (c Category) AllRefs() []Ref {
	out := make([]Ref, 0, len(c.Required)+len(c.Optional))
	out = append(out, c.Required...)
	out = append(out, c.Optional...)

	return out
}

// Registry is the process-wide category catalog.
type Registry struct {
	categories map[string]Category
}

// New builds a Registry from the configured catalog. All validation happens
// here rather than at use time: empty catalog, malformed references and
// references listed as both required and optional are construction errors.
func New(catalog map[string]config.Category) (*Registry, error) {
	if len(catalog) == 0 {
		return nil, ErrNoCategoriesConfigured
	}

	validate := validator.New()
	categories := make(map[string]Category, len(catalog))

	for key, entry := range catalog {
		if err := validate.Struct(entry); err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("category %q", key))
		}

		cat := Category{
			Key:   key,
			Label: entry.Label,
			Level: entry.Level,
		}

		var err error

		if cat.Required, err = parseRefs(entry.Required); err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("category %q required", key))
		}

		if cat.Optional, err = parseRefs(entry.Optional); err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("category %q optional", key))
		}

		if ref, overlap := overlapping(cat.Required, cat.Optional); overlap {
			return nil, errors.Wrap(ErrOverlappingRefs, fmt.Sprintf("category %q permission %s", key, ref))
		}

		categories[key] = cat
	}

	return &Registry{categories: categories}, nil
}

// Lookup returns the category for the given key.
func (r *Registry) Lookup(key string) (Category, error) {
	cat, ok := r.categories[key]
	if !ok {
		return Category{}, errors.Wrap(ErrCategoryNotFound, fmt.Sprintf("%q", key))
	}

	return cat, nil
}

// All returns every category, ordered by level descending then key, the order
// presentation layers list them in.
func (r *Registry) All() []Category {
	out := make([]Category, 0, len(r.categories))
	for _, cat := range r.categories {
		out = append(out, cat)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level > out[j].Level
		}

		return out[i].Key < out[j].Key
	})

	return out
}

func parseRefs(raw []string) ([]Ref, error) {
	refs := make([]Ref, 0, len(raw))

	for _, s := range raw {
		ref, err := ParseRef(s)
		if err != nil {
			return nil, err
		}

		refs = append(refs, ref)
	}

	return refs, nil
}

func overlapping(required, optional []Ref) (Ref, bool) {
	seen := make(map[Ref]struct{}, len(required))
	for _, ref := range required {
		seen[ref] = struct{}{}
	}

	for _, ref := range optional {
		if _, ok := seen[ref]; ok {
			return ref, true
		}
	}

	return Ref{}, false
}
