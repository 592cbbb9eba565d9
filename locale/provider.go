// Package locale supplies locale-appropriate names, companies, title shapes and
// review text for generated books.
//
// Every provider draws exclusively from the *gofakeit.Faker it is handed, so a
// faker seeded with the same numeric seed always yields the same text.
package locale

import (
	"sort"

	"github.com/brianvoe/gofakeit/v7"

	"bookforge/seedtree"
)

// DefaultLocale is used whenever a requested locale is not registered.
const DefaultLocale = "en-US"

// TitleShape renders one combinatorial title template.
type TitleShape func(f *gofakeit.Faker) string

// Provider produces locale-specific text.
type Provider interface {
	// Code is the BCP 47 tag the provider is registered under.
	Code() string
	FullName(f *gofakeit.Faker) string
	Company(f *gofakeit.Faker) string
	// TitleShapes is the ordered table a title shape is picked from.
	TitleShapes() []TitleShape
	// FinishTitle applies locale casing and any locale-specific length cap.
	FinishTitle(title string) string
	ReviewText(f *gofakeit.Faker) string
}

// NewFaker returns a faker whose every draw comes from the numeric seed.
func NewFaker(seed int32) *gofakeit.Faker {
	return gofakeit.NewFaker(seedtree.NewNumericStream(seed), false)
}

// Registry maps locale codes to providers.
type Registry struct {
	providers map[string]Provider
	fallback  Provider
}

// NewRegistry builds a registry. The provider registered for DefaultLocale is
// the fallback; if none is given, the first provider is.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.Code()] = p
		if r.fallback == nil {
			r.fallback = p
		}
	}
	if p, ok := r.providers[DefaultLocale]; ok {
		r.fallback = p
	}
	return r
}

// Default returns a registry with en-US, de-DE and ja-JP.
func Default() *Registry {
	return NewRegistry(EnglishUS{}, GermanDE{}, JapaneseJP{})
}

// Lookup returns the provider registered for code.
func (r *Registry) Lookup(code string) (Provider, bool) {
	p, ok := r.providers[code]
	return p, ok
}

// Resolve returns the provider for code, falling back to the default locale.
// An unknown locale is not an error.
func (r *Registry) Resolve(code string) Provider {
	if p, ok := r.providers[code]; ok {
		return p
	}
	return r.fallback
}

// Codes lists the registered locale codes in sorted order.
func (r *Registry) Codes() []string {
	codes := make([]string, 0, len(r.providers))
	for code := range r.providers {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// WithFallback returns a copy of the registry whose fallback is the
// provider for code. ok is false, and r is returned unchanged, when code is
// not registered.
func (r *Registry) WithFallback(code string) (reg *Registry, ok bool) {
	p, found := r.providers[code]
	if !found {
		return r, false
	}
	cp := &Registry{providers: make(map[string]Provider, len(r.providers)), fallback: p}
	for k, v := range r.providers {
		cp.providers[k] = v
	}
	return cp, true
}

// Fallback returns the code used for unknown locales.
func (r *Registry) Fallback() string {
	if r.fallback == nil {
		return ""
	}
	return r.fallback.Code()
}
