/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package language

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// Set is the closed set of supported language codes with its default.
type Set struct {
	supported []string
	def       string
}

// NewSet builds a Set. Codes are lower-cased; def must be one of supported.
func NewSet(def string, supported ...string) (Set, error) {
	def = normalizeCode(def)
	if len(supported) == 0 {
		return Set{}, fmt.Errorf("language set: at least one supported language is required")
	}

	codes := make([]string, 0, len(supported))
	for _, code := range supported {
		code = normalizeCode(code)
		if code == "" {
			return Set{}, fmt.Errorf("language set: empty language code")
		}
		if !slices.Contains(codes, code) {
			codes = append(codes, code)
		}
	}
	if !slices.Contains(codes, def) {
		return Set{}, fmt.Errorf("language set: default %q is not in supported set %v", def, codes)
	}
	return Set{supported: codes, def: def}, nil
}

// MustNewSet is NewSet that panics on error.
func MustNewSet(def string, supported ...string) Set {
	s, err := NewSet(def, supported...)
	if err != nil {
		panic(err)
	}
	return s
}

// IsSupported reports whether code is in the set.
func (s Set) IsSupported(code string) bool {
	return slices.Contains(s.supported, normalizeCode(code))
}

// Default returns the default language code.
func (s Set) Default() string {
	return s.def
}

// Supported returns a copy of the supported codes in configuration order.
func (s Set) Supported() []string {
	return slices.Clone(s.supported)
}

// Or returns code when supported, otherwise the default.
func (s Set) Or(code string) string {
	if s.IsSupported(code) {
		return normalizeCode(code)
	}
	return s.def
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	Code string
	// Persist is set when Code came from an explicit override and should be
	// stored as the new preference.
	Persist bool
}

// Resolver picks the language for a request.
type Resolver struct {
	set Set
}

// NewResolver returns a resolver over set.
func NewResolver(set Set) *Resolver {
	return &Resolver{set: set}
}

// Set returns the language set the resolver was built with.
func (r *Resolver) Set() Set {
	return r.set
}

// Resolve applies, in order: a supported override, a supported stored
// preference, the Accept-Language hint, the default. It never fails.
func (r *Resolver) Resolve(override, stored, hint string) Resolution {
	if r.set.IsSupported(override) {
		return Resolution{Code: normalizeCode(override), Persist: true}
	}
	if r.set.IsSupported(stored) {
		return Resolution{Code: normalizeCode(stored)}
	}
	if code, ok := r.fromHint(hint); ok {
		return Resolution{Code: code}
	}
	return Resolution{Code: r.set.def}
}

// fromHint selects the first supported non-default language named by an
// Accept-Language header. Unparseable headers fall back to a substring match.
func (r *Resolver) fromHint(hint string) (string, bool) {
	if strings.TrimSpace(hint) == "" {
		return "", false
	}

	tags, _, err := language.ParseAcceptLanguage(hint)
	if err != nil {
		lower := strings.ToLower(hint)
		for _, code := range r.set.supported {
			if code != r.set.def && strings.Contains(lower, code) {
				return code, true
			}
		}
		return "", false
	}

	for _, tag := range tags {
		base, _ := tag.Base()
		code := base.String()
		if code != r.set.def && r.set.IsSupported(code) {
			return code, true
		}
	}
	return "", false
}

func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
