/*
Package errors provides semantic error types for the Smart Care content layer.

The taxonomy mirrors how the content facade treats each failure:

	var (
	    ErrNotFound            = errors.New("document not found")
	    ErrUnavailable         = errors.New("document store unavailable")
	    ErrUnsupportedLanguage = errors.New("unsupported language")
	    ErrInvalidInput        = errors.New("invalid input")
	)

ErrUnavailable is never surfaced by read operations; the facade serves fallback
data instead. ErrNotFound is a normal empty result. ErrUnsupportedLanguage is the
only error a reader sees, and only when it asks for a language directly.

Usage:

	doc, err := store.Get(ctx, "translations", "en_hero")
	switch {
	case errors.IsNotFound(err):
	    // render without the section
	case errors.IsUnavailable(err):
	    // serve fallback data
	}

Typed errors implement Is so that errors.Is matches the sentinel through any
amount of %w wrapping.
*/
package errors
