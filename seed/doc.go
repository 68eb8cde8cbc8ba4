// Package seed writes the bilingual site content into the document store.
package seed
