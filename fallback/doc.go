// Package fallback embeds the static content of the site: the local dataset
// served while the document store is unreachable, and the bilingual seed
// content written into an empty store.
package fallback
