/*
Package registry keeps the static fallback data of the content layer.

Collection fallbacks replace a whole collection read when the store is
unavailable or empty:

	reg := registry.New()
	reg.RegisterCollection("team_members", localTeam)

Section fallbacks fill translation bundle sections per language:

	reg.RegisterSection("en", "navigation", storagemodels.Document{"home": "Home"})

The registry is thread-safe and is populated during initialization,
typically from the embedded datasets of package fallback.
*/
package registry
