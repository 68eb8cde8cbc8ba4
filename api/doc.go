// Package api exposes the content facade over HTTP using chi.
//
// JSON endpoints live under /api. The request language is resolved once per
// request from the lang query parameter, the preference cookie and the
// Accept-Language header; /set-language/{lang} stores an explicit choice.
// Cache clearing and document writes are only served in debug mode.
package api
