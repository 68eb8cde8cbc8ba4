/*
Package language resolves the display language of a request.

A Set holds the closed list of supported codes and the default:

	set := language.MustNewSet("ru", "ru", "en")
	r := language.NewResolver(set)

	res := r.Resolve(queryLang, cookieLang, req.Header.Get("Accept-Language"))
	if res.Persist {
	    // store res.Code as the new preference
	}

Resolution never fails. Unsupported overrides and stored values are skipped.
*/
package language
