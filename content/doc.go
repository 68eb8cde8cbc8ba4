/*
Package content is the content resolution facade of the site.

A Service combines the document store client, the normalizer, the cache and
the fallback registry:

	svc := content.NewService(client, normalize.New(langs),
	    content.WithFallbacks(reg),
	    content.WithLogger(logger),
	)

	team, _ := svc.Team(ctx, "en")
	bundle, _ := svc.GetTranslationBundle(ctx, "en")

Read operations only fail for an unsupported language. Store failures are
logged and answered from fallback data. Writes invalidate the whole cache.
*/
package content
