/*
Package smartcare wires the content service of the Smart Care presentation
site.

Site content (translation sections, team members, roadmap milestones) lives in
a document store and each document may hold several languages. A request is
answered in the visitor's language, and when the store cannot be reached the
bundled local content is served instead.

Basic Usage:

	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}

	app, err := smartcare.NewApp(ctx, cfg, smartcare.DefaultBackends(), logger)
	if err != nil {
		log.Fatal(err)
	}
	http.ListenAndServe(cfg.Addr(), app.Handler())

Backends are looked up by name in a Backends registry. The defaults are
"dynamodb", "memory" (preloaded with the bundled seed content) and "none".
*/
package smartcare
