/*
Package storagemodels defines the data structures shared by the document store
backends and the content layer.

Key Types:

Document:
A raw field mapping as stored. It may be split by language at the top level,
hold per-field language mappings, or be flat:

	storagemodels.Document{
	    "ru": map[string]any{"title": "Тест"},
	    "en": map[string]any{"title": "Test"},
	}

Result:
The classified outcome of a store call, produced by datastore.Client:

	res := client.Get(ctx, "translations", "en_hero")
	switch res.Status {
	case storagemodels.StatusFound:
	case storagemodels.StatusNotFound:
	case storagemodels.StatusUnavailable:
	}

ListOptions:
Paging and retry configuration for backends that list collections page by page:

	opts := []ListOption{
	    WithPageSize(25),
	    WithMaxRetries(3),
	}
*/
package storagemodels
