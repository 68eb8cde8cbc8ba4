/*
Package ddb provides a DynamoDB implementation of the DocumentStore interface.

Documents share one table. Keys come from an index map whose templates are
expanded with the collection name and document ID:

	indexMap := map[string]string{
	    "PK": "COLLECTION#{collection}", // Becomes "COLLECTION#team_members"
	    "SK": "DOC#{id}",                // Becomes "DOC#m1"
	}

Each item stores the document fields under a Data map attribute next to
EntityType, Collection, DocumentID, a Revision counter and an UpdatedAt
date-time stamp. Merge writes are read-modify-write guarded by Revision.

List pages through the collection partition and retries throttling and
internal errors with linear backoff:

	store := ddb.NewDynamodbDataStore(client, "smartcare",
	    ddb.WithListOptions(
	        storagemodels.WithPageSize(25),
	        storagemodels.WithMaxRetries(3),
	    ),
	)

Every transport failure is reported as errors.ErrUnavailable; a missing item
as errors.ErrNotFound.
*/
package ddb
