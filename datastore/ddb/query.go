/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/smartcare/errors"
	"github.com/suparena/smartcare/storagemodels"
)

// List returns every document of a collection, following LastEvaluatedKey
// until the partition is exhausted.
func (d *DynamodbDataStore) List(ctx context.Context, collection string) ([]storagemodels.Record, error) {
	expanded := expandMacros(d.indexMap, map[string]string{"collection": collection})
	input := &sdk.QueryInput{
		TableName:              &d.tableName,
		KeyConditionExpression: aws.String("PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: expanded["PK"]},
		},
		Limit: aws.Int32(d.listOpts.PageSize),
	}

	var records []storagemodels.Record
	for {
		out, err := d.queryWithRetry(ctx, input)
		if err != nil {
			return nil, errors.NewUnavailableError("list", err)
		}

		for _, raw := range out.Items {
			var item documentItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, errors.NewUnavailableError("list", fmt.Errorf("failed to unmarshal item: %w", err))
			}
			if item.EntityType != "" && item.EntityType != EntityType {
				continue
			}
			if item.Data == nil {
				item.Data = map[string]any{}
			}
			records = append(records, storagemodels.Record{
				ID:       item.DocumentID,
				Document: storagemodels.Document(item.Data),
			})
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return records, nil
}

// queryWithRetry executes a query with linear backoff on retryable errors
func (d *DynamodbDataStore) queryWithRetry(ctx context.Context, input *sdk.QueryInput) (*sdk.QueryOutput, error) {
	var lastErr error

	for attempt := 0; attempt <= d.listOpts.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		out, err := d.client.Query(ctx, input)
		if err == nil {
			return out, nil
		}

		lastErr = err
		if !isRetryableError(err) {
			return nil, err
		}

		// Don't sleep after last attempt
		if attempt < d.listOpts.MaxRetries {
			backoff := time.Duration(attempt+1) * d.listOpts.RetryBackoff
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("query failed after %d retries: %w", d.listOpts.MaxRetries, lastErr)
}

// isRetryableError determines if a DynamoDB error is retryable
func isRetryableError(err error) bool {
	var throughput *types.ProvisionedThroughputExceededException
	var limit *types.RequestLimitExceeded
	var internal *types.InternalServerError
	switch {
	case stderrors.As(err, &throughput), stderrors.As(err, &limit), stderrors.As(err, &internal):
		return true
	}

	var retryable interface{ IsRetryable() bool }
	if stderrors.As(err, &retryable) {
		return retryable.IsRetryable()
	}
	return false
}
