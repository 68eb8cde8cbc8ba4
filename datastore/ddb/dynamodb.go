/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"

	"github.com/suparena/smartcare/errors"
	"github.com/suparena/smartcare/storagemodels"
)

// EntityType is stamped on every item written by this package.
const EntityType = "Document"

// API is the subset of the DynamoDB client used by DynamodbDataStore.
type API interface {
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
	Query(ctx context.Context, params *sdk.QueryInput, optFns ...func(*sdk.Options)) (*sdk.QueryOutput, error)
}

// DefaultIndexMap lays documents out in a single table: one partition per
// collection, one sort key per document.
var DefaultIndexMap = map[string]string{
	"PK": "COLLECTION#{collection}",
	"SK": "DOC#{id}",
}

// DynamodbDataStore implements datastore.DocumentStore on top of a single
// DynamoDB table.
type DynamodbDataStore struct {
	client    API
	tableName string
	indexMap  map[string]string
	listOpts  storagemodels.ListOptions
	now       func() time.Time
}

// documentItem is the stored item shape. Document fields live under Data so
// they can never collide with key attributes.
type documentItem struct {
	PK         string         `dynamodbav:"PK"`
	SK         string         `dynamodbav:"SK"`
	EntityType string         `dynamodbav:"EntityType"`
	Collection string         `dynamodbav:"Collection"`
	DocumentID string         `dynamodbav:"DocumentID"`
	Data       map[string]any `dynamodbav:"Data"`
	Revision   int64          `dynamodbav:"Revision"`
	UpdatedAt  string         `dynamodbav:"UpdatedAt"`
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// expandMacros replaces every {name} in the index map templates with the
// matching value from vars. Unknown macros expand to "".
func expandMacros(indexMap map[string]string, vars map[string]string) map[string]string {
	res := make(map[string]string, len(indexMap))
	for field, template := range indexMap {
		res[field] = macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			return vars[macro[1:len(macro)-1]]
		})
	}
	return res
}

// ClientConfig holds the connection settings for NewDynamoDBClient.
type ClientConfig struct {
	Region    string
	AccessKey string
	SecretKey string
	// Endpoint overrides the service endpoint, e.g. for DynamoDB Local.
	Endpoint string
}

// NewDynamoDBClient initializes a DynamoDB client. Static credentials are used
// when both keys are set; otherwise the default AWS credential chain applies.
func NewDynamoDBClient(ctx context.Context, cfg ClientConfig) (*sdk.Client, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(awsCfg, func(o *sdk.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// Option configures a DynamodbDataStore.
type Option func(*DynamodbDataStore)

// WithIndexMap overrides DefaultIndexMap. Templates may use {collection} and {id}.
func WithIndexMap(indexMap map[string]string) Option {
	return func(d *DynamodbDataStore) {
		d.indexMap = indexMap
	}
}

// WithListOptions configures paging and retries for List.
func WithListOptions(opts ...storagemodels.ListOption) Option {
	return func(d *DynamodbDataStore) {
		for _, opt := range opts {
			opt(&d.listOpts)
		}
	}
}

// WithClock overrides the clock used for UpdatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(d *DynamodbDataStore) {
		d.now = now
	}
}

// NewDynamodbDataStore constructs a store over tableName using client.
func NewDynamodbDataStore(client API, tableName string, opts ...Option) *DynamodbDataStore {
	d := &DynamodbDataStore{
		client:    client,
		tableName: tableName,
		indexMap:  DefaultIndexMap,
		listOpts:  storagemodels.DefaultListOptions(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Get retrieves a single document. A missing item yields errors.ErrNotFound.
func (d *DynamodbDataStore) Get(ctx context.Context, collection, id string) (storagemodels.Document, error) {
	item, err := d.getItem(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.NewNotFoundError(collection, id)
	}
	return storagemodels.Document(item.Data), nil
}

func (d *DynamodbDataStore) getItem(ctx context.Context, collection, id string) (*documentItem, error) {
	key := d.key(collection, id)
	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName:      &d.tableName,
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, errors.NewUnavailableError("get", fmt.Errorf("GetItem error: %w", err))
	}
	if out.Item == nil {
		return nil, nil
	}

	var item documentItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, errors.NewUnavailableError("get", fmt.Errorf("failed to unmarshal item: %w", err))
	}
	if item.Data == nil {
		item.Data = map[string]any{}
	}
	return &item, nil
}

// Set stores doc. A merge is a read-modify-write guarded by the item's
// revision, retried on conflict.
func (d *DynamodbDataStore) Set(ctx context.Context, collection, id string, doc storagemodels.Document, merge bool) error {
	if collection == "" || id == "" {
		return errors.NewValidationError("key", "collection and id are required")
	}
	if !merge {
		return d.put(ctx, collection, id, doc, 0, nil)
	}

	var lastErr error
	for attempt := 0; attempt <= d.listOpts.MaxRetries; attempt++ {
		existing, err := d.getItem(ctx, collection, id)
		if err != nil {
			return err
		}

		merged := make(map[string]any, len(doc))
		var revision int64
		if existing != nil {
			for k, v := range existing.Data {
				merged[k] = v
			}
			revision = existing.Revision
		}
		for k, v := range doc {
			merged[k] = v
		}

		err = d.put(ctx, collection, id, merged, revision+1, &revision)
		if err == nil {
			return nil
		}
		var cfe *types.ConditionalCheckFailedException
		if !stderrors.As(err, &cfe) {
			return err
		}
		lastErr = err
	}
	return errors.NewUnavailableError("set", fmt.Errorf("merge conflict after %d retries: %w", d.listOpts.MaxRetries, lastErr))
}

// put writes the item. When expected is set the write only succeeds if the
// stored revision still equals *expected (0 meaning "no item yet").
func (d *DynamodbDataStore) put(ctx context.Context, collection, id string, data map[string]any, revision int64, expected *int64) error {
	expanded := expandMacros(d.indexMap, map[string]string{"collection": collection, "id": id})
	if data == nil {
		data = map[string]any{}
	}
	if revision == 0 {
		revision = 1
	}

	av, err := attributevalue.MarshalMap(documentItem{
		PK:         expanded["PK"],
		SK:         expanded["SK"],
		EntityType: EntityType,
		Collection: collection,
		DocumentID: id,
		Data:       data,
		Revision:   revision,
		UpdatedAt:  strfmt.DateTime(d.now().UTC()).String(),
	})
	if err != nil {
		return errors.NewValidationError("document", fmt.Sprintf("failed to marshal document: %v", err))
	}

	input := &sdk.PutItemInput{
		TableName: &d.tableName,
		Item:      av,
	}
	if expected != nil {
		if *expected == 0 {
			input.ConditionExpression = aws.String("attribute_not_exists(PK)")
		} else {
			input.ConditionExpression = aws.String("Revision = :prev")
			input.ExpressionAttributeValues = map[string]types.AttributeValue{
				":prev": &types.AttributeValueMemberN{Value: strconv.FormatInt(*expected, 10)},
			}
		}
	}

	if _, err := d.client.PutItem(ctx, input); err != nil {
		var cfe *types.ConditionalCheckFailedException
		if stderrors.As(err, &cfe) {
			return fmt.Errorf("put condition failed: %w", err)
		}
		return errors.NewUnavailableError("set", fmt.Errorf("PutItem failed: %w", err))
	}
	return nil
}

// Delete removes a document. Deleting a missing document yields errors.ErrNotFound.
func (d *DynamodbDataStore) Delete(ctx context.Context, collection, id string) error {
	_, err := d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName:           &d.tableName,
		Key:                 d.key(collection, id),
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if stderrors.As(err, &cfe) {
			return errors.NewNotFoundError(collection, id)
		}
		return errors.NewUnavailableError("delete", fmt.Errorf("failed to delete item in DynamoDB: %w", err))
	}
	return nil
}

func (d *DynamodbDataStore) key(collection, id string) map[string]types.AttributeValue {
	expanded := expandMacros(d.indexMap, map[string]string{"collection": collection, "id": id})
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: expanded["PK"]},
		"SK": &types.AttributeValueMemberS{Value: expanded["SK"]},
	}
}
