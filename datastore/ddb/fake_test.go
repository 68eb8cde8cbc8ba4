/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo is an in-memory API good enough for the key layout and
// conditions used by DynamodbDataStore.
type fakeDynamo struct {
	mu            sync.Mutex
	items         map[string]map[string]types.AttributeValue
	getErr        error
	queryErrs     []error
	conflictsLeft int
	queryCalls    int
	putCalls      int
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]types.AttributeValue)}
}

func attrS(av types.AttributeValue) string {
	if s, ok := av.(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func attrN(av types.AttributeValue) string {
	if n, ok := av.(*types.AttributeValueMemberN); ok {
		return n.Value
	}
	return ""
}

func itemKey(key map[string]types.AttributeValue) string {
	return attrS(key["PK"]) + "|" + attrS(key["SK"])
}

func conditionFailed() error {
	return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
}

func (f *fakeDynamo) GetItem(ctx context.Context, in *sdk.GetItemInput, _ ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	item, ok := f.items[itemKey(in.Key)]
	if !ok {
		return &sdk.GetItemOutput{}, nil
	}
	return &sdk.GetItemOutput{Item: item}, nil
}

func (f *fakeDynamo) PutItem(ctx context.Context, in *sdk.PutItemInput, _ ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.putCalls++

	key := itemKey(in.Item)
	existing, exists := f.items[key]
	if in.ConditionExpression != nil {
		if f.conflictsLeft > 0 {
			f.conflictsLeft--
			return nil, conditionFailed()
		}
		switch *in.ConditionExpression {
		case "attribute_not_exists(PK)":
			if exists {
				return nil, conditionFailed()
			}
		case "Revision = :prev":
			if !exists || attrN(existing["Revision"]) != attrN(in.ExpressionAttributeValues[":prev"]) {
				return nil, conditionFailed()
			}
		}
	}
	f.items[key] = in.Item
	return &sdk.PutItemOutput{}, nil
}

func (f *fakeDynamo) DeleteItem(ctx context.Context, in *sdk.DeleteItemInput, _ ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := itemKey(in.Key)
	if _, exists := f.items[key]; !exists && in.ConditionExpression != nil {
		return nil, conditionFailed()
	}
	delete(f.items, key)
	return &sdk.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) Query(ctx context.Context, in *sdk.QueryInput, _ ...func(*sdk.Options)) (*sdk.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queryCalls++

	if len(f.queryErrs) > 0 {
		err := f.queryErrs[0]
		f.queryErrs = f.queryErrs[1:]
		return nil, err
	}

	pk := attrS(in.ExpressionAttributeValues[":pk"])
	var matched []map[string]types.AttributeValue
	for _, item := range f.items {
		if attrS(item["PK"]) == pk {
			matched = append(matched, item)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return attrS(matched[i]["SK"]) < attrS(matched[j]["SK"]) })

	start := 0
	if in.ExclusiveStartKey != nil {
		after := attrS(in.ExclusiveStartKey["SK"])
		for start < len(matched) && attrS(matched[start]["SK"]) <= after {
			start++
		}
	}
	end := len(matched)
	if in.Limit != nil && start+int(*in.Limit) < end {
		end = start + int(*in.Limit)
	}

	out := &sdk.QueryOutput{Items: matched[start:end]}
	if end < len(matched) {
		last := matched[end-1]
		out.LastEvaluatedKey = map[string]types.AttributeValue{"PK": last["PK"], "SK": last["SK"]}
	}
	return out, nil
}
