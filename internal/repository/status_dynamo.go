package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/strixcodecipher/relicsneb/internal/models"
)

// DynamoAPI is the subset of *dynamodb.Client used by StatusDynamo.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// StatusDynamo stores status checks in a DynamoDB table keyed by id.
type StatusDynamo struct {
	client    DynamoAPI
	tableName string
}

func NewStatusDynamo(client DynamoAPI, tableName string) *StatusDynamo {
	return &StatusDynamo{client: client, tableName: tableName}
}

var _ StatusCheckRepo = (*StatusDynamo)(nil)

func (r *StatusDynamo) Insert(ctx context.Context, doc models.StatusCheckDocument) error {
	item, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal status check: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("insert status check %q: %w", doc.ID, ErrDuplicateID)
		}
		return fmt.Errorf("failed to store status check in dynamodb: %w", err)
	}
	return nil
}

// Find scans pages until limit items are collected or the table is exhausted.
// Items that do not decode are skipped and reported in a *DecodeError.
func (r *StatusDynamo) Find(ctx context.Context, limit int) ([]models.StatusCheckDocument, error) {
	limit = clampLimit(limit)
	out := make([]models.StatusCheckDocument, 0, 64)
	skipped := &DecodeError{}

	var startKey map[string]types.AttributeValue
	for len(out) < limit {
		page, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			Limit:             aws.Int32(int32(limit - len(out))),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("scan status checks: %w", err)
		}

		for _, it := range page.Items {
			doc, err := unmarshalStatusCheck(it)
			if err != nil {
				skipped.skip(doc.ID, err)
				continue
			}
			out = append(out, doc)
		}

		if len(page.LastEvaluatedKey) == 0 {
			break
		}
		startKey = page.LastEvaluatedKey
	}

	if len(out) > limit {
		out = out[:limit]
	}
	return out, skipped.errOrNil()
}

// unmarshalStatusCheck decodes one item. The timestamp must be a string
// attribute; the id is filled in whenever it could be read.
func unmarshalStatusCheck(it map[string]types.AttributeValue) (models.StatusCheckDocument, error) {
	var doc models.StatusCheckDocument
	if id, ok := it["id"].(*types.AttributeValueMemberS); ok {
		doc.ID = id.Value
	}

	ts, ok := it["timestamp"].(*types.AttributeValueMemberS)
	if !ok {
		return doc, fmt.Errorf("timestamp attribute is %T, want string", it["timestamp"])
	}

	rest := make(map[string]types.AttributeValue, len(it))
	for k, v := range it {
		if k != "timestamp" {
			rest[k] = v
		}
	}
	if err := attributevalue.UnmarshalMap(rest, &doc); err != nil {
		return doc, fmt.Errorf("failed to unmarshal status check: %w", err)
	}
	doc.Timestamp = ts.Value
	return doc, nil
}
