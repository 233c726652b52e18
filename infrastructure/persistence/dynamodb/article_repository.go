// Package dynamodb implements the article record store on a DynamoDB table
// keyed by userId (partition) and articleId (sort).
package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"wikicollector-backend/application/ports"
	"wikicollector-backend/domain/article"
	appErrors "wikicollector-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

const (
	attrUserID        = "userId"
	attrArticleID     = "articleId"
	attrTitle         = "title"
	attrContent       = "content"
	attrBackupContent = "backupContent"
	attrUpdatedAt     = "updatedAt"
)

// TableAPI is the subset of the DynamoDB client used by the repository.
type TableAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// ArticleRepository implements ports.ArticleRepository using DynamoDB
type ArticleRepository struct {
	client    TableAPI
	tableName string
	logger    *zap.Logger
}

// NewArticleRepository creates a new ArticleRepository
func NewArticleRepository(client TableAPI, tableName string, logger *zap.Logger) *ArticleRepository {
	return &ArticleRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

func key(userID, articleID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrUserID:    &types.AttributeValueMemberS{Value: userID},
		attrArticleID: &types.AttributeValueMemberS{Value: articleID},
	}
}

// Get reads a single article; a missing item is nil, nil
func (r *ArticleRepository) Get(ctx context.Context, userID, articleID string) (*article.Article, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       key(userID, articleID),
	})
	if err != nil {
		return nil, appErrors.NewDatabaseError("GetItem", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var a article.Article
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal article: %w", err)
	}
	return &a, nil
}

// Put writes the full record
func (r *ArticleRepository) Put(ctx context.Context, a article.Article) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("failed to marshal article: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	}); err != nil {
		r.logger.Error("Failed to save article to DynamoDB",
			zap.String("userID", a.UserID),
			zap.String("articleID", a.ArticleID),
			zap.Error(err),
		)
		return appErrors.NewDatabaseError("PutItem", err)
	}
	return nil
}

// Update applies a partial update in a single UpdateItem call. The current
// content is copied into backupContent by the same expression that sets the
// new content, so the rotation is atomic per item.
func (r *ArticleRepository) Update(ctx context.Context, userID, articleID string, changes article.Changes, now string) (*article.Article, error) {
	update := expression.Set(expression.Name(attrUpdatedAt), expression.Value(now))
	if changes.Title != nil {
		update = update.Set(expression.Name(attrTitle), expression.Value(*changes.Title))
	}
	if changes.Content != nil {
		update = update.
			Set(expression.Name(attrBackupContent), expression.Name(attrContent)).
			Set(expression.Name(attrContent), expression.Value(*changes.Content))
	}

	// Refuse to create a partial record for an unknown id
	condition := expression.AttributeExists(expression.Name(attrArticleID))

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(condition).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       key(userID, articleID),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, appErrors.NewNotFoundError("article")
		}
		return nil, appErrors.NewDatabaseError("UpdateItem", err)
	}

	var a article.Article
	if err := attributevalue.UnmarshalMap(out.Attributes, &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal article: %w", err)
	}
	return &a, nil
}

// Delete removes the item; deleting a missing item succeeds
func (r *ArticleRepository) Delete(ctx context.Context, userID, articleID string) error {
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       key(userID, articleID),
	}); err != nil {
		return appErrors.NewDatabaseError("DeleteItem", err)
	}
	return nil
}

// Scan reads one page of the whole table
func (r *ArticleRepository) Scan(ctx context.Context, cursor ports.ScanCursor) (ports.ScanPage, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	}
	if cursor != nil {
		startKey, err := attributevalue.MarshalMap(map[string]string(cursor))
		if err != nil {
			return ports.ScanPage{}, fmt.Errorf("failed to marshal scan cursor: %w", err)
		}
		input.ExclusiveStartKey = startKey
	}

	out, err := r.client.Scan(ctx, input)
	if err != nil {
		return ports.ScanPage{}, appErrors.NewDatabaseError("Scan", err)
	}

	page := ports.ScanPage{Items: make([]article.Article, 0, len(out.Items))}
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &page.Items); err != nil {
		return ports.ScanPage{}, fmt.Errorf("failed to unmarshal scanned articles: %w", err)
	}

	if len(out.LastEvaluatedKey) > 0 {
		next := map[string]string{}
		if err := attributevalue.UnmarshalMap(out.LastEvaluatedKey, &next); err != nil {
			return ports.ScanPage{}, fmt.Errorf("failed to unmarshal scan cursor: %w", err)
		}
		page.Next = next
	}
	return page, nil
}
