package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"library-backend/application/ports"
	"library-backend/domain/catalog"
	apperrors "library-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// BookmarkRepository implements ports.BookmarkRepository using DynamoDB.
type BookmarkRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewBookmarkRepository creates a new BookmarkRepository.
func NewBookmarkRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.BookmarkRepository {
	return &BookmarkRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

type bookmarkItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	UserID     string `dynamodbav:"UserID"`
	BookID     string `dynamodbav:"BookID"`
	DateAdded  string `dynamodbav:"DateAdded"`
}

// Add stores a bookmark. Re-adding an existing bookmark keeps the original date.
func (r *BookmarkRepository) Add(ctx context.Context, bookmark *catalog.Bookmark) error {
	item := bookmarkItem{
		PK:         fmt.Sprintf("USER#%s", bookmark.UserID),
		SK:         fmt.Sprintf("BMARK#%s", bookmark.BookID),
		EntityType: "BOOKMARK",
		UserID:     bookmark.UserID,
		BookID:     bookmark.BookID,
		DateAdded:  bookmark.DateAdded.Format(time.RFC3339),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal bookmark: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return nil
		}
		r.logger.Error("failed to add bookmark",
			zap.Error(err),
			zap.String("userID", bookmark.UserID),
			zap.String("bookID", bookmark.BookID),
		)
		return apperrors.NewDatabaseError("add bookmark", err)
	}

	return nil
}

// Remove deletes a bookmark. Removing a missing bookmark is not an error.
func (r *BookmarkRepository) Remove(ctx context.Context, userID, bookID string) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("USER#%s", userID)},
			"SK": &types.AttributeValueMemberS{Value: fmt.Sprintf("BMARK#%s", bookID)},
		},
	}

	if _, err := r.client.DeleteItem(ctx, input); err != nil {
		return apperrors.NewDatabaseError("remove bookmark", err)
	}

	return nil
}

// ListByUser returns all bookmarks for a user, newest first.
func (r *BookmarkRepository) ListByUser(ctx context.Context, userID string) ([]*catalog.Bookmark, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(fmt.Sprintf("USER#%s", userID))).
		And(expression.Key("SK").BeginsWith("BMARK#"))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	bookmarks := make([]*catalog.Bookmark, 0)
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, apperrors.NewDatabaseError("list bookmarks", err)
		}
		for _, raw := range page.Items {
			var item bookmarkItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("skipping unreadable bookmark item", zap.Error(err))
				continue
			}
			dateAdded, _ := time.Parse(time.RFC3339, item.DateAdded)
			bookmarks = append(bookmarks, &catalog.Bookmark{
				UserID:    item.UserID,
				BookID:    item.BookID,
				DateAdded: dateAdded,
			})
		}
	}

	return bookmarks, nil
}
