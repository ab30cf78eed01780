package dynamodb

import (
	"context"
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

// ReviewRepository implements ports.ReviewRepository using DynamoDB.
type ReviewRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.ReviewRepository {
	return &ReviewRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

type reviewItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	BookID     string `dynamodbav:"BookID"`
	UserID     string `dynamodbav:"UserID"`
	UserName   string `dynamodbav:"UserName,omitempty"`
	Rating     int    `dynamodbav:"Rating"`
	Comment    string `dynamodbav:"Comment,omitempty"`
	UpdatedAt  string `dynamodbav:"UpdatedAt"`
}

// Put upserts a user's review of a book.
func (r *ReviewRepository) Put(ctx context.Context, review *catalog.Review) error {
	item := reviewItem{
		PK:         fmt.Sprintf("BOOK#%s", review.BookID),
		SK:         fmt.Sprintf("REVIEW#%s", review.UserID),
		EntityType: "REVIEW",
		BookID:     review.BookID,
		UserID:     review.UserID,
		UserName:   review.UserName,
		Rating:     review.Rating,
		Comment:    review.Comment,
		UpdatedAt:  review.UpdatedAt.Format(time.RFC3339),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal review: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		r.logger.Error("failed to save review",
			zap.Error(err),
			zap.String("bookID", review.BookID),
			zap.String("userID", review.UserID),
		)
		return apperrors.NewDatabaseError("save review", err)
	}

	return nil
}

// Get returns a user's review of a book, or a not-found error.
func (r *ReviewRepository) Get(ctx context.Context, bookID, userID string) (*catalog.Review, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("BOOK#%s", bookID)},
			"SK": &types.AttributeValueMemberS{Value: fmt.Sprintf("REVIEW#%s", userID)},
		},
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return nil, apperrors.NewDatabaseError("get review", err)
	}
	if result.Item == nil {
		return nil, apperrors.NewNotFoundError("review")
	}

	var item reviewItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal review: %w", err)
	}

	return itemToReview(item), nil
}

// ListByBook returns all reviews for a book.
func (r *ReviewRepository) ListByBook(ctx context.Context, bookID string) ([]*catalog.Review, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(fmt.Sprintf("BOOK#%s", bookID))).
		And(expression.Key("SK").BeginsWith("REVIEW#"))
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

	reviews := make([]*catalog.Review, 0)
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, apperrors.NewDatabaseError("list reviews", err)
		}
		for _, raw := range page.Items {
			var item reviewItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("skipping unreadable review item", zap.Error(err))
				continue
			}
			reviews = append(reviews, itemToReview(item))
		}
	}

	return reviews, nil
}

func itemToReview(item reviewItem) *catalog.Review {
	updatedAt, _ := time.Parse(time.RFC3339, item.UpdatedAt)
	return &catalog.Review{
		BookID:    item.BookID,
		UserID:    item.UserID,
		UserName:  item.UserName,
		Rating:    item.Rating,
		Comment:   item.Comment,
		UpdatedAt: updatedAt,
	}
}
