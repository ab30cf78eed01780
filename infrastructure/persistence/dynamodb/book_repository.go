package dynamodb

import (
	"context"
	"fmt"
	"strings"
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

// BookRepository implements ports.BookRepository using DynamoDB single-table design.
type BookRepository struct {
	client     *dynamodb.Client
	tableName  string
	titleIndex string
	fileIndex  string
	logger     *zap.Logger
}

// NewBookRepository creates a new BookRepository.
func NewBookRepository(client *dynamodb.Client, tableName, titleIndex, fileIndex string, logger *zap.Logger) ports.BookRepository {
	return &BookRepository{
		client:     client,
		tableName:  tableName,
		titleIndex: titleIndex,
		fileIndex:  fileIndex,
		logger:     logger,
	}
}

// bookItem represents the DynamoDB item structure for a book.
type bookItem struct {
	PK          string   `dynamodbav:"PK"`
	SK          string   `dynamodbav:"SK"`
	GSI1PK      string   `dynamodbav:"GSI1PK"`
	GSI1SK      string   `dynamodbav:"GSI1SK"`
	GSI2PK      string   `dynamodbav:"GSI2PK"`
	EntityType  string   `dynamodbav:"EntityType"`
	BookID      string   `dynamodbav:"BookID"`
	Filename    string   `dynamodbav:"Filename"`
	Title       string   `dynamodbav:"Title"`
	Author      string   `dynamodbav:"Author"`
	Genre       string   `dynamodbav:"Genre"`
	Language    string   `dynamodbav:"Language"`
	Year        int      `dynamodbav:"Year,omitempty"`
	ISBN        string   `dynamodbav:"ISBN,omitempty"`
	Description string   `dynamodbav:"Description,omitempty"`
	CoverKey    string   `dynamodbav:"CoverKey,omitempty"`
	Tags        []string `dynamodbav:"Tags,omitempty"`
	RatingCount int      `dynamodbav:"RatingCount"`
	RatingSum   int      `dynamodbav:"RatingSum"`
	CreatedAt   string   `dynamodbav:"CreatedAt"`
	UpdatedAt   string   `dynamodbav:"UpdatedAt"`
}

func bookToItem(book *catalog.Book) bookItem {
	return bookItem{
		PK:          fmt.Sprintf("BOOK#%s", book.ID),
		SK:          "METADATA",
		GSI1PK:      "BOOK",
		GSI1SK:      fmt.Sprintf("TITLE#%s", strings.ToLower(book.Title)),
		GSI2PK:      fmt.Sprintf("FILE#%s", book.Filename),
		EntityType:  "BOOK",
		BookID:      book.ID,
		Filename:    book.Filename,
		Title:       book.Title,
		Author:      book.Author,
		Genre:       book.Genre,
		Language:    book.Language,
		Year:        book.Year,
		ISBN:        book.ISBN,
		Description: book.Description,
		CoverKey:    book.CoverKey,
		Tags:        book.Tags,
		RatingCount: book.RatingCount,
		RatingSum:   book.RatingSum,
		CreatedAt:   book.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   book.UpdatedAt.Format(time.RFC3339),
	}
}

func itemToBook(item bookItem) *catalog.Book {
	createdAt, _ := time.Parse(time.RFC3339, item.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, item.UpdatedAt)
	return &catalog.Book{
		ID:          item.BookID,
		Filename:    item.Filename,
		Title:       item.Title,
		Author:      item.Author,
		Genre:       item.Genre,
		Language:    item.Language,
		Year:        item.Year,
		ISBN:        item.ISBN,
		Description: item.Description,
		CoverKey:    item.CoverKey,
		Tags:        item.Tags,
		RatingCount: item.RatingCount,
		RatingSum:   item.RatingSum,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// Save persists a book.
func (r *BookRepository) Save(ctx context.Context, book *catalog.Book) error {
	av, err := attributevalue.MarshalMap(bookToItem(book))
	if err != nil {
		return fmt.Errorf("failed to marshal book: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("failed to save book",
			zap.Error(err),
			zap.String("bookID", book.ID),
		)
		return apperrors.NewDatabaseError("save book", err)
	}

	return nil
}

// GetByID loads a book by its ID.
func (r *BookRepository) GetByID(ctx context.Context, bookID string) (*catalog.Book, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("BOOK#%s", bookID)},
			"SK": &types.AttributeValueMemberS{Value: "METADATA"},
		},
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return nil, apperrors.NewDatabaseError("get book", err)
	}
	if result.Item == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("book %s", bookID))
	}

	var item bookItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal book: %w", err)
	}

	return itemToBook(item), nil
}

// GetByFilename looks up a book by its storage filename via the file index.
func (r *BookRepository) GetByFilename(ctx context.Context, filename string) (*catalog.Book, error) {
	keyCond := expression.Key("GSI2PK").Equal(expression.Value(fmt.Sprintf("FILE#%s", filename)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.fileIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(1),
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, apperrors.NewDatabaseError("query book by filename", err)
	}
	if len(result.Items) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("book with filename %s", filename))
	}

	var item bookItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal book: %w", err)
	}

	return itemToBook(item), nil
}

// List returns books ordered by title via the title index.
func (r *BookRepository) List(ctx context.Context, limit int32) ([]*catalog.Book, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value("BOOK"))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.titleIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}
	if limit > 0 {
		input.Limit = aws.Int32(limit)
	}

	books := make([]*catalog.Book, 0)
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, apperrors.NewDatabaseError("list books", err)
		}
		for _, raw := range page.Items {
			var item bookItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("skipping unreadable book item", zap.Error(err))
				continue
			}
			books = append(books, itemToBook(item))
		}
		if limit > 0 && int32(len(books)) >= limit {
			books = books[:limit]
			break
		}
	}

	return books, nil
}

// Search narrows by attribute filters server-side and matches the free-text
// query against title, author, and tags in the application.
func (r *BookRepository) Search(ctx context.Context, query string, filter ports.SearchFilter) ([]*catalog.Book, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value("BOOK"))
	builder := expression.NewBuilder().WithKeyCondition(keyCond)

	var filters []expression.ConditionBuilder
	if filter.Author != "" {
		filters = append(filters, expression.Name("Author").Equal(expression.Value(filter.Author)))
	}
	if filter.Genre != "" {
		filters = append(filters, expression.Name("Genre").Equal(expression.Value(filter.Genre)))
	}
	if filter.Language != "" {
		filters = append(filters, expression.Name("Language").Equal(expression.Value(filter.Language)))
	}
	if len(filters) > 0 {
		cond := filters[0]
		for _, f := range filters[1:] {
			cond = cond.And(f)
		}
		builder = builder.WithFilter(cond)
	}

	expr, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.titleIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	matched := make([]*catalog.Book, 0)
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, apperrors.NewDatabaseError("search books", err)
		}
		for _, raw := range page.Items {
			var item bookItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("skipping unreadable book item", zap.Error(err))
				continue
			}
			book := itemToBook(item)
			if query != "" && !book.Matches(query) {
				continue
			}
			matched = append(matched, book)
			if filter.Limit > 0 && int32(len(matched)) >= filter.Limit {
				return matched, nil
			}
		}
	}

	return matched, nil
}

// Ping verifies the table is reachable.
func (r *BookRepository) Ping(ctx context.Context) error {
	_, err := r.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return apperrors.NewUnavailableError("dynamodb").WithCause(err)
	}
	return nil
}
