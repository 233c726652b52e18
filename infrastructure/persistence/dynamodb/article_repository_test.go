package dynamodb

import (
	"context"
	"errors"
	"testing"

	"wikicollector-backend/domain/article"
	appErrors "wikicollector-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockTableAPI struct {
	mock.Mock
}

func (m *mockTableAPI) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	args := m.Called(params)
	out, _ := args.Get(0).(*dynamodb.GetItemOutput)
	return out, args.Error(1)
}

func (m *mockTableAPI) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(params)
	return &dynamodb.PutItemOutput{}, args.Error(0)
}

func (m *mockTableAPI) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	args := m.Called(params)
	out, _ := args.Get(0).(*dynamodb.UpdateItemOutput)
	return out, args.Error(1)
}

func (m *mockTableAPI) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	args := m.Called(params)
	return &dynamodb.DeleteItemOutput{}, args.Error(0)
}

func (m *mockTableAPI) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	args := m.Called(params)
	out, _ := args.Get(0).(*dynamodb.ScanOutput)
	return out, args.Error(1)
}

func marshal(t *testing.T, a article.Article) map[string]types.AttributeValue {
	t.Helper()
	item, err := attributevalue.MarshalMap(a)
	require.NoError(t, err)
	return item
}

func nameValues(names map[string]string) []string {
	values := make([]string, 0, len(names))
	for _, v := range names {
		values = append(values, v)
	}
	return values
}

func TestArticleRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		client := new(mockTableAPI)
		stored := article.New("user-1", "a1", "Title", "Body", "t0")
		client.On("GetItem", mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
			return aws.ToString(in.TableName) == "wiki-articles" &&
				in.Key["userId"].(*types.AttributeValueMemberS).Value == "user-1" &&
				in.Key["articleId"].(*types.AttributeValueMemberS).Value == "a1"
		})).Return(&dynamodb.GetItemOutput{Item: marshal(t, stored)}, nil)
		repo := NewArticleRepository(client, "wiki-articles", zap.NewNop())

		got, err := repo.Get(ctx, "user-1", "a1")

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, stored, *got)
	})

	t.Run("missing is nil", func(t *testing.T) {
		client := new(mockTableAPI)
		client.On("GetItem", mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)
		repo := NewArticleRepository(client, "wiki-articles", zap.NewNop())

		got, err := repo.Get(ctx, "user-1", "nope")

		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("client error", func(t *testing.T) {
		client := new(mockTableAPI)
		client.On("GetItem", mock.Anything).Return(nil, errors.New("throttled"))
		repo := NewArticleRepository(client, "wiki-articles", zap.NewNop())

		_, err := repo.Get(ctx, "user-1", "a1")

		assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeDatabase))
	})
}

func TestArticleRepository_Put(t *testing.T) {
	client := new(mockTableAPI)
	client.On("PutItem", mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
		_, hasBackup := in.Item["backupContent"]
		return in.Item["title"].(*types.AttributeValueMemberS).Value == "日本語" && !hasBackup
	})).Return(nil)
	repo := NewArticleRepository(client, "wiki-articles", zap.NewNop())

	err := repo.Put(context.Background(), article.New("user-1", "a1", "日本語", "", "t0"))

	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestArticleRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("content change rotates backup in one call", func(t *testing.T) {
		client := new(mockTableAPI)
		backup := "old"
		stored := article.Article{
			UserID: "user-1", ArticleID: "a1", Title: "T", Content: "new",
			BackupContent: &backup, CreatedAt: "t0", UpdatedAt: "t1",
		}
		var captured *dynamodb.UpdateItemInput
		client.On("UpdateItem", mock.Anything).
			Run(func(args mock.Arguments) { captured = args.Get(0).(*dynamodb.UpdateItemInput) }).
			Return(&dynamodb.UpdateItemOutput{Attributes: marshal(t, stored)}, nil).Once()
		repo := NewArticleRepository(client, "wiki-articles", zap.NewNop())

		content := "new"
		got, err := repo.Update(ctx, "user-1", "a1", article.Changes{Content: &content}, "t1")

		require.NoError(t, err)
		assert.Equal(t, stored, *got)
		require.NotNil(t, captured)
		assert.Equal(t, types.ReturnValueAllNew, captured.ReturnValues)
		assert.Contains(t, aws.ToString(captured.ConditionExpression), "attribute_exists")
		assert.ElementsMatch(t, []string{"updatedAt", "backupContent", "content", "articleId"}, nameValues(captured.ExpressionAttributeNames))
	})

	t.Run("title only leaves content alone", func(t *testing.T) {
		client := new(mockTableAPI)
		var captured *dynamodb.UpdateItemInput
		client.On("UpdateItem", mock.Anything).
			Run(func(args mock.Arguments) { captured = args.Get(0).(*dynamodb.UpdateItemInput) }).
			Return(&dynamodb.UpdateItemOutput{Attributes: marshal(t, article.New("user-1", "a1", "T2", "c", "t0"))}, nil)
		repo := NewArticleRepository(client, "wiki-articles", zap.NewNop())

		title := "T2"
		_, err := repo.Update(ctx, "user-1", "a1", article.Changes{Title: &title}, "t1")

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"updatedAt", "title", "articleId"}, nameValues(captured.ExpressionAttributeNames))
	})

	t.Run("missing article is not found", func(t *testing.T) {
		client := new(mockTableAPI)
		client.On("UpdateItem", mock.Anything).
			Return(nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")})
		repo := NewArticleRepository(client, "wiki-articles", zap.NewNop())

		_, err := repo.Update(ctx, "user-1", "nope", article.Changes{}, "t1")

		assert.True(t, appErrors.IsNotFound(err))
	})
}

func TestArticleRepository_Delete(t *testing.T) {
	client := new(mockTableAPI)
	client.On("DeleteItem", mock.Anything).Return(nil).Once()
	client.On("DeleteItem", mock.Anything).Return(errors.New("boom")).Once()
	repo := NewArticleRepository(client, "wiki-articles", zap.NewNop())

	assert.NoError(t, repo.Delete(context.Background(), "user-1", "a1"))
	assert.True(t, appErrors.IsType(repo.Delete(context.Background(), "user-1", "a1"), appErrors.ErrorTypeDatabase))
}

func TestArticleRepository_Scan(t *testing.T) {
	ctx := context.Background()
	client := new(mockTableAPI)

	lastKey := map[string]types.AttributeValue{
		"userId":    &types.AttributeValueMemberS{Value: "user-1"},
		"articleId": &types.AttributeValueMemberS{Value: "a1"},
	}
	client.On("Scan", mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
		return in.ExclusiveStartKey == nil
	})).Return(&dynamodb.ScanOutput{
		Items:            []map[string]types.AttributeValue{marshal(t, article.New("user-1", "a1", "T", "c", "t0"))},
		LastEvaluatedKey: lastKey,
	}, nil).Once()
	client.On("Scan", mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
		v, ok := in.ExclusiveStartKey["articleId"].(*types.AttributeValueMemberS)
		return ok && v.Value == "a1"
	})).Return(&dynamodb.ScanOutput{
		Items: []map[string]types.AttributeValue{marshal(t, article.New("user-2", "b1", "T", "c", "t0"))},
	}, nil).Once()
	repo := NewArticleRepository(client, "wiki-articles", zap.NewNop())

	first, err := repo.Scan(ctx, nil)
	require.NoError(t, err)
	require.Len(t, first.Items, 1)
	assert.Equal(t, "user-1", first.Items[0].UserID)
	assert.Equal(t, "a1", first.Next["articleId"])

	second, err := repo.Scan(ctx, first.Next)
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Equal(t, "user-2", second.Items[0].UserID)
	assert.Nil(t, second.Next)
	client.AssertExpectations(t)
}
