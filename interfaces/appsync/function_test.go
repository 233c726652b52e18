package appsync

import (
	"context"
	"errors"
	"testing"

	appErrors "wikicollector-backend/pkg/errors"

	"github.com/aws/aws-lambda-go/lambda/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInvokeError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
		errType string
	}{
		{"validation", appErrors.NewValidationError("Unknown field name: nope"), "Unknown field name: nope", "VALIDATION"},
		{"wrapped not found", errors.Join(errors.New("ctx"), appErrors.NewNotFoundError("article")), "article not found", "NOT_FOUND"},
		{"plain error", errors.New("boom"), "boom", "INTERNAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var invokeErr messages.InvokeResponse_Error
			require.ErrorAs(t, InvokeError(tt.err), &invokeErr)
			assert.Equal(t, tt.message, invokeErr.Message)
			assert.Equal(t, tt.errType, invokeErr.Type)
		})
	}

	assert.NoError(t, InvokeError(nil))
}

func TestNewFunctionHandler_RejectsOtherFunctionsFields(t *testing.T) {
	handler := NewFunctionHandler(NewResolver(nil, nil, nil, zap.NewNop()).Only(UploadFields...), zap.NewNop())

	event, err := NewEvent(FieldListArticles, "user-1", nil)
	require.NoError(t, err)

	_, err = handler(context.Background(), event)

	var invokeErr messages.InvokeResponse_Error
	require.ErrorAs(t, err, &invokeErr)
	assert.Equal(t, "Unknown field name: listArticles", invokeErr.Message)
}
