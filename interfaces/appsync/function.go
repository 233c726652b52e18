package appsync

import (
	"context"

	appErrors "wikicollector-backend/pkg/errors"
	"wikicollector-backend/pkg/observability"

	"github.com/aws/aws-lambda-go/lambda/messages"
	"go.uber.org/zap"
)

// HandlerFunc is the signature passed to lambda.Start
type HandlerFunc func(ctx context.Context, event Event) (interface{}, error)

// NewFunctionHandler adapts r to a Lambda handler. Failures are reported to
// the gateway with the AppError type as errorType and its message as
// errorMessage.
func NewFunctionHandler(r *Resolver, logger *zap.Logger) HandlerFunc {
	return func(ctx context.Context, event Event) (interface{}, error) {
		resolver := &Resolver{fields: r.fields, logger: observability.WithLambdaContext(ctx, logger)}

		result, err := resolver.Handle(ctx, event)
		if err != nil {
			return nil, InvokeError(err)
		}
		return result, nil
	}
}

// InvokeError converts err into the Lambda runtime's error payload
func InvokeError(err error) error {
	if err == nil {
		return nil
	}
	if appErr := appErrors.GetAppError(err); appErr != nil {
		return messages.InvokeResponse_Error{
			Message: appErr.Message,
			Type:    string(appErr.Type),
		}
	}
	return messages.InvokeResponse_Error{
		Message: err.Error(),
		Type:    string(appErrors.ErrorTypeInternal),
	}
}
