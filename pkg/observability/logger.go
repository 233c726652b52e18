package observability

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the service logger. Production uses a JSON encoder with an
// ISO8601 "timestamp" field; everything else uses the development encoder.
func NewLogger(environment, level string) (*zap.Logger, error) {
	atom := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if level != "" {
		if err := atom.UnmarshalText([]byte(level)); err != nil {
			return nil, err
		}
	}

	if environment != "production" {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = atom
		return cfg.Build()
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		atom,
	)
	return zap.New(core, zap.AddCaller()), nil
}

// WithLambdaContext tags logger with the invocation's request id when ctx
// carries a Lambda context.
func WithLambdaContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	lc, ok := lambdacontext.FromContext(ctx)
	if !ok {
		return logger
	}
	return logger.With(
		zap.String("request_id", lc.AwsRequestID),
		zap.String("function", lambdacontext.FunctionName),
	)
}
