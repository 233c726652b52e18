package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// CloudWatchAPI is the subset of the CloudWatch client used for metrics.
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Metrics handles application metrics. A nil client turns every call into a no-op.
type Metrics struct {
	namespace string
	client    CloudWatchAPI
	logger    *zap.Logger
}

// NewMetrics creates a new metrics instance
func NewMetrics(namespace string, client CloudWatchAPI, logger *zap.Logger) *Metrics {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Metrics{
		namespace: namespace,
		client:    client,
		logger:    logger,
	}
}

// RecordOperation records latency and outcome of a resolver operation
func (m *Metrics) RecordOperation(ctx context.Context, operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	dimensions := []types.Dimension{
		{Name: aws.String("Operation"), Value: aws.String(operation)},
		{Name: aws.String("Status"), Value: aws.String(status)},
	}

	m.put(ctx,
		types.MetricDatum{
			MetricName: aws.String("OperationLatency"),
			Dimensions: dimensions,
			Value:      aws.Float64(float64(duration.Milliseconds())),
			Unit:       types.StandardUnitMilliseconds,
			Timestamp:  aws.Time(time.Now()),
		},
		types.MetricDatum{
			MetricName: aws.String("OperationCount"),
			Dimensions: dimensions,
			Value:      aws.Float64(1),
			Unit:       types.StandardUnitCount,
			Timestamp:  aws.Time(time.Now()),
		},
	)
}

// RecordIndexDegraded counts index reads that fell back to an empty index
func (m *Metrics) RecordIndexDegraded(ctx context.Context, reason string) {
	m.put(ctx, types.MetricDatum{
		MetricName: aws.String("IndexReadDegraded"),
		Dimensions: []types.Dimension{
			{Name: aws.String("Reason"), Value: aws.String(reason)},
		},
		Value:     aws.Float64(1),
		Unit:      types.StandardUnitCount,
		Timestamp: aws.Time(time.Now()),
	})
}

// RecordReconciliation records the size and duration of a reconciliation pass
func (m *Metrics) RecordReconciliation(ctx context.Context, userCount, articleCount int, duration time.Duration) {
	now := time.Now()
	m.put(ctx,
		types.MetricDatum{
			MetricName: aws.String("ReconciledUsers"),
			Value:      aws.Float64(float64(userCount)),
			Unit:       types.StandardUnitCount,
			Timestamp:  aws.Time(now),
		},
		types.MetricDatum{
			MetricName: aws.String("ReconciledArticles"),
			Value:      aws.Float64(float64(articleCount)),
			Unit:       types.StandardUnitCount,
			Timestamp:  aws.Time(now),
		},
		types.MetricDatum{
			MetricName: aws.String("ReconciliationDuration"),
			Value:      aws.Float64(float64(duration.Milliseconds())),
			Unit:       types.StandardUnitMilliseconds,
			Timestamp:  aws.Time(now),
		},
	)
}

func (m *Metrics) put(ctx context.Context, data ...types.MetricDatum) {
	if m == nil || m.client == nil {
		return
	}

	input := &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: data,
	}

	// Metrics never fail the operation being measured
	if _, err := m.client.PutMetricData(ctx, input); err != nil {
		m.logger.Warn("Failed to send metrics",
			zap.String("namespace", m.namespace),
			zap.Error(err),
		)
	}
}
