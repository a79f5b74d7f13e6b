package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/osse101/FreeLunch_Go/internal/logger"
)

// Push sends the default registry to a Pushgateway. One-shot runs exit before
// a scrape could happen, so they push instead. An empty url is a no-op.
func Push(ctx context.Context, url, job string) error {
	if url == "" {
		return nil
	}
	err := push.New(url, job).
		Gatherer(prometheus.DefaultGatherer).
		PushContext(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgPushFailed, "url", url, "error", err)
		return err
	}
	logger.FromContext(ctx).Debug(LogMsgPushed, "url", url, "job", job)
	return nil
}
