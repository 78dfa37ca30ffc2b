// Package retry retries operations that fail with transient errors: PostgreSQL
// connection setup for the wiki store and JetStream publishes for the job queue.
//
//	executor := retry.NewExecutor(retry.NewPostgreSQLErrorClassifier(), retry.NewExponentialBackoff(3))
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return pool.Ping(ctx)
//	})
//
// Reads from the property store are never retried; a failed resolution is reported
// to the caller as is.
package retry
