// Package jobs publishes page creation jobs to NATS JetStream, for wikis whose job
// runner consumes a stream instead of polling the job table.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/vvka-141/sflink/internal/retry"
	"github.com/vvka-141/sflink/pkg/sflink"
)

// StreamName is the JetStream stream that holds page creation jobs.
const StreamName = "SFLINK_JOBS"

// Publisher is the part of jetstream.JetStream the queue uses.
type Publisher interface {
	Publish(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// Message is the JSON payload of a published job.
type Message struct {
	Command string                 `json:"command"`
	Job     sflink.PageCreationJob `json:"job"`
}

// JetStreamQueue implements sflink.JobQueue on a JetStream subject.
type JetStreamQueue struct {
	js       Publisher
	subject  string
	executor *retry.Executor
	logger   sflink.Logger
}

// NewJetStreamQueue creates a queue publishing to subject. Transient publish
// failures are retried.
func NewJetStreamQueue(js Publisher, subject string, logger sflink.Logger) *JetStreamQueue {
	if js == nil {
		panic("js cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if subject == "" {
		subject = sflink.DefaultJobSubject
	}
	strategy := retry.NewExponentialBackoff(sflink.DefaultRetryMaxAttempts,
		retry.WithInitialDelay(sflink.DefaultRetryInitialDelay),
		retry.WithMaxDelay(time.Second),
	)
	return &JetStreamQueue{
		js:       js,
		subject:  subject,
		executor: retry.NewExecutor(retry.NewNATSErrorClassifier(), strategy).WithLogger(logger, "job publish"),
		logger:   logger,
	}
}

// Enqueue publishes each job and waits for the stream to acknowledge it. The job
// id is used as the message id, so a retried publish is not stored twice.
func (q *JetStreamQueue) Enqueue(ctx context.Context, jobs ...sflink.PageCreationJob) error {
	for _, job := range jobs {
		data, err := json.Marshal(Message{Command: "createPage", Job: job})
		if err != nil {
			return fmt.Errorf("marshal job: %w", err)
		}

		var ack *jetstream.PubAck
		err = q.executor.Execute(ctx, func(ctx context.Context) error {
			a, pubErr := q.js.Publish(ctx, q.subject, data, jetstream.WithMsgID(job.ID.String()))
			ack = a
			return pubErr
		})
		if err != nil {
			return fmt.Errorf("publish job %s: %w", job.ID, err)
		}
		q.logger.Verbose("job %s stored in %s at sequence %d", job.ID, ack.Stream, ack.Sequence)
	}
	return nil
}

// Connect dials url and makes sure the job stream exists for subject.
// The returned close function drains the connection.
func Connect(ctx context.Context, url, subject string) (jetstream.JetStream, func(), error) {
	nc, err := nats.Connect(url, nats.Name("sflink"))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: connect to NATS at %s: %v", sflink.ErrConnectionFailed, url, err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("create JetStream context: %w", err)
	}

	if subject == "" {
		subject = sflink.DefaultJobSubject
	}
	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{subject},
		Retention: jetstream.WorkQueuePolicy,
		Storage:   jetstream.FileStorage,
	})
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("create stream %s: %w", StreamName, err)
	}

	return js, func() { _ = nc.Drain() }, nil
}

var _ sflink.JobQueue = (*JetStreamQueue)(nil)
