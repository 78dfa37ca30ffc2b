package jobs

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/sflink/internal/logging"
	"github.com/vvka-141/sflink/pkg/sflink"
)

func startEmbeddedNATS(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ns, err := server.NewServer(&server.Options{
		Port:      -1,
		JetStream: true,
		StoreDir:  t.TempDir(),
		NoLog:     true,
		NoSigs:    true,
	})
	require.NoError(t, err)

	go ns.Start()
	if !ns.ReadyForConnections(5 * time.Second) {
		ns.Shutdown()
		t.Fatal("embedded NATS server failed to start")
	}
	t.Cleanup(ns.Shutdown)
	return ns.ClientURL()
}

func TestJetStreamQueue_EmbeddedServer(t *testing.T) {
	url := startEmbeddedNATS(t)
	ctx := context.Background()

	js, closeConn, err := Connect(ctx, url, "wiki.jobs.create")
	require.NoError(t, err)
	t.Cleanup(closeConn)

	q := NewJetStreamQueue(js, "wiki.jobs.create", logging.NewNullLogger())
	job := sflink.NewPageCreationJob(sflink.Page(sflink.NSMain, "France"), 42, "{{Country\n}}")

	require.NoError(t, q.Enqueue(ctx, job))
	require.NoError(t, q.Enqueue(ctx, job), "duplicate publish is deduplicated by message id")

	stream, err := js.Stream(ctx, StreamName)
	require.NoError(t, err)
	info, err := stream.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), info.State.Msgs)

	raw, err := stream.GetMsg(ctx, 1)
	require.NoError(t, err)
	var msg Message
	require.NoError(t, json.Unmarshal(raw.Data, &msg))
	assert.Equal(t, job.ID, msg.Job.ID)
	assert.Equal(t, int64(42), msg.Job.UserID)
}

func TestConnect_Unreachable(t *testing.T) {
	_, _, err := Connect(context.Background(), "nats://127.0.0.1:1", "")
	assert.ErrorIs(t, err, sflink.ErrConnectionFailed)
}
