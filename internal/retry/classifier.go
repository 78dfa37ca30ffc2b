package retry

import (
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/vvka-141/sflink/pkg/sflink"
)

// PostgreSQL error codes outside the wholly transient classes 08, 53 and 57.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgCodeSerializationFailure = "40001"
	pgCodeDeadlockDetected     = "40P01"
	pgCodeLockNotAvailable     = "55P03"
)

var transientPgClasses = []string{"08", "53", "57"}

var transientMessages = []string{
	"connection refused",
	"connection reset",
	"connection timeout",
	"no such host",
	"network is unreachable",
	"i/o timeout",
	"broken pipe",
	"too many connections",
	"server closed the connection",
	"unexpected eof",
}

// PostgreSQLErrorClassifier recognises transient failures talking to the wiki database.
type PostgreSQLErrorClassifier struct{}

func NewPostgreSQLErrorClassifier() *PostgreSQLErrorClassifier {
	return &PostgreSQLErrorClassifier{}
}

func (c *PostgreSQLErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return isTransientPgCode(pgErr.Code)
	}
	return isTransientNetworkError(err) || hasTransientMessage(err)
}

func isTransientPgCode(code string) bool {
	for _, class := range transientPgClasses {
		if strings.HasPrefix(code, class) {
			return true
		}
	}
	switch code {
	case pgCodeSerializationFailure, pgCodeDeadlockDetected, pgCodeLockNotAvailable:
		return true
	}
	return false
}

// NATSErrorClassifier recognises transient failures publishing to JetStream.
type NATSErrorClassifier struct{}

func NewNATSErrorClassifier() *NATSErrorClassifier {
	return &NATSErrorClassifier{}
}

func (c *NATSErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, nats.ErrNoServers),
		errors.Is(err, nats.ErrTimeout),
		errors.Is(err, nats.ErrNoResponders),
		errors.Is(err, nats.ErrConnectionReconnecting),
		errors.Is(err, jetstream.ErrNoStreamResponse):
		return true
	case errors.Is(err, nats.ErrConnectionClosed):
		return false
	}
	return isTransientNetworkError(err) || hasTransientMessage(err)
}

func isTransientNetworkError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Temporary() || dnsErr.Timeout()
	}

	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		return false
	}
	if opErr.Timeout() {
		return true
	}
	return errors.Is(opErr.Err, syscall.ECONNREFUSED) ||
		errors.Is(opErr.Err, syscall.ECONNRESET) ||
		errors.Is(opErr.Err, syscall.ENETUNREACH) ||
		errors.Is(opErr.Err, syscall.EHOSTUNREACH)
}

func hasTransientMessage(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, pattern := range transientMessages {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

var (
	_ sflink.ErrorClassifier = (*PostgreSQLErrorClassifier)(nil)
	_ sflink.ErrorClassifier = (*NATSErrorClassifier)(nil)
)
