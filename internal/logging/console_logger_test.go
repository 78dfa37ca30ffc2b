package logging

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleLogger_Levels(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		log     func(l *ConsoleLogger)
		want    string
	}{
		{
			name:    "verbose enabled",
			verbose: true,
			log:     func(l *ConsoleLogger) { l.Verbose("lookup %s via %s", "Category:Cities", "_SF_DF") },
			want:    "[VERBOSE] lookup Category:Cities via _SF_DF\n",
		},
		{
			name:    "verbose disabled",
			verbose: false,
			log:     func(l *ConsoleLogger) { l.Verbose("lookup %s", "Foo") },
			want:    "",
		},
		{
			name: "info",
			log:  func(l *ConsoleLogger) { l.Info("Queued creation of %s", "France") },
			want: "Queued creation of France\n",
		},
		{
			name: "error",
			log:  func(l *ConsoleLogger) { l.Error("store failed: %v", "timeout") },
			want: "[ERROR] store failed: timeout\n",
		},
		{
			name: "no args keeps percent signs",
			log:  func(l *ConsoleLogger) { l.Info("100% done") },
			want: "100% done\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewWriterLogger(&buf, tt.verbose))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestConsoleLogger_Concurrent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, true)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.Info("line %d", n)
			logger.Verbose("detail %d", n)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 40)
}

func TestNullLogger(t *testing.T) {
	l := NewNullLogger()
	assert.NotPanics(t, func() {
		l.Verbose("x %d", 1)
		l.Info("x")
		l.Error("x %v", nil)
	})
}
