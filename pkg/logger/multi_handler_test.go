package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiHandler_FansOut(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	h := newMultiHandler(
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	log := slog.New(h).With(slog.String("svc", "relay"))

	log.Info("one")
	log.Error("two")

	assert.Equal(t, 2, strings.Count(a.String(), "svc=relay"))
	assert.Equal(t, 1, strings.Count(b.String(), "svc=relay"))
	assert.Contains(t, b.String(), "msg=two")
}
