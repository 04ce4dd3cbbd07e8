package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCtxFallsBackToBase(t *testing.T) {
	assert.Same(t, L, WithCtx(context.Background()))
}

func TestInjectLogger(t *testing.T) {
	var buf bytes.Buffer
	reqLog := New(&buf, "production").With("request_id", "abc")
	ctx := InjectLogger(context.Background(), reqLog)

	WithCtx(ctx).Info("order created", "order_id", "1")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "abc", line["request_id"])
	assert.Equal(t, "order created", line["msg"])
	assert.Equal(t, "1", line["order_id"])
}

func TestNewDevelopmentIsText(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "local").Debug("hola")
	assert.Contains(t, buf.String(), "msg=hola")
}
