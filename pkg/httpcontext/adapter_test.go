package httpcontext

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/tasknotify/pkg/logger"
)

func TestAdapter_AttachKeepsRequestID(t *testing.T) {
	rc := &fasthttp.RequestCtx{}
	rc.Request.Header.Set("X-Request-ID", "req-42")
	rc.SetUserValue(SubjectValue, "ops@example.com")

	ctx, cancel := NewAdapter(time.Second).Attach(rc)
	defer cancel()

	assert.Equal(t, "req-42", appLogger.RequestID(ctx))
	assert.Equal(t, "req-42", string(rc.Response.Header.Peek("X-Request-ID")))
	assert.Equal(t, "ops@example.com", Subject(ctx))

	deadline, ok := ctx.Deadline()
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, time.Second)
}

func TestAdapter_AttachGeneratesRequestID(t *testing.T) {
	rc := &fasthttp.RequestCtx{}

	ctx, cancel := NewAdapter(0).Attach(rc)
	defer cancel()

	id := appLogger.RequestID(ctx)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, string(rc.Response.Header.Peek("X-Request-ID")))
	assert.Empty(t, Subject(ctx))
}
