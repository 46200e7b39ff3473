package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/tasknotify/pkg/logger"
)

// SubjectValue is the fasthttp user value under which auth middleware stores the caller.
const SubjectValue = "subject"

const requestIDHeader = "X-Request-ID"

type key string

const (
	keyRemoteAddr key = "remote_addr"
	keySubject    key = "subject"
)

// Adapter converts fasthttp.RequestCtx into a stdlib context with a deadline and
// request metadata. A manual sweep runs inside this context, so the timeout
// must cover a full run.
type Adapter struct {
	timeout time.Duration
}

func NewAdapter(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{timeout: timeout}
}

// Attach derives the request context and echoes the request id back to the caller.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(context.Background(), a.timeout)
	if ctx == nil {
		return appLogger.ContextWithRequestID(stdCtx, uuid.NewString()), cancel
	}

	reqID := requestID(ctx)
	stdCtx = appLogger.ContextWithRequestID(stdCtx, reqID)
	ctx.Response.Header.Set(requestIDHeader, reqID)

	if remoteAddr := ctx.RemoteAddr(); remoteAddr != nil {
		stdCtx = context.WithValue(stdCtx, keyRemoteAddr, remoteAddr.String())
	}
	if subject, ok := ctx.UserValue(SubjectValue).(string); ok && subject != "" {
		stdCtx = context.WithValue(stdCtx, keySubject, subject)
	}
	return stdCtx, cancel
}

// Subject returns the authenticated caller attached by Attach, if any.
func Subject(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(keySubject).(string)
	return v
}

// RemoteAddr returns the client address attached by Attach, if any.
func RemoteAddr(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(keyRemoteAddr).(string)
	return v
}

func requestID(ctx *fasthttp.RequestCtx) string {
	if header := strings.TrimSpace(string(ctx.Request.Header.Peek(requestIDHeader))); header != "" {
		return header
	}
	return uuid.NewString()
}
