package llm

import (
	"context"
	"time"
)

// Observer receives a notification after every provider call, successful
// or not. Implementations must not block.
type Observer interface {
	OnCall(ctx context.Context, event CallEvent)
}

// CallEvent describes one provider call.
type CallEvent struct {
	Provider  string
	Model     string
	StartedAt time.Time
	Duration  time.Duration

	// AttachmentBytes is the total size of inline attachments sent.
	AttachmentBytes int

	// Response is nil if the call failed.
	Response *Response
	Error    error
}

// ObserverFunc is a convenience type for using a function as an Observer.
type ObserverFunc func(ctx context.Context, event CallEvent)

// OnCall implements Observer.
func (f ObserverFunc) OnCall(ctx context.Context, event CallEvent) {
	f(ctx, event)
}

// observed wraps a Provider and reports every call to an Observer.
type observed struct {
	Provider
	obs Observer
}

// WithObserver returns a Provider that reports each Execute to obs.
// A nil observer returns p unchanged.
func WithObserver(p Provider, obs Observer) Provider {
	if obs == nil {
		return p
	}
	return &observed{Provider: p, obs: obs}
}

func (o *observed) Execute(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := o.Provider.Execute(ctx, req)

	size := 0
	for _, m := range req.Messages {
		for _, a := range m.Attachments {
			size += len(a.Data)
		}
	}

	o.obs.OnCall(ctx, CallEvent{
		Provider:        o.Name(),
		Model:           o.Model(),
		StartedAt:       start,
		Duration:        time.Since(start),
		AttachmentBytes: size,
		Response:        resp,
		Error:           err,
	})
	return resp, err
}
