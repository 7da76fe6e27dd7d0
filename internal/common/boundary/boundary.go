// Package boundary supervises a render pass and substitutes a fallback view when
// it fails, until an explicit retry.
//
// The whole render pass is supervised: the child renders into a buffer and its
// output is committed only on success, so failures during template execution
// are caught as well as failures while building the view.
package boundary

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"sync"

	"iwms-dashboard/internal/common/i18n"
	"iwms-dashboard/internal/common/logger"
)

// RenderFunc writes a view to w. Returning an error or panicking marks the
// render as failed.
type RenderFunc func(ctx context.Context, w io.Writer) error

// FallbackFunc writes the view shown while the boundary is errored.
type FallbackFunc func(ctx context.Context, w io.Writer, state Fallback) error

// Fallback describes the failure handed to a FallbackFunc.
type Fallback struct {
	Err      error
	Message  string
	RetryURL string
	// ReturnURL is the URL being rendered, set with WithReturnURL. The generic
	// panel posts it as "redirect" so a retry lands back on the same view.
	ReturnURL string
}

type returnURLKey struct{}

// WithReturnURL records the URL of the current request for the fallback.
func WithReturnURL(ctx context.Context, url string) context.Context {
	return context.WithValue(ctx, returnURLKey{}, url)
}

func returnURLFrom(ctx context.Context) string {
	url, _ := ctx.Value(returnURLKey{}).(string)
	return url
}

// State is the boundary's state.
type State int

const (
	Clean State = iota
	Errored
)

func (s State) String() string {
	if s == Errored {
		return "errored"
	}
	return "clean"
}

// PanicError wraps a value recovered from a panicking render.
type PanicError struct {
	Value interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("render panic: %v", e.Value)
}

// Recorder observes boundary transitions.
type Recorder interface {
	RecordTransition(boundary string, to State)
}

// Boundary is safe for concurrent use.
type Boundary struct {
	name     string
	child    RenderFunc
	fallback FallbackFunc
	retryURL string
	logger   logger.Logger
	recorder Recorder

	mu        sync.Mutex
	hasError  bool
	lastError error
}

// Option configures a Boundary.
type Option func(*Boundary)

// WithFallback replaces the generic error panel.
func WithFallback(fn FallbackFunc) Option {
	return func(b *Boundary) { b.fallback = fn }
}

// WithRetryURL sets the URL the generic panel's retry action posts to.
func WithRetryURL(url string) Option {
	return func(b *Boundary) { b.retryURL = url }
}

func WithLogger(l logger.Logger) Option {
	return func(b *Boundary) { b.logger = l }
}

func WithRecorder(r Recorder) Option {
	return func(b *Boundary) { b.recorder = r }
}

// New returns a clean boundary around child.
func New(name string, child RenderFunc, opts ...Option) *Boundary {
	b := &Boundary{
		name:     name,
		child:    child,
		fallback: DefaultFallback,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = logger.NewNoOpLogger()
	}
	b.logger = b.logger.WithFields(map[string]interface{}{"boundary": name})
	return b
}

func (b *Boundary) Name() string { return b.name }

// State returns the current state.
func (b *Boundary) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.hasError {
		return Errored
	}
	return Clean
}

// LastError returns the captured failure, or nil when clean.
func (b *Boundary) LastError() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastError
}

// Render writes the child's output to w, or the fallback when the child fails or
// the boundary is already errored. The returned error only reports failures to
// write the fallback itself.
func (b *Boundary) Render(ctx context.Context, w io.Writer) error {
	b.mu.Lock()
	errored, lastErr := b.hasError, b.lastError
	b.mu.Unlock()

	if errored {
		return b.renderFallback(ctx, w, lastErr)
	}

	var buf bytes.Buffer
	if err := b.renderChild(ctx, &buf); err != nil {
		b.fail(err)
		return b.renderFallback(ctx, w, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Retry clears the failure; the next Render re-attempts the child.
func (b *Boundary) Retry() {
	b.mu.Lock()
	was := b.hasError
	b.hasError = false
	b.lastError = nil
	b.mu.Unlock()

	if was {
		b.logger.Info("boundary reset", nil)
		b.transition(Clean)
	}
}

func (b *Boundary) renderChild(ctx context.Context, w io.Writer) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &PanicError{Value: p}
		}
	}()
	return b.child(ctx, w)
}

func (b *Boundary) fail(err error) {
	b.mu.Lock()
	b.hasError = true
	b.lastError = err
	b.mu.Unlock()

	b.logger.Error("render failed", map[string]interface{}{
		"error": err.Error(),
	})
	b.transition(Errored)
}

func (b *Boundary) transition(to State) {
	if b.recorder == nil {
		return
	}
	defer func() { _ = recover() }()
	b.recorder.RecordTransition(b.name, to)
}

func (b *Boundary) renderFallback(ctx context.Context, w io.Writer, err error) error {
	state := Fallback{
		Err:       err,
		Message:   errorMessage(ctx, err),
		RetryURL:  b.retryURL,
		ReturnURL: returnURLFrom(ctx),
	}
	if ferr := b.fallback(ctx, w, state); ferr != nil {
		b.logger.Error("fallback render failed", map[string]interface{}{"error": ferr.Error()})
		return ferr
	}
	return nil
}

func errorMessage(ctx context.Context, err error) string {
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return i18n.TranslatorFromContext(ctx).T(i18n.KeyRenderFailed)
}

var defaultPanel = template.Must(template.New("fallback").Parse(`<section class="error-boundary" role="alert">
  <h2>{{.Title}}</h2>
  <p class="error-boundary__message">{{.Message}}</p>
  {{- if .RetryURL}}
  <form method="post" action="{{.RetryURL}}">
    {{- if .ReturnURL}}<input type="hidden" name="redirect" value="{{.ReturnURL}}">{{end -}}
    <button type="submit">{{.Retry}}</button>
  </form>
  {{- end}}
</section>
`))

// DefaultFallback renders a generic panel with the failure message and a retry
// action.
func DefaultFallback(ctx context.Context, w io.Writer, state Fallback) error {
	tr := i18n.TranslatorFromContext(ctx)
	return defaultPanel.Execute(w, map[string]string{
		"Title":     tr.T(i18n.KeyRenderFailed),
		"Message":   state.Message,
		"RetryURL":  state.RetryURL,
		"ReturnURL": state.ReturnURL,
		"Retry":     tr.T(i18n.KeyRetry),
	})
}
