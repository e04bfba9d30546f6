package xr

import "fmt"

// CallError reports a failing compositor call, carrying the runtime's
// decoded name for the code when one was available.
type CallError struct {
	Verb   string
	Code   Result
	Detail string
}

func (e *CallError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Verb, e.Detail)
	}
	return fmt.Sprintf("%s: result %d", e.Verb, int32(e.Code))
}

// Annotate turns a raw result into a *CallError decoded through comp, or
// nil for success codes.
func Annotate(comp Compositor, verb string, code Result) error {
	if code.Succeeded() {
		return nil
	}
	return &CallError{Verb: verb, Code: code, Detail: comp.DecodeResult(code)}
}

// AcquireTimeoutError reports a swapchain image that did not become
// renderable within the configured wait.
type AcquireTimeoutError struct {
	Eye     int
	Timeout Duration
}

func (e *AcquireTimeoutError) Error() string {
	return fmt.Sprintf("eye %d: swapchain image not ready within %dns", e.Eye, int64(e.Timeout))
}

// EyeError attributes a per-eye frame failure to its eye.
type EyeError struct {
	Eye int
	Err error
}

func (e *EyeError) Error() string { return fmt.Sprintf("eye %d: %v", e.Eye, e.Err) }
func (e *EyeError) Unwrap() error { return e.Err }
