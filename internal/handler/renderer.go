package handler

import (
	"fraudquest-bot/internal/dispatch"
	"fraudquest-bot/internal/session"
)

// FrameFunc re-renders the screen a navigation frame describes. The frame's
// Arg is passed through as the handler payload. Handlers push their own frame
// on entry and duplicate-top pushes are suppressed, so re-rendering through
// the normal handler leaves the stack unchanged.
type FrameFunc func(ctx *dispatch.Context, payload string) error

// Renderer maps navigation frames back to their screens for the generic
// back action.
type Renderer struct {
	byView map[session.ViewID]FrameFunc
	home   FrameFunc
}

// NewRenderer returns an empty renderer.
func NewRenderer() *Renderer {
	return &Renderer{byView: make(map[session.ViewID]FrameFunc)}
}

// Register binds a view to its render function.
func (r *Renderer) Register(view session.ViewID, fn FrameFunc) {
	r.byView[view] = fn
}

// RegisterHome binds the fallback screen for frames with no registration.
func (r *Renderer) RegisterHome(fn FrameFunc) {
	r.home = fn
}

// RenderFrame re-renders the screen for a frame. An unknown view falls back
// to the home screen rather than leaving the user stuck.
func (r *Renderer) RenderFrame(ctx *dispatch.Context, frame session.Frame) error {
	if fn, ok := r.byView[frame.View]; ok {
		return fn(ctx, frame.Arg)
	}
	return r.home(ctx, frame.Arg)
}
