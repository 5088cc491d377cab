// Package dispatch routes incoming user events to handlers. Callback data is
// an enumerated action plus an optional payload instead of free-form strings,
// so an unknown action fails loudly at the router instead of falling through
// a prefix chain.
package dispatch

import (
	"errors"
	"fmt"
	"strings"

	"fraudquest-bot/internal/gateway"
	"fraudquest-bot/internal/session"
)

// Routing errors.
var (
	ErrUnknownAction = errors.New("unknown action")
	ErrUnhandledView = errors.New("no text handler for view")
)

// ActionID names one button action. The wire form is "action|payload".
type ActionID string

// Actions the bot responds to.
const (
	ActionMainMenu       ActionID = "main_menu"
	ActionBack           ActionID = "back"
	ActionQuizMenu       ActionID = "quiz_menu"
	ActionQuizLevel      ActionID = "quiz_level"
	ActionQuizAnswer     ActionID = "quiz_answer"
	ActionScenarioMenu   ActionID = "scenario_menu"
	ActionScenarioStart  ActionID = "scenario_start"
	ActionScenarioChoice ActionID = "scenario_choice"
	ActionBalance        ActionID = "balance"
	ActionShop           ActionID = "shop"
	ActionBuyHint        ActionID = "buy_hint"
	ActionLeaderboard    ActionID = "leaderboard"
	ActionReferral       ActionID = "referral"
	ActionSubscribe      ActionID = "subscribe"
	ActionUnsubscribe    ActionID = "unsubscribe"
	ActionHelp           ActionID = "help"
)

// knownActions is the closed set the parser accepts.
var knownActions = map[ActionID]struct{}{
	ActionMainMenu:       {},
	ActionBack:           {},
	ActionQuizMenu:       {},
	ActionQuizLevel:      {},
	ActionQuizAnswer:     {},
	ActionScenarioMenu:   {},
	ActionScenarioStart:  {},
	ActionScenarioChoice: {},
	ActionBalance:        {},
	ActionShop:           {},
	ActionBuyHint:        {},
	ActionLeaderboard:    {},
	ActionReferral:       {},
	ActionSubscribe:      {},
	ActionUnsubscribe:    {},
	ActionHelp:           {},
}

// Encode renders an action and payload into callback data.
func Encode(action ActionID, payload string) string {
	if payload == "" {
		return string(action)
	}
	return string(action) + "|" + payload
}

// Parse splits callback data into its action and payload. Data whose action
// part is outside the known set is rejected.
func Parse(data string) (ActionID, string, error) {
	data = strings.TrimSpace(data)
	name, payload, _ := strings.Cut(data, "|")
	action := ActionID(name)
	if _, ok := knownActions[action]; !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	return action, payload, nil
}

// Event is one user input. Exactly one concrete type reaches the router per
// update: a ButtonPress from a callback query, or a TextMessage.
type Event interface {
	isEvent()
}

// ButtonPress is a tapped inline button, already parsed.
type ButtonPress struct {
	Action  ActionID
	Payload string
}

func (ButtonPress) isEvent() {}

// TextMessage is a plain text message.
type TextMessage struct {
	Body string
}

func (TextMessage) isEvent() {}

// Context carries everything a handler needs to respond.
type Context struct {
	UserID    int64
	Username  string
	FirstName string
	Session   *session.Session
	Respond   gateway.Responder
}

// ButtonHandler handles one action.
type ButtonHandler func(ctx *Context, payload string) error

// TextHandler handles a text message arriving while a given view is on top
// of the navigation stack.
type TextHandler func(ctx *Context, body string) error

// Router maps events to handlers via explicit tables.
type Router struct {
	buttons  map[ActionID]ButtonHandler
	texts    map[session.ViewID]TextHandler
	fallback TextHandler
}

// NewRouter returns an empty router.
func NewRouter() *Router {
	return &Router{
		buttons: make(map[ActionID]ButtonHandler),
		texts:   make(map[session.ViewID]TextHandler),
	}
}

// HandleButton registers the handler for an action. Registering the same
// action twice is a programming error and panics at startup.
func (r *Router) HandleButton(action ActionID, h ButtonHandler) {
	if _, dup := r.buttons[action]; dup {
		panic(fmt.Sprintf("dispatch: duplicate button handler for %q", action))
	}
	r.buttons[action] = h
}

// HandleText registers the handler for text arriving on a view.
func (r *Router) HandleText(view session.ViewID, h TextHandler) {
	if _, dup := r.texts[view]; dup {
		panic(fmt.Sprintf("dispatch: duplicate text handler for %q", view))
	}
	r.texts[view] = h
}

// HandleTextFallback registers the handler for text arriving on views with
// no specific handler.
func (r *Router) HandleTextFallback(h TextHandler) {
	r.fallback = h
}

// Dispatch routes one event. The caller holds the per-user lock for the
// duration of the call.
func (r *Router) Dispatch(ctx *Context, ev Event) error {
	switch e := ev.(type) {
	case ButtonPress:
		h, ok := r.buttons[e.Action]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownAction, e.Action)
		}
		return h(ctx, e.Payload)
	case TextMessage:
		view := ctx.Session.Nav.Peek().View
		if h, ok := r.texts[view]; ok {
			return h(ctx, e.Body)
		}
		if r.fallback != nil {
			return r.fallback(ctx, e.Body)
		}
		return fmt.Errorf("%w: %q", ErrUnhandledView, view)
	default:
		return fmt.Errorf("dispatch: unsupported event type %T", ev)
	}
}
