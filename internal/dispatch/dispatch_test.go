package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudquest-bot/internal/session"
)

func TestEncodeParse(t *testing.T) {
	data := Encode(ActionQuizAnswer, "2")
	assert.Equal(t, "quiz_answer|2", data)

	action, payload, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, ActionQuizAnswer, action)
	assert.Equal(t, "2", payload)
}

func TestEncodeWithoutPayload(t *testing.T) {
	data := Encode(ActionMainMenu, "")
	assert.Equal(t, "main_menu", data)

	action, payload, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, ActionMainMenu, action)
	assert.Empty(t, payload)
}

func TestParsePayloadKeepsSeparators(t *testing.T) {
	action, payload, err := Parse("scenario_start|phishing_link|extra")
	require.NoError(t, err)
	assert.Equal(t, ActionScenarioStart, action)
	assert.Equal(t, "phishing_link|extra", payload)
}

func TestParseUnknownAction(t *testing.T) {
	_, _, err := Parse("drop_tables|1")
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, _, err = Parse("")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func testContext() *Context {
	return &Context{
		UserID:  7,
		Session: &session.Session{Nav: session.NewNavStack()},
	}
}

func TestRouterDispatchButton(t *testing.T) {
	r := NewRouter()

	var gotPayload string
	r.HandleButton(ActionQuizLevel, func(_ *Context, payload string) error {
		gotPayload = payload
		return nil
	})

	err := r.Dispatch(testContext(), ButtonPress{Action: ActionQuizLevel, Payload: "3"})
	require.NoError(t, err)
	assert.Equal(t, "3", gotPayload)
}

func TestRouterUnknownButton(t *testing.T) {
	r := NewRouter()

	err := r.Dispatch(testContext(), ButtonPress{Action: ActionQuizLevel})
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestRouterTextRoutedByTopView(t *testing.T) {
	r := NewRouter()

	var gotBody string
	r.HandleText(session.ViewReferral, func(_ *Context, body string) error {
		gotBody = body
		return nil
	})
	r.HandleTextFallback(func(_ *Context, _ string) error {
		t.Fatal("fallback should not run when a view handler matches")
		return nil
	})

	ctx := testContext()
	ctx.Session.Nav.Push(session.Frame{View: session.ViewReferral})

	err := r.Dispatch(ctx, TextMessage{Body: "ABCD1234"})
	require.NoError(t, err)
	assert.Equal(t, "ABCD1234", gotBody)
}

func TestRouterTextFallback(t *testing.T) {
	r := NewRouter()

	called := false
	r.HandleTextFallback(func(_ *Context, _ string) error {
		called = true
		return nil
	})

	err := r.Dispatch(testContext(), TextMessage{Body: "hello"})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestRouterTextUnhandledView(t *testing.T) {
	r := NewRouter()

	err := r.Dispatch(testContext(), TextMessage{Body: "hello"})
	assert.ErrorIs(t, err, ErrUnhandledView)
}

func TestRouterDuplicateRegistrationPanics(t *testing.T) {
	r := NewRouter()
	h := func(_ *Context, _ string) error { return nil }

	r.HandleButton(ActionHelp, h)
	assert.Panics(t, func() { r.HandleButton(ActionHelp, h) })
}
