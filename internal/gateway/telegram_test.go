package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v3"
)

// stubContext fakes the slice of tele.Context the responder touches. The
// embedded interface panics on anything else, which keeps the stub honest.
type stubContext struct {
	tele.Context
	callback *tele.Callback

	responds int
	sends    int
}

func (s *stubContext) Callback() *tele.Callback {
	return s.callback
}

func (s *stubContext) Respond(resp ...*tele.CallbackResponse) error {
	s.responds++
	return nil
}

func (s *stubContext) Send(what interface{}, opts ...interface{}) error {
	s.sends++
	return nil
}

func TestNotifyAnswersCallbackExactlyOnce(t *testing.T) {
	c := &stubContext{callback: &tele.Callback{ID: "1"}}
	r := NewTelegramResponder(c)

	assert.False(t, r.Answered())
	assert.NoError(t, r.Notify("✅ Correct!"))
	assert.True(t, r.Answered())
	assert.Equal(t, 1, c.responds)
	assert.Equal(t, 0, c.sends)

	// The dispatcher consults Answered before its closing Respond, so a
	// handler toast is the query's one and only answer.
	if !r.Answered() {
		_ = c.Respond()
	}
	assert.Equal(t, 1, c.responds)
}

func TestNotifyOutsideCallbackSendsText(t *testing.T) {
	c := &stubContext{}
	r := NewTelegramResponder(c)

	assert.NoError(t, r.Notify("hello"))
	assert.False(t, r.Answered())
	assert.Equal(t, 0, c.responds)
	assert.Equal(t, 1, c.sends)
}

func TestMarkupForEmptyViewIsNil(t *testing.T) {
	assert.Nil(t, markupFor(View{Text: "plain"}))

	markup := markupFor(View{Buttons: [][]Button{{{Label: "Go", Data: "menu|"}}}})
	assert.NotNil(t, markup)
	assert.Len(t, markup.InlineKeyboard, 1)
}
