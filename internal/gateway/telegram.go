package gateway

import (
	"strings"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"
)

// markupFor builds the inline keyboard for a view. A view with no buttons
// yields a nil markup so telebot sends a plain message.
func markupFor(view View) *tele.ReplyMarkup {
	if len(view.Buttons) == 0 {
		return nil
	}

	markup := &tele.ReplyMarkup{}
	var rows []tele.Row
	for _, row := range view.Buttons {
		var btns []tele.Btn
		for _, b := range row {
			btns = append(btns, markup.Data(b.Label, b.Data))
		}
		rows = append(rows, markup.Row(btns...))
	}
	markup.Inline(rows...)
	return markup
}

// TelegramResponder renders views through one telebot context.
type TelegramResponder struct {
	c        tele.Context
	answered bool
}

// NewTelegramResponder wraps a telebot context.
func NewTelegramResponder(c tele.Context) *TelegramResponder {
	return &TelegramResponder{c: c}
}

// Render edits the tapped message in place for callbacks, falling back to a
// fresh message when Telegram refuses the edit. Text messages always get a
// fresh reply.
func (r *TelegramResponder) Render(view View) error {
	markup := markupFor(view)

	if r.c.Callback() != nil {
		err := edit(r.c, view.Text, markup)
		if err == nil {
			return nil
		}
		if strings.Contains(err.Error(), "message is not modified") {
			return nil
		}
		log.Debug().Err(err).Msg("Edit failed, sending new message")
	}
	return send(r.c, view.Text, markup)
}

// Notify answers a callback with a toast, or replies in text flows. A
// callback query accepts only one answer, so Notify records that it took it.
func (r *TelegramResponder) Notify(text string) error {
	if r.c.Callback() != nil {
		r.answered = true
		return r.c.Respond(&tele.CallbackResponse{Text: text})
	}
	return r.c.Send(text)
}

// Answered reports whether the callback query was already answered.
func (r *TelegramResponder) Answered() bool {
	return r.answered
}

func edit(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if markup != nil {
		return c.Edit(text, markup)
	}
	return c.Edit(text)
}

func send(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if markup != nil {
		return c.Send(text, markup)
	}
	return c.Send(text)
}

// TelegramBroadcaster pushes views to users by id.
type TelegramBroadcaster struct {
	bot *tele.Bot
}

// NewTelegramBroadcaster wraps a telebot instance for out-of-turn sends.
func NewTelegramBroadcaster(bot *tele.Bot) *TelegramBroadcaster {
	return &TelegramBroadcaster{bot: bot}
}

// Push sends a view directly to a user. Blocked-bot errors are the caller's
// to handle; the broadcaster reports them as-is.
func (b *TelegramBroadcaster) Push(userID int64, view View) error {
	recipient := &tele.User{ID: userID}
	if markup := markupFor(view); markup != nil {
		_, err := b.bot.Send(recipient, view.Text, markup)
		return err
	}
	_, err := b.bot.Send(recipient, view.Text)
	return err
}
