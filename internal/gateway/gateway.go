// Package gateway renders views to the messaging transport. Handlers build
// transport-neutral views; the telebot implementation turns them into
// Telegram messages with inline keyboards.
package gateway

// Button is one inline button. Data is pre-encoded callback data.
type Button struct {
	Label string
	Data  string
}

// View is one rendered screen: text plus button rows.
type View struct {
	Text    string
	Buttons [][]Button
}

// Responder delivers views within the conversation turn that triggered it.
// Render edits the triggering message in place when the transport supports
// it; Notify shows a short acknowledgement without replacing the screen.
type Responder interface {
	Render(view View) error
	Notify(text string) error
}

// Broadcaster pushes a view to a user outside any conversation turn, e.g.
// the daily tip job.
type Broadcaster interface {
	Push(userID int64, view View) error
}
