package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"fraudquest-bot/internal/content"
	"fraudquest-bot/internal/dispatch"
	"fraudquest-bot/internal/engine"
	"fraudquest-bot/internal/gateway"
	"fraudquest-bot/internal/model"
	"fraudquest-bot/internal/service"
	"fraudquest-bot/internal/session"
)

// QuizHandler drives the quiz screens: level list, question flow, completion.
type QuizHandler struct {
	account   *service.AccountService
	ledger    *service.LedgerService
	analytics *service.AnalyticsService
	quiz      *engine.QuizMachine
	catalog   *content.Catalog
}

// NewQuizHandler creates a new QuizHandler instance.
func NewQuizHandler(
	account *service.AccountService,
	ledger *service.LedgerService,
	analytics *service.AnalyticsService,
	quiz *engine.QuizMachine,
	catalog *content.Catalog,
) *QuizHandler {
	return &QuizHandler{
		account:   account,
		ledger:    ledger,
		analytics: analytics,
		quiz:      quiz,
		catalog:   catalog,
	}
}

// HandleMenu shows the level list with lock markers.
func (h *QuizHandler) HandleMenu(ctx *dispatch.Context, _ string) error {
	user, err := h.account.GetUser(context.Background(), ctx.UserID)
	if err != nil {
		return ctx.Respond.Notify("Something went wrong, please try again later")
	}

	ctx.Session.Quiz = nil
	ctx.Session.Nav.Push(session.Frame{View: session.ViewQuizLevels})

	maxLevel := h.catalog.MaxLevel(user.Language)
	var rows [][]gateway.Button
	for level := 1; level <= maxLevel; level++ {
		label := fmt.Sprintf("📝 Level %d", level)
		if level > user.MaxUnlockedLevel {
			label = fmt.Sprintf("🔒 Level %d", level)
		}
		rows = append(rows, []gateway.Button{
			btn(label, dispatch.ActionQuizLevel, strconv.Itoa(level)),
		})
	}
	rows = append(rows, backRow())

	text := fmt.Sprintf(
		"📝 Quizzes\n\nPass a level to earn coins; a perfect score unlocks the next one.\nUnlocked up to level %d.",
		user.MaxUnlockedLevel,
	)
	return ctx.Respond.Render(gateway.View{Text: text, Buttons: rows})
}

// HandleLevel starts an attempt at the picked level.
func (h *QuizHandler) HandleLevel(ctx *dispatch.Context, payload string) error {
	level, err := strconv.Atoi(payload)
	if err != nil || level < 1 {
		return ctx.Respond.Notify("Invalid selection")
	}

	user, err := h.account.GetUser(context.Background(), ctx.UserID)
	if err != nil {
		return ctx.Respond.Notify("Something went wrong, please try again later")
	}

	sel := h.quiz.SelectLevel(user.Language, level, user.MaxUnlockedLevel)
	switch sel.Status {
	case engine.LevelLocked:
		return ctx.Respond.Notify(fmt.Sprintf("🔒 Level %d is locked. Get a perfect score on level %d first.", level, user.MaxUnlockedLevel))
	case engine.LevelNoQuestions:
		return ctx.Respond.Notify("This level has no questions yet, check back later")
	}

	ctx.Session.Quiz = sel.Session
	ctx.Session.Nav.Push(session.Frame{View: session.ViewQuizQuestion, Arg: payload})
	h.analytics.Track(context.Background(), ctx.UserID, model.EventQuizStart, payload)

	return ctx.Respond.Render(questionView(sel.Session, sel.Question, sel.Total))
}

// HandleAnswer applies an answer to the in-progress attempt.
func (h *QuizHandler) HandleAnswer(ctx *dispatch.Context, payload string) error {
	idx, err := strconv.Atoi(payload)
	if err != nil {
		return ctx.Respond.Notify("Invalid selection")
	}

	sess := ctx.Session.Quiz
	result, err := h.quiz.Answer(sess, idx)
	if err != nil {
		if errors.Is(err, engine.ErrNoActiveQuiz) {
			return h.HandleMenu(ctx, "")
		}
		return ctx.Respond.Notify("Invalid selection")
	}

	if !result.Done() {
		prefix := "✅ Correct!"
		if !result.Correct {
			prefix = "❌ Not quite."
		}
		_ = ctx.Respond.Notify(prefix)

		questions := h.catalog.Questions(sess.Language, sess.Level)
		view := questionView(sess, result.Next, len(questions))
		return ctx.Respond.Render(view)
	}

	return h.finish(ctx, result.Completion)
}

// finish settles a completed attempt: grants the reward, discards the quiz
// session, and rewrites the top frame so back lands on the level list.
func (h *QuizHandler) finish(ctx *dispatch.Context, completion *engine.QuizCompletion) error {
	ctx.Session.Quiz = nil
	ctx.Session.Nav.ReplaceTop(session.Frame{View: session.ViewQuizLevels})
	h.analytics.Track(context.Background(), ctx.UserID, model.EventQuizComplete,
		fmt.Sprintf("level=%d correct=%d", completion.Level, completion.CorrectCount))

	result, err := h.ledger.ApplyQuizCompletion(context.Background(), ctx.UserID, completion)
	if err != nil {
		log.Error().Err(err).Int64("user_id", ctx.UserID).Msg("Failed to settle quiz reward")
		return ctx.Respond.Notify("Something went wrong, please try again later")
	}

	var text string
	if completion.Passed {
		text = fmt.Sprintf("🎉 Level %d passed!\n\n✅ %d/%d correct\n💰 +%d coins",
			completion.Level, completion.CorrectCount, completion.Total, completion.Reward)
		if completion.Perfect {
			text += "\n⭐ Perfect score!"
			if completion.UnlockLevel > 0 && completion.UnlockLevel > completion.Level {
				text += fmt.Sprintf("\n🔓 Level %d unlocked", completion.UnlockLevel)
			}
		}
	} else {
		text = fmt.Sprintf("😞 Level %d not passed: %d/%d correct.\n💰 +%d coins for trying.\n\nReview the feedback and try again!",
			completion.Level, completion.CorrectCount, completion.Total, completion.Reward)
	}
	text += fmt.Sprintf("\n🏆 Score: %d", result.NewScore)

	return ctx.Respond.Render(gateway.View{
		Text: text,
		Buttons: [][]gateway.Button{
			{btn("🔁 Try another level", dispatch.ActionQuizMenu, "")},
			backRow(),
		},
	})
}

func questionView(sess *engine.QuizSession, q *content.QuizQuestion, total int) gateway.View {
	text := fmt.Sprintf("📝 Level %d — question %d/%d\n\n%s",
		sess.Level, sess.QuestionIndex+1, total, q.Prompt)

	var rows [][]gateway.Button
	for i, opt := range q.Options {
		rows = append(rows, []gateway.Button{
			btn(opt, dispatch.ActionQuizAnswer, strconv.Itoa(i)),
		})
	}
	rows = append(rows, []gateway.Button{btn("🏠 Main menu", dispatch.ActionMainMenu, "")})
	return gateway.View{Text: text, Buttons: rows}
}
