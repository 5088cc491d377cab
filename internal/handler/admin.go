package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"fraudquest-bot/internal/gateway"
	"fraudquest-bot/internal/service"
)

// AdminHandler serves admin-only commands. These bypass the dispatch router
// and work on the telebot context directly.
type AdminHandler struct {
	account     *service.AccountService
	analytics   *service.AnalyticsService
	broadcaster gateway.Broadcaster
}

// NewAdminHandler creates a new AdminHandler instance.
func NewAdminHandler(account *service.AccountService, analytics *service.AnalyticsService, broadcaster gateway.Broadcaster) *AdminHandler {
	return &AdminHandler{account: account, analytics: analytics, broadcaster: broadcaster}
}

// HandleStats shows the recent daily aggregates.
func (h *AdminHandler) HandleStats(c tele.Context) error {
	recent, total, err := h.analytics.Summary(context.Background(), 7)
	if err != nil {
		return c.Reply("Failed to load stats, please try again later")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Stats — %d users total\n\n", total)
	if len(recent) == 0 {
		sb.WriteString("No aggregated days yet.")
	}
	for _, day := range recent {
		fmt.Fprintf(&sb, "%s  DAU %d | new %d | quizzes %d | scenarios %d\n",
			day.Date.Format("2006-01-02"), day.DAU, day.NewUsers, day.QuizCompletions, day.ScenarioCompletions)
	}
	return c.Reply(sb.String())
}

// HandleBroadcast sends the command's argument text to every tip subscriber.
func (h *AdminHandler) HandleBroadcast(c tele.Context) error {
	text := strings.TrimSpace(strings.TrimPrefix(c.Text(), "/broadcast"))
	if text == "" {
		return c.Reply("Usage: /broadcast <message>")
	}

	ids, err := h.account.Subscribers(context.Background())
	if err != nil {
		return c.Reply("Failed to load subscribers, please try again later")
	}

	sent := 0
	for _, id := range ids {
		if err := h.broadcaster.Push(id, gateway.View{Text: text}); err != nil {
			log.Warn().Err(err).Int64("user_id", id).Msg("Broadcast delivery failed")
			continue
		}
		sent++
	}
	return c.Reply(fmt.Sprintf("Broadcast sent to %d of %d subscribers", sent, len(ids)))
}
