package handler

import (
	"context"
	"fmt"
	"strings"

	"fraudquest-bot/internal/dispatch"
	"fraudquest-bot/internal/gateway"
	"fraudquest-bot/internal/model"
	"fraudquest-bot/internal/service"
	"fraudquest-bot/internal/session"
)

const leaderboardLimit = 10

var periodTitles = map[model.Period]string{
	model.PeriodAllTime: "All time",
	model.PeriodWeekly:  "This week",
	model.PeriodMonthly: "This month",
}

// LeaderboardHandler renders the per-period standings.
type LeaderboardHandler struct {
	leaderboard *service.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler instance.
func NewLeaderboardHandler(leaderboard *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard}
}

// HandleShow renders the board for the period in the payload, defaulting to
// all time.
func (h *LeaderboardHandler) HandleShow(ctx *dispatch.Context, payload string) error {
	period := model.Period(payload)
	if !period.Valid() {
		period = model.PeriodAllTime
	}

	view, err := h.leaderboard.Get(context.Background(), period, leaderboardLimit, ctx.UserID)
	if err != nil {
		return ctx.Respond.Notify("Something went wrong, please try again later")
	}

	frame := session.Frame{View: session.ViewLeaderboard, Arg: string(period)}
	if ctx.Session.Nav.Peek().View == session.ViewLeaderboard {
		// Switching period rewrites the frame instead of stacking one per tap.
		ctx.Session.Nav.ReplaceTop(frame)
	} else {
		ctx.Session.Nav.Push(frame)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🏆 Leaderboard — %s\n\n", periodTitles[period])
	if len(view.Top) == 0 {
		sb.WriteString("No scores yet. Be the first!\n")
	}
	for i, row := range view.Top {
		medal := fmt.Sprintf("%d.", row.Rank)
		switch i {
		case 0:
			medal = "🥇"
		case 1:
			medal = "🥈"
		case 2:
			medal = "🥉"
		}
		name := row.DisplayName
		if name == "" {
			name = fmt.Sprintf("Player %d", row.UserID)
		}
		fmt.Fprintf(&sb, "%s %s — %d\n", medal, name, row.Score)
	}
	if view.Self != nil {
		fmt.Fprintf(&sb, "\nYour rank: %d of %d (better than %.0f%% of players)\nYour score: %d",
			view.Self.Rank, view.Self.Total, view.Self.Percentile, view.Self.Score)
	}

	var periodRow []gateway.Button
	for _, p := range model.Periods() {
		label := periodTitles[p]
		if p == period {
			label = "• " + label
		}
		periodRow = append(periodRow, btn(label, dispatch.ActionLeaderboard, string(p)))
	}

	return ctx.Respond.Render(gateway.View{
		Text: sb.String(),
		Buttons: [][]gateway.Button{
			periodRow,
			backRow(),
		},
	})
}
