// Package handler implements the conversational screens: it routes dispatched
// events into the engines and services and renders views back through the
// gateway.
package handler

import (
	"fmt"
	"strings"

	"fraudquest-bot/internal/dispatch"
	"fraudquest-bot/internal/gateway"
	"fraudquest-bot/internal/model"
)

func btn(label string, action dispatch.ActionID, payload string) gateway.Button {
	return gateway.Button{Label: label, Data: dispatch.Encode(action, payload)}
}

func backRow() []gateway.Button {
	return []gateway.Button{
		btn("⬅️ Back", dispatch.ActionBack, ""),
		btn("🏠 Main menu", dispatch.ActionMainMenu, ""),
	}
}

func mainMenuView(user *model.User) gateway.View {
	name := user.FirstName
	if name == "" {
		name = user.Username
	}
	text := fmt.Sprintf(
		"🛡 Hi %s! Welcome to FraudQuest.\n\n"+
			"Learn to spot scams through quizzes and real-life scenarios.\n"+
			"💰 Coins: %d  |  🏅 Badges: %d",
		name, user.Coins, len(user.Badges()),
	)
	return gateway.View{
		Text: text,
		Buttons: [][]gateway.Button{
			{
				btn("📝 Quizzes", dispatch.ActionQuizMenu, ""),
				btn("🎭 Scenarios", dispatch.ActionScenarioMenu, ""),
			},
			{
				btn("💰 Balance", dispatch.ActionBalance, ""),
				btn("🏆 Leaderboard", dispatch.ActionLeaderboard, ""),
			},
			{
				btn("👥 Invite friends", dispatch.ActionReferral, ""),
				btn("ℹ️ Help", dispatch.ActionHelp, ""),
			},
		},
	}
}

func badgeLine(badges []string) string {
	if len(badges) == 0 {
		return "none yet"
	}
	titled := make([]string, len(badges))
	for i, b := range badges {
		titled[i] = strings.ReplaceAll(b, "_", " ")
	}
	return strings.Join(titled, ", ")
}
