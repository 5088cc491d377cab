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

// ScenarioHandler drives the scenario screens: story list, dialogue walk,
// conclusion.
type ScenarioHandler struct {
	account   *service.AccountService
	ledger    *service.LedgerService
	analytics *service.AnalyticsService
	scenario  *engine.ScenarioEngine
	catalog   *content.Catalog
}

// NewScenarioHandler creates a new ScenarioHandler instance.
func NewScenarioHandler(
	account *service.AccountService,
	ledger *service.LedgerService,
	analytics *service.AnalyticsService,
	scenario *engine.ScenarioEngine,
	catalog *content.Catalog,
) *ScenarioHandler {
	return &ScenarioHandler{
		account:   account,
		ledger:    ledger,
		analytics: analytics,
		scenario:  scenario,
		catalog:   catalog,
	}
}

// HandleMenu shows the scenario list with completion markers.
func (h *ScenarioHandler) HandleMenu(ctx *dispatch.Context, _ string) error {
	user, err := h.account.GetUser(context.Background(), ctx.UserID)
	if err != nil {
		return ctx.Respond.Notify("Something went wrong, please try again later")
	}

	ctx.Session.Scenario = nil
	ctx.Session.Nav.Push(session.Frame{View: session.ViewScenarioMenu})

	var rows [][]gateway.Button
	for _, sc := range h.catalog.Scenarios(user.Language) {
		label := "🎭 " + sc.Title
		if sc.Badge != "" && user.HasBadge(sc.Badge) {
			label = "✅ " + sc.Title
		}
		rows = append(rows, []gateway.Button{
			btn(label, dispatch.ActionScenarioStart, sc.ID),
		})
	}
	rows = append(rows, backRow())

	text := "🎭 Scenarios\n\nStep into a realistic scam situation and choose how to respond. A safe ending earns coins and a badge."
	return ctx.Respond.Render(gateway.View{Text: text, Buttons: rows})
}

// HandleStart begins a scenario walk.
func (h *ScenarioHandler) HandleStart(ctx *dispatch.Context, payload string) error {
	user, err := h.account.GetUser(context.Background(), ctx.UserID)
	if err != nil {
		return ctx.Respond.Notify("Something went wrong, please try again later")
	}

	state, node, err := h.scenario.Start(user.Language, payload)
	if err != nil {
		return ctx.Respond.Notify("Invalid selection")
	}
	if node == nil {
		return ctx.Respond.Notify("This scenario is unavailable right now")
	}

	ctx.Session.Scenario = state
	ctx.Session.Nav.Push(session.Frame{View: session.ViewScenarioPlay, Arg: payload})
	h.analytics.Track(context.Background(), ctx.UserID, model.EventScenarioStart, payload)

	sc, _ := h.catalog.Scenario(user.Language, payload)
	text := fmt.Sprintf("🎭 %s\n\n%s\n\n%s", sc.Title, sc.Intro, node.Text)
	return ctx.Respond.Render(nodeView(text, node))
}

// HandleChoice applies an option pick on the current node.
func (h *ScenarioHandler) HandleChoice(ctx *dispatch.Context, payload string) error {
	idx, err := strconv.Atoi(payload)
	if err != nil {
		return ctx.Respond.Notify("Invalid selection")
	}

	state := ctx.Session.Scenario
	result, err := h.scenario.Choose(state, idx)
	if err != nil {
		if errors.Is(err, engine.ErrNoActiveScenario) || errors.Is(err, engine.ErrScenarioNotFound) {
			return h.HandleMenu(ctx, "")
		}
		return ctx.Respond.Notify("Invalid selection")
	}

	if result.Conclusion != nil {
		return h.conclude(ctx, state, result)
	}

	text := result.Feedback + "\n\n" + result.Node.Text
	return ctx.Respond.Render(nodeView(text, result.Node))
}

// conclude settles a finished walk: grants any reward, discards the state,
// and rewrites the top frame so back lands on the scenario list.
func (h *ScenarioHandler) conclude(ctx *dispatch.Context, state *engine.ScenarioState, result *engine.StepResult) error {
	c := result.Conclusion
	scenarioID := state.ScenarioID
	ctx.Session.Scenario = nil
	ctx.Session.Nav.ReplaceTop(session.Frame{View: session.ViewScenarioMenu})
	h.analytics.Track(context.Background(), ctx.UserID, model.EventScenarioComplete,
		fmt.Sprintf("scenario=%s outcome=%s", scenarioID, c.Outcome))

	var icon, verdict string
	switch c.Outcome {
	case content.OutcomeSuccess:
		icon, verdict = "🎉", "You stayed safe!"
	case content.OutcomeReport:
		icon, verdict = "🛡", "Reported. Well handled!"
	default:
		icon, verdict = "💸", "The scam got through this time."
	}

	text := fmt.Sprintf("%s %s\n\n%s", icon, verdict, c.Text)
	if c.Outcome == content.OutcomeSuccess {
		grant, err := h.ledger.ApplyScenarioConclusion(context.Background(), ctx.UserID, c)
		if err != nil {
			log.Error().Err(err).Int64("user_id", ctx.UserID).Str("scenario", scenarioID).Msg("Failed to settle scenario reward")
			return ctx.Respond.Notify("Something went wrong, please try again later")
		}
		text += fmt.Sprintf("\n\n💰 +%d coins", c.Reward)
		if grant.BadgeGranted != "" {
			text += fmt.Sprintf("\n🏅 New badge: %s", badgeLine([]string{grant.BadgeGranted}))
		}
		text += fmt.Sprintf("\n🏆 Score: %d", grant.NewScore)
	}

	return ctx.Respond.Render(gateway.View{
		Text: text,
		Buttons: [][]gateway.Button{
			{btn("🎭 More scenarios", dispatch.ActionScenarioMenu, "")},
			backRow(),
		},
	})
}

func nodeView(text string, node *content.Node) gateway.View {
	var rows [][]gateway.Button
	for i, opt := range node.Options {
		rows = append(rows, []gateway.Button{
			btn(opt.Label, dispatch.ActionScenarioChoice, strconv.Itoa(i)),
		})
	}
	rows = append(rows, []gateway.Button{btn("🏠 Main menu", dispatch.ActionMainMenu, "")})
	return gateway.View{Text: text, Buttons: rows}
}
