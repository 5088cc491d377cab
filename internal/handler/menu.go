package handler

import (
	"context"
	"errors"
	"fmt"

	"fraudquest-bot/internal/config"
	"fraudquest-bot/internal/dispatch"
	"fraudquest-bot/internal/gateway"
	"fraudquest-bot/internal/service"
	"fraudquest-bot/internal/session"
)

// MenuHandler serves the main menu and the small leaf screens around it:
// balance, shop, help, subscription, and the generic back action.
type MenuHandler struct {
	account  *service.AccountService
	ledger   *service.LedgerService
	cfg      *config.Config
	renderer *Renderer
}

// NewMenuHandler creates a new MenuHandler instance.
func NewMenuHandler(account *service.AccountService, ledger *service.LedgerService, cfg *config.Config) *MenuHandler {
	return &MenuHandler{account: account, ledger: ledger, cfg: cfg}
}

// SetRenderer wires the back-action renderer. Set once during router
// construction; the renderer needs the handlers to exist first.
func (h *MenuHandler) SetRenderer(renderer *Renderer) {
	h.renderer = renderer
}

// ShowMainMenu resets navigation to the root and renders the menu.
func (h *MenuHandler) ShowMainMenu(ctx *dispatch.Context, _ string) error {
	user, _, err := h.account.EnsureUser(context.Background(), ctx.UserID, ctx.Username, ctx.FirstName)
	if err != nil {
		return ctx.Respond.Notify("Something went wrong, please try again later")
	}

	ctx.Session.Nav.Reset()
	ctx.Session.Quiz = nil
	ctx.Session.Scenario = nil
	return ctx.Respond.Render(mainMenuView(user))
}

// HandleBack pops the navigation stack and re-renders the exposed view.
func (h *MenuHandler) HandleBack(ctx *dispatch.Context, _ string) error {
	frame, _ := ctx.Session.Nav.Pop()
	return h.renderer.RenderFrame(ctx, frame)
}

// HandleBalance shows coins, passed quizzes, and badges.
func (h *MenuHandler) HandleBalance(ctx *dispatch.Context, _ string) error {
	user, err := h.account.GetUser(context.Background(), ctx.UserID)
	if err != nil {
		return ctx.Respond.Notify("Something went wrong, please try again later")
	}

	ctx.Session.Nav.Push(session.Frame{View: session.ViewBalance})
	text := fmt.Sprintf(
		"💰 Your balance\n\n"+
			"Coins: %d\n"+
			"Quizzes passed: %d\n"+
			"Scenario score: %d\n"+
			"Badges: %s",
		user.Coins, user.QuizzesPassed, user.ScenarioScore, badgeLine(user.Badges()),
	)
	return ctx.Respond.Render(gateway.View{
		Text: text,
		Buttons: [][]gateway.Button{
			{btn("🛒 Shop", dispatch.ActionShop, "")},
			backRow(),
		},
	})
}

// HandleShop shows the hint shop.
func (h *MenuHandler) HandleShop(ctx *dispatch.Context, _ string) error {
	user, err := h.account.GetUser(context.Background(), ctx.UserID)
	if err != nil {
		return ctx.Respond.Notify("Something went wrong, please try again later")
	}

	ctx.Session.Nav.Push(session.Frame{View: session.ViewShop})
	text := fmt.Sprintf(
		"🛒 Shop\n\nCoins: %d\n\n💡 Quiz hint: %d coins\nA hint removes a wrong option on your current question.",
		user.Coins, h.cfg.Shop.HintCost,
	)
	return ctx.Respond.Render(gateway.View{
		Text: text,
		Buttons: [][]gateway.Button{
			{btn(fmt.Sprintf("💡 Buy hint (%d)", h.cfg.Shop.HintCost), dispatch.ActionBuyHint, "")},
			backRow(),
		},
	})
}

// HandleBuyHint debits the hint price. The hint itself is delivered as a
// toast so the current screen stays intact.
func (h *MenuHandler) HandleBuyHint(ctx *dispatch.Context, _ string) error {
	_, err := h.ledger.SpendCoins(context.Background(), ctx.UserID, h.cfg.Shop.HintCost)
	if err != nil {
		if errors.Is(err, service.ErrInsufficientCoins) {
			return ctx.Respond.Notify(fmt.Sprintf("Not enough coins: a hint costs %d", h.cfg.Shop.HintCost))
		}
		return ctx.Respond.Notify("Something went wrong, please try again later")
	}
	return ctx.Respond.Notify("💡 Hint: scammers push you to act fast. Slow down and verify.")
}

// HandleHelp shows the command reference.
func (h *MenuHandler) HandleHelp(ctx *dispatch.Context, _ string) error {
	ctx.Session.Nav.Push(session.Frame{View: session.ViewHelp})
	text := "ℹ️ FraudQuest\n\n" +
		"📝 Quizzes: answer questions, pass levels, earn coins. A perfect score unlocks the next level.\n" +
		"🎭 Scenarios: walk through realistic scam situations and choose your response.\n" +
		"🏆 Leaderboard: coins, passed quizzes, and scenario points add up to your score.\n" +
		"👥 Invite friends: share your code, both of you earn bonuses.\n\n" +
		"Commands: /menu /myinfo /subscribe /unsubscribe /help"
	return ctx.Respond.Render(gateway.View{
		Text:    text,
		Buttons: [][]gateway.Button{backRow()},
	})
}

// HandleSubscribe turns on the daily tip subscription.
func (h *MenuHandler) HandleSubscribe(ctx *dispatch.Context, _ string) error {
	if err := h.account.SetSubscribed(context.Background(), ctx.UserID, true); err != nil {
		return ctx.Respond.Notify("Something went wrong, please try again later")
	}
	return ctx.Respond.Notify("✅ Subscribed to daily fraud-safety tips")
}

// HandleUnsubscribe turns off the daily tip subscription.
func (h *MenuHandler) HandleUnsubscribe(ctx *dispatch.Context, _ string) error {
	if err := h.account.SetSubscribed(context.Background(), ctx.UserID, false); err != nil {
		return ctx.Respond.Notify("Something went wrong, please try again later")
	}
	return ctx.Respond.Notify("Unsubscribed from daily tips")
}
