// Package bot provides the Telegram bot initialization and event routing.
package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"fraudquest-bot/internal/config"
	"fraudquest-bot/internal/dispatch"
	"fraudquest-bot/internal/gateway"
	"fraudquest-bot/internal/handler"
	"fraudquest-bot/internal/pkg/lock"
	"fraudquest-bot/internal/service"
	"fraudquest-bot/internal/session"
)

// Bot wraps the telebot instance with application dependencies.
type Bot struct {
	bot      *tele.Bot
	cfg      *config.Config
	router   *dispatch.Router
	sessions *session.Store
	userLock *lock.UserLock

	// Handlers
	menuHandler        *handler.MenuHandler
	quizHandler        *handler.QuizHandler
	scenarioHandler    *handler.ScenarioHandler
	leaderboardHandler *handler.LeaderboardHandler
	referralHandler    *handler.ReferralHandler
	adminHandler       *handler.AdminHandler
}

// Dependencies holds everything the bot needs to route events.
type Dependencies struct {
	Config             *config.Config
	Sessions           *session.Store
	UserLock           *lock.UserLock
	MenuHandler        *handler.MenuHandler
	QuizHandler        *handler.QuizHandler
	ScenarioHandler    *handler.ScenarioHandler
	LeaderboardHandler *handler.LeaderboardHandler
	Account            *service.AccountService
	Analytics          *service.AnalyticsService
	Referral           *service.ReferralService
}

// New creates a new Bot instance with the given dependencies.
func New(deps *Dependencies) (*Bot, error) {
	if deps.Config.Bot.Token == "" {
		return nil, fmt.Errorf("bot token is required")
	}

	pref := tele.Settings{
		Token:  deps.Config.Bot.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	teleBot, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b := &Bot{
		bot:      teleBot,
		cfg:      deps.Config,
		sessions: deps.Sessions,
		userLock: deps.UserLock,

		menuHandler:        deps.MenuHandler,
		quizHandler:        deps.QuizHandler,
		scenarioHandler:    deps.ScenarioHandler,
		leaderboardHandler: deps.LeaderboardHandler,
	}

	// These two depend on the live telebot instance: the referral handler
	// needs the bot's own username for invite links, the admin handler
	// needs a broadcaster.
	b.referralHandler = handler.NewReferralHandler(deps.Referral, deps.Analytics, teleBot.Me.Username)
	b.adminHandler = handler.NewAdminHandler(deps.Account, deps.Analytics, gateway.NewTelegramBroadcaster(teleBot))

	b.router = buildRouter(b.menuHandler, b.quizHandler, b.scenarioHandler, b.leaderboardHandler, b.referralHandler)

	b.registerMiddleware()
	b.registerHandlers()

	return b, nil
}

// buildRouter binds every action to its handler and wires the back-action
// frame renderer.
func buildRouter(
	menu *handler.MenuHandler,
	quiz *handler.QuizHandler,
	scenario *handler.ScenarioHandler,
	leaderboard *handler.LeaderboardHandler,
	referral *handler.ReferralHandler,
) *dispatch.Router {
	renderer := handler.NewRenderer()
	renderer.RegisterHome(menu.ShowMainMenu)
	renderer.Register(session.ViewMainMenu, menu.ShowMainMenu)
	renderer.Register(session.ViewQuizLevels, quiz.HandleMenu)
	renderer.Register(session.ViewScenarioMenu, scenario.HandleMenu)
	renderer.Register(session.ViewBalance, menu.HandleBalance)
	renderer.Register(session.ViewShop, menu.HandleShop)
	renderer.Register(session.ViewLeaderboard, leaderboard.HandleShow)
	renderer.Register(session.ViewReferral, referral.HandleShow)
	renderer.Register(session.ViewHelp, menu.HandleHelp)
	menu.SetRenderer(renderer)

	r := dispatch.NewRouter()
	r.HandleButton(dispatch.ActionMainMenu, menu.ShowMainMenu)
	r.HandleButton(dispatch.ActionBack, menu.HandleBack)
	r.HandleButton(dispatch.ActionQuizMenu, quiz.HandleMenu)
	r.HandleButton(dispatch.ActionQuizLevel, quiz.HandleLevel)
	r.HandleButton(dispatch.ActionQuizAnswer, quiz.HandleAnswer)
	r.HandleButton(dispatch.ActionScenarioMenu, scenario.HandleMenu)
	r.HandleButton(dispatch.ActionScenarioStart, scenario.HandleStart)
	r.HandleButton(dispatch.ActionScenarioChoice, scenario.HandleChoice)
	r.HandleButton(dispatch.ActionBalance, menu.HandleBalance)
	r.HandleButton(dispatch.ActionShop, menu.HandleShop)
	r.HandleButton(dispatch.ActionBuyHint, menu.HandleBuyHint)
	r.HandleButton(dispatch.ActionLeaderboard, leaderboard.HandleShow)
	r.HandleButton(dispatch.ActionReferral, referral.HandleShow)
	r.HandleButton(dispatch.ActionSubscribe, menu.HandleSubscribe)
	r.HandleButton(dispatch.ActionUnsubscribe, menu.HandleUnsubscribe)
	r.HandleButton(dispatch.ActionHelp, menu.HandleHelp)

	// Free text outside a flow just re-shows the menu.
	r.HandleTextFallback(menu.ShowMainMenu)
	return r
}

// registerMiddleware registers all middleware.
func (b *Bot) registerMiddleware() {
	b.bot.Use(RecoveryMiddleware())
	b.bot.Use(LoggingMiddleware())
}

// registerHandlers registers all command and event handlers.
func (b *Bot) registerHandlers() {
	b.bot.Handle("/start", b.handleStart)
	b.bot.Handle("/menu", b.asEvent(func(ctx *dispatch.Context) error {
		return b.menuHandler.ShowMainMenu(ctx, "")
	}))
	b.bot.Handle("/help", b.asEvent(func(ctx *dispatch.Context) error {
		return b.menuHandler.HandleHelp(ctx, "")
	}))
	b.bot.Handle("/myinfo", b.asEvent(func(ctx *dispatch.Context) error {
		return b.menuHandler.HandleBalance(ctx, "")
	}))
	b.bot.Handle("/subscribe", b.asEvent(func(ctx *dispatch.Context) error {
		return b.menuHandler.HandleSubscribe(ctx, "")
	}))
	b.bot.Handle("/unsubscribe", b.asEvent(func(ctx *dispatch.Context) error {
		return b.menuHandler.HandleUnsubscribe(ctx, "")
	}))

	// Admin commands
	adminGroup := b.bot.Group()
	adminGroup.Use(AdminMiddleware(b.cfg))
	adminGroup.Handle("/stats", b.adminHandler.HandleStats)
	adminGroup.Handle("/broadcast", b.adminHandler.HandleBroadcast)

	b.bot.Handle(tele.OnCallback, b.handleCallback)
	b.bot.Handle(tele.OnText, b.handleText)
}

// buildContext assembles the dispatch context for one update.
func (b *Bot) buildContext(c tele.Context) *dispatch.Context {
	sender := c.Sender()
	return &dispatch.Context{
		UserID:    sender.ID,
		Username:  sender.Username,
		FirstName: sender.FirstName,
		Session:   b.sessions.Get(sender.ID),
		Respond:   gateway.NewTelegramResponder(c),
	}
}

// withUserLock serializes handling per user so a double-tap or retried
// update never interleaves two transitions on the same session.
func (b *Bot) withUserLock(c tele.Context, fn func(ctx *dispatch.Context) error) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	return b.userLock.WithLock(sender.ID, func() error {
		return fn(b.buildContext(c))
	})
}

func (b *Bot) asEvent(fn func(ctx *dispatch.Context) error) tele.HandlerFunc {
	return func(c tele.Context) error {
		return b.withUserLock(c, fn)
	}
}

// handleStart onboards the user and redeems a referral deep link when the
// /start payload carries one.
func (b *Bot) handleStart(c tele.Context) error {
	return b.withUserLock(c, func(ctx *dispatch.Context) error {
		if payload := strings.TrimSpace(c.Message().Payload); payload != "" {
			if notice := b.referralHandler.RedeemCode(ctx, payload); notice != "" {
				_ = c.Send(notice)
			}
		}
		return b.menuHandler.ShowMainMenu(ctx, "")
	})
}

func (b *Bot) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		return nil
	}

	// Telebot v3 may add a \f prefix to callback data
	data := strings.TrimPrefix(callback.Data, "\f")

	action, payload, err := dispatch.Parse(data)
	if err != nil {
		log.Warn().Str("data", data).Msg("Dropping callback with unknown action")
		return c.Respond(&tele.CallbackResponse{Text: "Invalid selection"})
	}

	return b.withUserLock(c, func(ctx *dispatch.Context) error {
		err := b.router.Dispatch(ctx, dispatch.ButtonPress{Action: action, Payload: payload})
		if err != nil {
			log.Error().Err(err).Str("action", string(action)).Int64("user_id", ctx.UserID).Msg("Callback handling failed")
		}
		// Answer the callback so the client stops its spinner, unless the
		// handler already answered it with a toast. A callback query accepts
		// only one answer.
		if r, ok := ctx.Respond.(*gateway.TelegramResponder); ok && r.Answered() {
			return nil
		}
		return c.Respond()
	})
}

func (b *Bot) handleText(c tele.Context) error {
	return b.withUserLock(c, func(ctx *dispatch.Context) error {
		err := b.router.Dispatch(ctx, dispatch.TextMessage{Body: c.Text()})
		if err != nil {
			log.Error().Err(err).Int64("user_id", ctx.UserID).Msg("Text handling failed")
		}
		return nil
	})
}

// Telebot returns the underlying telebot instance for collaborators that
// push messages outside a conversation turn.
func (b *Bot) Telebot() *tele.Bot {
	return b.bot
}

// Start starts the bot polling.
func (b *Bot) Start() {
	log.Info().Str("username", b.bot.Me.Username).Msg("Starting bot...")
	b.bot.Start()
}

// Stop stops the bot gracefully.
func (b *Bot) Stop() {
	log.Info().Msg("Stopping bot...")
	b.bot.Stop()
}
