package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"fraudquest-bot/internal/dispatch"
	"fraudquest-bot/internal/gateway"
	"fraudquest-bot/internal/model"
	"fraudquest-bot/internal/service"
	"fraudquest-bot/internal/session"
)

// ReferralHandler renders the invite screen and redeems deep-link codes.
type ReferralHandler struct {
	referral  *service.ReferralService
	analytics *service.AnalyticsService
	botName   string
}

// NewReferralHandler creates a new ReferralHandler instance.
func NewReferralHandler(referral *service.ReferralService, analytics *service.AnalyticsService, botName string) *ReferralHandler {
	return &ReferralHandler{referral: referral, analytics: analytics, botName: botName}
}

// HandleShow renders the user's invite code and completed count.
func (h *ReferralHandler) HandleShow(ctx *dispatch.Context, _ string) error {
	code, err := h.referral.GetOrCreateCode(context.Background(), ctx.UserID)
	if err != nil {
		return ctx.Respond.Notify("Something went wrong, please try again later")
	}
	completed, err := h.referral.CompletedCount(context.Background(), ctx.UserID)
	if err != nil {
		return ctx.Respond.Notify("Something went wrong, please try again later")
	}

	ctx.Session.Nav.Push(session.Frame{View: session.ViewReferral})

	text := fmt.Sprintf(
		"👥 Invite friends\n\n"+
			"Your code: %s\n"+
			"Share this link:\nhttps://t.me/%s?start=%s\n\n"+
			"Friends joined: %d\n"+
			"They get a signup bonus; every 3rd friend earns you an extra bonus.",
		code, h.botName, code, completed,
	)
	return ctx.Respond.Render(gateway.View{
		Text:    text,
		Buttons: [][]gateway.Button{backRow()},
	})
}

// RedeemCode processes a referral code carried by a /start deep link.
// Rejections are reported to the new user; store faults are logged and
// swallowed so onboarding never fails over a referral.
func (h *ReferralHandler) RedeemCode(ctx *dispatch.Context, code string) string {
	outcome, err := h.referral.ProcessReferral(context.Background(), code, ctx.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfReferral):
			return "You cannot use your own invite code."
		case errors.Is(err, service.ErrAlreadyReferred):
			return ""
		case errors.Is(err, service.ErrInvalidReferralCode):
			return "That invite code is not valid."
		default:
			log.Error().Err(err).Str("code", code).Int64("user_id", ctx.UserID).Msg("Failed to process referral")
			return ""
		}
	}

	h.analytics.Track(context.Background(), ctx.UserID, model.EventReferralCompleted, code)
	return fmt.Sprintf("🎁 Welcome bonus: +%d coins for joining via an invite!", outcome.SignupBonus)
}
