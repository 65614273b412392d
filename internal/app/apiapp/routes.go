package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/PaulinaShao/Akilipesa-sub002/internal/config"
	authsvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/auth"
	callsvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/calls"
	chatsvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/chat"
	entsvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/entitlements"
	mediasvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/media"
	ratesvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/rate"
	reactsvc "github.com/PaulinaShao/Akilipesa-sub002/internal/services/reactions"
	"github.com/PaulinaShao/Akilipesa-sub002/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService     *authsvc.Service
	EntitlementGate *entsvc.Gate
	CallService     *callsvc.Service
	ChatService     *chatsvc.Service
	ChatLimiter     *ratesvc.Limiter
	ReactionService *reactsvc.Service
	MediaService    *mediasvc.Service
	Logger          *zap.Logger
	Config          config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	upsell := deps.Config.Remote.Upsell.SignInPrompt

	healthHandler := handlers.NewHealthHandler()
	configHandler := handlers.NewConfigHandler(deps.Config.Remote)
	authHandler := handlers.NewAuthHandler(deps.AuthService)
	trialHandler := handlers.NewTrialHandler(deps.EntitlementGate)
	callHandler := handlers.NewCallHandler(deps.EntitlementGate, deps.CallService, upsell)
	chatHandler := handlers.NewChatHandler(deps.EntitlementGate, deps.ChatService, deps.ChatLimiter, upsell)
	reactionHandler := handlers.NewReactionHandler(deps.EntitlementGate, deps.ReactionService, upsell)
	mediaHandler := handlers.NewMediaHandler(deps.MediaService)
	authMW := AuthMiddleware(deps.AuthService, deps.Logger)

	r.Get("/healthz", healthHandler.Handle)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/config", configHandler.Handle)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/guest", authHandler.Guest)
			r.Post("/phone", authHandler.Phone)
			r.Post("/refresh", authHandler.Refresh)
			r.With(authMW).Post("/logout", authHandler.Logout)
			r.With(authMW).Post("/logout_all", authHandler.LogoutAll)
		})

		r.With(authMW).Get("/trials", trialHandler.Handle)
		r.With(authMW).Post("/calls", callHandler.Start)
		r.With(authMW).Post("/chat", chatHandler.Handle)
		r.With(authMW).Post("/reactions", reactionHandler.Handle)
		r.With(authMW).Post("/media/upload", mediaHandler.Upload)
		r.With(authMW).Get("/media/{id}", mediaHandler.Get)
	})
}
