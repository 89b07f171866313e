package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/service"
	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/store"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/httpx"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/jwtx"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store         store.Store
	AuthService   *service.AuthService
	InviteService *service.InviteService
	RosterService *service.RosterService
	ReportService *service.ReportService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerPlayers()
	r.registerInvites()
	r.registerReports()
	r.registerMe()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	signUpHandler := &SignUpHandler{AuthService: r.AuthService}
	loginHandler := &CoachLoginHandler{AuthService: r.AuthService}
	playerLoginHandler := &PlayerLoginHandler{AuthService: r.AuthService}

	// Signup and login attempts get strict IP rate limits to slow down
	// credential stuffing
	r.Mux.Handle("POST /v1/auth/signup",
		httpx.Chain(signUpHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/player/login",
		httpx.Chain(playerLoginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerPlayers() {
	h := &PlayersHandler{RosterService: r.RosterService}

	coachSecured := func(handler http.Handler) http.Handler {
		return httpx.Chain(handler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(jwtx.ScopeCoach),
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /v1/players", coachSecured(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("POST /v1/players", coachSecured(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("PATCH /v1/players/{id}", coachSecured(http.HandlerFunc(h.HandleUpdate)))
	r.Mux.Handle("DELETE /v1/players/{id}", coachSecured(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerInvites() {
	issueHandler := &InviteIssueHandler{InviteService: r.InviteService}
	validateHandler := &InviteValidateHandler{InviteService: r.InviteService}
	acceptHandler := &InviteAcceptHandler{
		InviteService: r.InviteService,
		AuthService:   r.AuthService,
	}

	// POST /players/{id}/invite - coach-only, moderate limit
	r.Mux.Handle("POST /v1/players/{id}/invite",
		httpx.Chain(http.HandlerFunc(issueHandler.HandleIssue),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(jwtx.ScopeCoach),
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		),
	)

	// GET /players/{id}/invites - coach-only invite history
	r.Mux.Handle("GET /v1/players/{id}/invites",
		httpx.Chain(http.HandlerFunc(issueHandler.HandleHistory),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(jwtx.ScopeCoach),
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		),
	)

	// GET /invites/{code} - public join-page lookup, moderate IP limit so
	// codes cannot be enumerated quickly
	r.Mux.Handle("GET /v1/invites/{code}",
		httpx.Chain(validateHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /invites/accept - public account creation, strict IP limit
	r.Mux.Handle("POST /v1/invites/accept",
		httpx.Chain(acceptHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerReports() {
	h := &ReportsHandler{ReportService: r.ReportService}

	coachSecured := func(handler http.Handler) http.Handler {
		return httpx.Chain(handler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(jwtx.ScopeCoach),
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /v1/reports", coachSecured(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("GET /v1/reports", coachSecured(http.HandlerFunc(h.HandleRecent)))
	r.Mux.Handle("GET /v1/players/{id}/reports", coachSecured(http.HandlerFunc(h.HandlePlayerReports)))
}

func (r *Router) registerMe() {
	h := &MeHandler{
		Store:         r.store,
		ReportService: r.ReportService,
	}

	// Either scope may read its own profile
	secured := func(handler http.Handler, scopes ...string) http.Handler {
		return httpx.Chain(handler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(scopes...),
			httpx.RateLimitBySubject(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /v1/me",
		secured(http.HandlerFunc(h.HandleProfile), jwtx.ScopeCoach, jwtx.ScopePlayer))
	r.Mux.Handle("GET /v1/me/reports",
		secured(http.HandlerFunc(h.HandleReports), jwtx.ScopePlayer))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.verifier),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
