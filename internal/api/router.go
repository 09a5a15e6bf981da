package api

import (
	"github.com/gin-gonic/gin"

	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal"
	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal/auth"
	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal/diagnosis"
	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal/storage"
)

type app struct {
	logger    internal.Logger
	provider  auth.Provider
	profiles  storage.ProfileRepository
	diagnosis *diagnosis.Service
}

func NewApp(logger internal.Logger, provider auth.Provider, profiles storage.ProfileRepository, svc *diagnosis.Service) App {
	return &app{logger: logger, provider: provider, profiles: profiles, diagnosis: svc}
}

func (a *app) Logger() internal.Logger                { return a.logger }
func (a *app) Auth() auth.Provider                    { return a.provider }
func (a *app) ProfileRepo() storage.ProfileRepository { return a.profiles }
func (a *app) Diagnosis() *diagnosis.Service          { return a.diagnosis }

// NewRouter wires the session gate and all routes. The session is resolved
// once per request; the gate middlewares only look at its presence.
func NewRouter(a App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(auth.SessionMiddleware(a.Auth()))

	r.GET("/healthz", Healthz)

	// Public views: signed-in users are sent to the dashboard.
	r.GET("/", auth.RedirectIfAuthed(), GetOnboarding(a))
	r.GET("/auth", auth.RedirectIfAuthed(), GetAuthView(a))

	r.POST("/auth/signup", SignUp(a))
	r.POST("/auth/login", SignIn(a))
	r.GET("/auth/oauth/:provider", OAuthSignIn(a))
	r.GET("/auth/session", GetSession(a))
	r.POST("/auth/logout", auth.RequireSession(), SignOut(a))

	dashboard := r.Group("/dashboard", auth.RequireSession())
	dashboard.GET("", GetDashboard(a))
	dashboard.POST("/diagnose", PostDiagnose(a))
	dashboard.GET("/diagnose/status", GetDiagnoseStatus(a))

	return r
}
