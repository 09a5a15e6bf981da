package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal"
	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal/auth"
)

var validate = validator.New()

type SignUpRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func SignUp(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body SignUpRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := validate.Struct(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}
		if body.Password != body.ConfirmPassword {
			HandleError(c, app.Logger(), errors.New("passwords do not match"), 400, "Validation failed")
			return
		}

		session, err := app.Auth().SignUp(c.Request.Context(), body.Email, body.Password)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Sign up failed")
			return
		}

		setSessionCookie(c, session)
		HandleSuccess(c, app.Logger(), session, map[string]any{
			"message": "Sign up successful! Please check your email to verify your account.",
		})
	}
}

func SignIn(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body SignInRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := validate.Struct(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		session, err := app.Auth().SignIn(c.Request.Context(), body.Email, body.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				HandleError(c, app.Logger(), err, 401, "Sign in failed")
				return
			}
			HandleError(c, app.Logger(), err, 400, "Sign in failed")
			return
		}

		setSessionCookie(c, session)
		HandleSuccess(c, app.Logger(), session, nil)
	}
}

// OAuthSignIn hands the browser off to the provider's authorize URL; the
// provider redirects back with a session token.
func OAuthSignIn(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider := c.Param("provider")
		redirectTo := c.Query("redirect_to")
		url, err := app.Auth().OAuthURL(provider, redirectTo)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "OAuth sign in failed")
			return
		}
		c.Redirect(http.StatusFound, url)
	}
}

func SignOut(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := c.MustGet("session").(*internal.Session)
		if err := app.Auth().SignOut(c.Request.Context(), session.AccessToken); err != nil {
			app.Logger().Warnf("sign out failed for %s: %v", session.UserID, err)
		}
		clearSessionCookie(c)
		HandleSuccess(c, app.Logger(), nil, map[string]any{"message": "Signed out"})
	}
}

// GetSession reports session presence for the gate's loading state.
func GetSession(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := auth.SessionFrom(c)
		if !ok {
			HandleSuccess(c, app.Logger(), nil, map[string]any{"authenticated": false})
			return
		}
		HandleSuccess(c, app.Logger(), session, map[string]any{"authenticated": true})
	}
}

func setSessionCookie(c *gin.Context, session *internal.Session) {
	c.SetCookie(auth.SessionCookie, session.AccessToken, 3600, "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
}
