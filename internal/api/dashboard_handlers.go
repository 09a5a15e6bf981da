package api

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal"
	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal/diagnosis"
	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal/intake"
	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal/view"
)

const defaultAvatarURL = "/assets/defaultpfp.svg"

type DashboardUser struct {
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// DashboardState is the main panel's view state: either the uploader or the
// rendered results, decided by the profile lookup.
type DashboardState struct {
	State   string            `json:"state"` // "uploader" or "results"
	User    DashboardUser     `json:"user"`
	Results *view.ResultsView `json:"results,omitempty"`
	Message string            `json:"message,omitempty"`
}

// GetDashboard fetches the user's profile and resolves the panel state. Any
// store error other than "no rows" has already been turned into a nil
// profile by the repository contract or is swallowed here: the dashboard
// fails open to the uploader rather than blocking the user.
func GetDashboard(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := c.MustGet("session").(*internal.Session)

		profile, err := app.ProfileRepo().GetProfile(c.Request.Context(), session.UserID)
		if err != nil {
			app.Logger().Errorf("error fetching user profile for %s: %v", session.UserID, err)
			profile = nil
		}

		slide := 0
		if raw := c.Query("slide"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				slide = n
			}
		}

		HandleSuccess(c, app.Logger(), buildDashboardState(session, profile, slide), nil)
	}
}

// PostDiagnose accepts one multipart upload, validates it, and runs the
// submission. Validation failures are inline and recoverable; the selected
// file is not retained across a failed submission, the user picks it again.
func PostDiagnose(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := c.MustGet("session").(*internal.Session)

		fileHeader, err := c.FormFile("file")
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "No file provided")
			return
		}

		candidate, err := intake.Accept(fileHeader.Filename, fileHeader.Size)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "File rejected")
			return
		}

		f, err := fileHeader.Open()
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to read upload")
			return
		}
		defer f.Close()

		profile, err := app.Diagnosis().Submit(c.Request.Context(), session, candidate, f)
		if err != nil {
			if errors.Is(err, diagnosis.ErrNotAuthenticated) {
				HandleError(c, app.Logger(), err, 401, "Authentication error")
				return
			}
			var apiErr *diagnosis.APIError
			if errors.As(err, &apiErr) {
				HandleError(c, app.Logger(), apiErr, 502, "Diagnosis failed")
				return
			}
			HandleError(c, app.Logger(), err, 502, "Diagnosis request failed")
			return
		}

		HandleSuccess(c, app.Logger(), buildDashboardState(session, profile, 0), map[string]any{
			"input_type": candidate.InputType,
		})
	}
}

// GetDiagnoseStatus reports the rotating status message while a submission
// for this user is in flight.
func GetDiagnoseStatus(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := c.MustGet("session").(*internal.Session)
		msg, inFlight := app.Diagnosis().Status().Get(session.UserID)
		HandleSuccess(c, app.Logger(), nil, map[string]any{
			"in_flight": inFlight,
			"message":   msg,
		})
	}
}

func buildDashboardState(session *internal.Session, profile *internal.HealthProfile, slide int) DashboardState {
	state := DashboardState{
		State: "uploader",
		User:  dashboardUser(session),
	}
	if profile == nil {
		return state
	}

	state.State = "results"
	if profile.LatestDiagnosticResponse == nil {
		state.Message = "No diagnostic response found in profile."
		return state
	}
	results := view.Build(profile.LatestDiagnosticResponse, slide)
	state.Results = &results
	return state
}

func dashboardUser(session *internal.Session) DashboardUser {
	avatar := session.AvatarURL
	if avatar == "" {
		avatar = defaultAvatarURL
	}
	return DashboardUser{Email: session.Email, AvatarURL: avatar}
}
