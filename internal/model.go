package internal

import "time"

// Session mirrors the record issued by the identity provider. The portal
// never constructs one itself; it is resolved per request and treated as
// read-only.
type Session struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Email       string `json:"email,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	ExpiresAt   int64  `json:"expires_at,omitempty"`
}

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// InputType classifies an upload by extension. Unrecognized extensions map
// to InputTypeUnknown and are still forwarded; the diagnosis service is the
// one that rejects them.
type InputType string

const (
	InputTypePDF     InputType = "pdf"
	InputTypeImage   InputType = "image"
	InputTypeDICOM   InputType = "dicom"
	InputTypeUnknown InputType = ""
)

// UploadCandidate is a single accepted file. At most one of a candidate or
// a validation error exists per submission cycle.
type UploadCandidate struct {
	Filename  string    `json:"filename"`
	Size      int64     `json:"size"`
	InputType InputType `json:"input_type"`
}

type AlertColor string

const (
	AlertRed    AlertColor = "red"
	AlertYellow AlertColor = "yellow"
	AlertGreen  AlertColor = "green"
)

type ConfidenceScore struct {
	Score         int    `json:"score"`
	Justification string `json:"justification"`
}

type ParameterAnalysis struct {
	ParameterName string `json:"parameter_name"`
	AnalysisText  string `json:"analysis_text"`
}

type Citation struct {
	ID        int    `json:"id"`
	Reference string `json:"reference"`
	URL       string `json:"url"` // key into the bibliography URL table, not a full URL
}

type DiagnosticResponse struct {
	Summary         string              `json:"summary"`
	Analysis        []ParameterAnalysis `json:"analysis"`
	Citations       []Citation          `json:"citations"`
	FinalDiagnosis  string              `json:"final_diagnosis"`
	ConfidenceScore ConfidenceScore     `json:"confidence_score"`
	AlertColor      AlertColor          `json:"alert_color"`
}

// HealthProfile is the per-user record in user_health_profiles. It is
// created server-side by the diagnosis service after the first successful
// run; this portal only reads it.
type HealthProfile struct {
	ID                       string              `json:"id"`
	LatestDiagnosticResponse *DiagnosticResponse `json:"latest_diagnostic_response"`
	UpdatedAt                time.Time           `json:"updated_at"`
}
