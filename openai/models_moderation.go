package openai

// ModelOmniModerationLatest is the default moderation model.
const ModelOmniModerationLatest = "omni-moderation-latest"

/*
	MODERATIONS API - INPUT
*/

// ModerationRequest is the request payload for the moderations endpoint.
// Each input string produces one result in the response. Model is optional;
// the service picks its default when empty.
type ModerationRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model,omitempty"`
}

/*
	MODERATIONS API - OUTPUT
*/

// ModerationResponse is the response payload for the moderations endpoint.
type ModerationResponse struct {
	ID      string             `json:"id,omitempty"`
	Model   string             `json:"model,omitempty"`
	Results []ModerationResult `json:"results,omitempty"`
}

// ModerationResult is the classification of one input string.
type ModerationResult struct {
	Flagged        bool                     `json:"flagged"`
	Categories     ModerationCategories     `json:"categories"`
	CategoryScores ModerationCategoryScores `json:"category_scores"`
}

// ModerationCategories holds the per-category violation flags.
type ModerationCategories struct {
	Hate                  bool `json:"hate"`
	HateThreatening       bool `json:"hate/threatening"`
	Harassment            bool `json:"harassment"`
	HarassmentThreatening bool `json:"harassment/threatening"`
	Illicit               bool `json:"illicit"`
	IllicitViolent        bool `json:"illicit/violent"`
	SelfHarm              bool `json:"self-harm"`
	SelfHarmIntent        bool `json:"self-harm/intent"`
	SelfHarmInstructions  bool `json:"self-harm/instructions"`
	Sexual                bool `json:"sexual"`
	SexualMinors          bool `json:"sexual/minors"`
	Violence              bool `json:"violence"`
	ViolenceGraphic       bool `json:"violence/graphic"`
}

// ModerationCategoryScores holds the per-category confidence scores
// between 0 and 1.
type ModerationCategoryScores struct {
	Hate                  float64 `json:"hate"`
	HateThreatening       float64 `json:"hate/threatening"`
	Harassment            float64 `json:"harassment"`
	HarassmentThreatening float64 `json:"harassment/threatening"`
	Illicit               float64 `json:"illicit"`
	IllicitViolent        float64 `json:"illicit/violent"`
	SelfHarm              float64 `json:"self-harm"`
	SelfHarmIntent        float64 `json:"self-harm/intent"`
	SelfHarmInstructions  float64 `json:"self-harm/instructions"`
	Sexual                float64 `json:"sexual"`
	SexualMinors          float64 `json:"sexual/minors"`
	Violence              float64 `json:"violence"`
	ViolenceGraphic       float64 `json:"violence/graphic"`
}

// FirstResult returns the first moderation result, or the zero value when
// the response has no results.
func (r ModerationResponse) FirstResult() ModerationResult {
	if len(r.Results) == 0 {
		return ModerationResult{}
	}
	return r.Results[0]
}
