package dto

// GenerateRequest carries both generation modes. Refine mode is selected
// when ExistingRules and RefinementPrompt are both present; otherwise one of
// GithubURL or ManualStack is required. Cross-field validation happens in
// the handler because gin bindings cannot express either-or groups.
type GenerateRequest struct {
	GithubURL        string `json:"githubUrl"`
	ManualStack      string `json:"manualStack"`
	ExistingRules    string `json:"existingRules"`
	RefinementPrompt string `json:"refinementPrompt"`
}
