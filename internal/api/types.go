package api

// PromptResponse is the JSON body of a successful GET /api/initial-prompt.
type PromptResponse struct {
	Prompt string `json:"prompt"`
}

// ExamplesResponse is the JSON body of GET /api/examples.
type ExamplesResponse struct {
	Examples []string `json:"examples"`
}

// ErrorResponse documents the error envelope written by writeError.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
