package concepts

// Request and response models for the text-generation API.
type GenerateTextRequest struct {
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens"`
}

type GenerateTextResponse struct {
	Text string `json:"text"`
}
