package dto

type RewriteRequest struct {
	UserPrompt      string `json:"userPrompt" validate:"required"`
	Mode            string `json:"mode" validate:"required"`
	EnableWebAccess bool   `json:"enableWebAccess"`
}

type RewriteResponse struct {
	RewrittenPrompt     string   `json:"rewrittenPrompt"`
	Mode                string   `json:"mode"`
	ModeName            string   `json:"modeName"`
	IsContentGeneration bool     `json:"isContentGeneration"`
	WebAccessUsed       bool     `json:"webAccessUsed"`
	WebSources          []string `json:"webSources"`
}

type SelfImproveRequest struct {
	CurrentOutput string `json:"currentOutput" validate:"required"`
	Mode          string `json:"mode" validate:"required"`
}

type SelfImproveResponse struct {
	ImprovedOutput string `json:"improvedOutput"`
	Mode           string `json:"mode"`
	ModeName       string `json:"modeName"`
}

type ModeInfo struct {
	Key                 string `json:"key"`
	Name                string `json:"name"`
	IsContentGeneration bool   `json:"isContentGeneration"`
}
