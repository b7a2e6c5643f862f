package catalog

// fallbackModels is the curated catalog used when the remote API is
// unreachable. Keep ids aligned with the public GitHub Models listing.
var fallbackModels = map[string]string{
	"gpt-4":                        "GPT-4",
	"gpt-4-turbo":                  "GPT-4 Turbo",
	"gpt-4.1":                      "GPT-4.1",
	"gpt-4o":                       "GPT-4o",
	"gpt-4o-mini":                  "GPT-4o Mini",
	"gpt-5-mini":                   "GPT-5 Mini",
	"gpt-5":                        "GPT-5",
	"gpt-5-codex":                  "GPT-5 Codex",
	"grok-code-fast-1":             "Grok Code Fast 1",
	"claude-3-5-sonnet":            "Claude Sonnet 3.5",
	"claude-3-7-sonnet":            "Claude Sonnet 3.7",
	"claude-4-sonnet":              "Claude Sonnet 4",
	"gemini-2.5-pro":               "Gemini 2.5 Pro",
	"o3-mini":                      "o3-mini",
	"o4-mini":                      "o4-mini",
	"meta-llama-3-70b-instruct":    "Meta Llama 3 70B Instruct",
	"meta-llama-3-8b-instruct":     "Meta Llama 3 8B Instruct",
	"meta-llama-3.1-405b-instruct": "Meta Llama 3.1 405B Instruct",
	"meta-llama-3.1-70b-instruct":  "Meta Llama 3.1 70B Instruct",
	"meta-llama-3.1-8b-instruct":   "Meta Llama 3.1 8B Instruct",
	"mistral-nemo":                 "Mistral Nemo",
	"mistral-large-2407":           "Mistral Large 2407",
	"mistral-small":                "Mistral Small",
	"ai21-jamba-instruct":          "AI21 Jamba Instruct",
	"cohere-embed-v3-english":      "Cohere Embed v3 English",
	"cohere-embed-v3-multilingual": "Cohere Embed v3 Multilingual",
}

// Fallback returns a copy of the curated fallback catalog.
func Fallback() map[string]string {
	models := make(map[string]string, len(fallbackModels))
	for id, name := range fallbackModels {
		models[id] = name
	}
	return models
}
