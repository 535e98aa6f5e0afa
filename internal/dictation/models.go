package dictation

import "github.com/skoschel/fluesterpost/pkg/provider/llm"

// TranscriptionModel describes a curated speech-to-text model.
type TranscriptionModel struct {
	// ID is the provider-side model identifier.
	ID string

	// Name is the display name.
	Name string

	// PricePerHour is the provider's list price in USD per transcribed
	// audio hour.
	PricePerHour float64
}

// LLMModel describes a curated cleanup model with its token pricing.
type LLMModel struct {
	// ID is the provider-side model identifier.
	ID string

	// Name is the display name.
	Name string

	// InputPrice is USD per million prompt tokens.
	InputPrice float64

	// OutputPrice is USD per million completion tokens.
	OutputPrice float64
}

// Default model IDs used when the config does not pick one.
const (
	DefaultTranscriptionModel = "whisper-large-v3"
	DefaultLLMModel           = "llama-3.3-70b-versatile"
)

// TranscriptionModels returns the curated transcription model catalog.
func TranscriptionModels() []TranscriptionModel {
	return []TranscriptionModel{
		{ID: "whisper-large-v3", Name: "Whisper Large V3", PricePerHour: 0.11},
	}
}

// LLMModels returns the curated cleanup model catalog, best quality first.
func LLMModels() []LLMModel {
	return []LLMModel{
		{ID: "llama-3.3-70b-versatile", Name: "Llama 3.3 70B — Beste Qualität", InputPrice: 0.59, OutputPrice: 0.79},
		{ID: "llama-3.1-8b-instant", Name: "Llama 3.1 8B — Schnellste", InputPrice: 0.05, OutputPrice: 0.08},
	}
}

// EstimateLLMCost returns the USD cost of one cleanup request for the given
// model, based on the usage the provider reported. Unknown models cost 0.
func EstimateLLMCost(modelID string, usage llm.Usage) float64 {
	for _, m := range LLMModels() {
		if m.ID == modelID {
			const perMillion = 1_000_000
			return float64(usage.PromptTokens)/perMillion*m.InputPrice +
				float64(usage.CompletionTokens)/perMillion*m.OutputPrice
		}
	}
	return 0
}
