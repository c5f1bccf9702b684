package config

const (
	// DefaultPath is where the video generator keeps its settings,
	// relative to the repository root
	DefaultPath = "DailyStoryVideoGenerator/appsettings.json"

	// template defaults shipped with appsettings.json
	OpenAIKeyPlaceholder = "your-openai-api-key-here"
	AzureKeyPlaceholder  = "your-azure-speech-key-here"
)

// Settings represents the abstraction of the parsed
// appsettings.json document
type Settings struct {
	AppConfig AppConfig
}

type AppConfig struct {
	OpenAIApiKey      string
	OpenAIEndpoint    string
	AzureSpeechKey    string
	AzureSpeechRegion string
	UploadConfig      UploadConfig
}

type UploadConfig struct {
	BilibiliCookie string
}

// OpenAIConfigured returns true if the key has been
// changed from both empty and template value
func (cfg *AppConfig) OpenAIConfigured() bool {
	return configured(cfg.OpenAIApiKey, OpenAIKeyPlaceholder)
}

func (cfg *AppConfig) AzureConfigured() bool {
	return configured(cfg.AzureSpeechKey, AzureKeyPlaceholder)
}

func configured(value, placeholder string) bool {
	return value != "" && value != placeholder
}
