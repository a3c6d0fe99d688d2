package cfg

type Cfg struct {
	// Storage configuration
	DBPath      string
	UploadsDir  string
	ProductFile string

	// Application configuration
	Port     string
	BaseUrl  string
	AuthMode string

	// AI provider configuration
	OpenAIAPIKey  string
	OpenAIBaseUrl string

	// Security
	JWTSecret string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
