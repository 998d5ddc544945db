package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"30"`

	// Listing backend
	BackendBaseURL    string `envconfig:"BACKEND_BASE_URL"`
	BackendTimeoutSec uint   `envconfig:"BACKEND_TIMEOUT_SEC" default:"15"`

	// Photo staging
	PhotoBucket         string `envconfig:"PHOTO_BUCKET"`
	PhotoPreviewTTLSec  uint   `envconfig:"PHOTO_PREVIEW_TTL_SEC" default:"900"`
	PhotoSelectMaxBytes int64  `envconfig:"PHOTO_SELECT_MAX_BYTES" default:"10485760"` // 10 MB, checked when a file is attached
	PhotoSubmitMaxBytes int64  `envconfig:"PHOTO_SUBMIT_MAX_BYTES" default:"5242880"`  // 5 MB, checked when the listing is submitted
	MaxPhotos           int    `envconfig:"MAX_PHOTOS" default:"20"`

	// Drafts older than this are pruned together with their staged photos
	DraftTTLHours uint `envconfig:"DRAFT_TTL_HOURS" default:"24"`

	// Cognito Auth
	CognitoUserPoolID string `envconfig:"COGNITO_USER_POOL_ID"`
	CognitoClientID   string `envconfig:"COGNITO_CLIENT_ID"`
	CognitoIssuerURL  string `envconfig:"COGNITO_ISSUER_URL"`

	// Auth Configuration
	CookieName       string `envconfig:"SESSION_COOKIE_NAME" default:"ilanver_session"`
	SessionMaxAgeSec int    `envconfig:"SESSION_MAX_AGE_SEC" default:"604800"` // 7 days

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes
}
