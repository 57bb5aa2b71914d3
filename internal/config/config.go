package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	S3BucketName string
	ExportURLTTL time.Duration
	SNSTopicARN  string // optional; events are not published when empty

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration

	MailProvider string // "resend" | "smtp"
	MailFrom     string
	ResendAPIKey string
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string

	LLMBaseURL string
	LLMToken   string
	LLMModel   string

	CodeTTL      time.Duration
	Verification VerificationPolicy

	AllowedOrigins []string // CORS allowed origins
	// TrustProxy derives the client address from forwarding headers; only
	// enable it behind a proxy that overwrites them.
	TrustProxy bool
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users string
}

// VerificationPolicy toggles the optional hardening of the one-time code
// lifecycle. The zero value keeps codes alive until their natural expiry.
type VerificationPolicy struct {
	ClearCodeOnVerify     bool
	EnforceExpiryOnVerify bool
	InvalidateCodeOnReset bool
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:        getEnv("APP_PORT", "3000"),
		AppEnv:         getEnv("APP_ENV", "development"),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users: getEnv("DYNAMO_TABLE_USERS", "users"),
		},
		S3BucketName:      getEnv("S3_BUCKET_NAME", "mystery-message-exports"),
		ExportURLTTL:      time.Duration(getEnvInt("EXPORT_URL_TTL_MINUTES", 15)) * time.Minute,
		SNSTopicARN:       getEnv("SNS_TOPIC_ARN", ""),
		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24*7)) * time.Hour,
		MailProvider:      getEnv("MAIL_PROVIDER", "resend"),
		MailFrom:          getEnv("MAIL_FROM", "noreply@example.com"),
		ResendAPIKey:      getEnv("RESEND_API_KEY", ""),
		SMTPHost:          getEnv("SMTP_HOST", "localhost"),
		SMTPPort:          getEnv("SMTP_PORT", "1025"),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		LLMBaseURL:        getEnv("LLM_BASE_URL", ""),
		LLMToken:          getEnv("LLM_TOKEN", ""),
		LLMModel:          getEnv("LLM_MODEL", "gpt-4o-mini"),
		CodeTTL:           time.Duration(getEnvInt("CODE_TTL_MINUTES", 60)) * time.Minute,
		Verification: VerificationPolicy{
			ClearCodeOnVerify:     getEnvBool("VERIFY_CLEAR_CODE", false),
			EnforceExpiryOnVerify: getEnvBool("VERIFY_ENFORCE_EXPIRY", false),
			InvalidateCodeOnReset: getEnvBool("RESET_INVALIDATE_CODE", false),
		},
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		TrustProxy:     getEnvBool("TRUST_PROXY", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
