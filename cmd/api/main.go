package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mystery-message/internal/application/notify"
	"github.com/mystery-message/internal/config"
	"github.com/mystery-message/internal/infrastructure/awscfg"
	"github.com/mystery-message/internal/infrastructure/dynamo"
	jwtinfra "github.com/mystery-message/internal/infrastructure/jwt"
	"github.com/mystery-message/internal/infrastructure/llm"
	resendinfra "github.com/mystery-message/internal/infrastructure/resend"
	s3infra "github.com/mystery-message/internal/infrastructure/s3"
	"github.com/mystery-message/internal/infrastructure/smtp"
	snsinfra "github.com/mystery-message/internal/infrastructure/sns"
	transporthttp "github.com/mystery-message/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()
	ctx := context.Background()

	awsCfg, err := awscfg.Load(ctx, cfg)
	if err != nil {
		log.Fatalf("aws config: %v", err)
	}

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(awsCfg, cfg.AWSEndpointURL)
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables)

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("jwt provider: %v", err)
	}

	sender, err := newCodeSender(cfg)
	if err != nil {
		log.Fatalf("mail sender: %v", err)
	}

	deps := &transporthttp.Deps{
		UserRepo:    dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		Sender:      sender,
		JWTProvider: jwtProvider,
		Exports:     s3infra.NewStore(s3infra.NewClient(awsCfg, cfg.AWSEndpointURL), cfg.S3BucketName),
	}

	// Event publishing and AI suggestions are optional.
	if cfg.SNSTopicARN != "" {
		deps.Events = snsinfra.NewPublisher(snsinfra.NewClient(awsCfg, cfg.AWSEndpointURL), cfg.SNSTopicARN)
	} else {
		log.Println("WARN: SNS_TOPIC_ARN not set, message events disabled")
	}
	if cfg.LLMBaseURL != "" {
		deps.LLM = llm.NewClient(cfg.LLMBaseURL, cfg.LLMToken, cfg.LLMModel)
	} else {
		log.Println("WARN: LLM_BASE_URL not set, serving static suggestions")
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}

// newCodeSender picks the mail transport named by MAIL_PROVIDER.
func newCodeSender(cfg *config.Config) (*notify.Sender, error) {
	switch cfg.MailProvider {
	case "resend":
		m, err := resendinfra.NewMailer(cfg.ResendAPIKey, cfg.MailFrom)
		if err != nil {
			return nil, err
		}
		return notify.NewSender(m, cfg.CodeTTL), nil
	case "smtp":
		return notify.NewSender(smtp.NewMailer(cfg), cfg.CodeTTL), nil
	default:
		return nil, fmt.Errorf("unknown MAIL_PROVIDER %q", cfg.MailProvider)
	}
}
