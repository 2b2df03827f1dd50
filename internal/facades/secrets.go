package facades

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/sbilibin2017/qa-resolver/internal/logger"
)

// DSNProvider yields a PostgreSQL connection string. Implementations
// are queried on every invocation; nothing is cached here.
type DSNProvider interface {
	DSN(ctx context.Context) (string, error)
}

// SecretsAPI is the subset of the Secrets Manager client used here.
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManagerDSN fetches database credentials from AWS Secrets
// Manager and renders them as a connection string.
type SecretsManagerDSN struct {
	client     SecretsAPI
	secretName string
}

// NewSecretsManagerDSN builds a provider for the named secret in the
// given region.
func NewSecretsManagerDSN(ctx context.Context, secretName, region string) (*SecretsManagerDSN, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SecretsManagerDSN{
		client:     secretsmanager.NewFromConfig(cfg),
		secretName: secretName,
	}, nil
}

// NewSecretsManagerDSNWithClient builds a provider around an existing client.
func NewSecretsManagerDSNWithClient(client SecretsAPI, secretName string) *SecretsManagerDSN {
	return &SecretsManagerDSN{client: client, secretName: secretName}
}

// dbSecret is the credential payload stored in the secret.
type dbSecret struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	DBName   string `json:"dbname"`
}

// DSN fetches the secret and renders the connection string. The RDS
// endpoint uses a self-signed certificate, so verification is off.
func (p *SecretsManagerDSN) DSN(ctx context.Context) (string, error) {
	out, err := p.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(p.secretName),
	})
	if err != nil {
		logger.Log.Errorw("failed to fetch database secret", "secret", p.secretName, "error", err)
		return "", err
	}
	if out.SecretString == nil || *out.SecretString == "" {
		return "", errors.New("secret string is empty")
	}

	var s dbSecret
	if err := json.Unmarshal([]byte(*out.SecretString), &s); err != nil {
		return "", err
	}
	if s.Port == 0 {
		s.Port = 5432
	}

	logger.Log.Infow("database credentials fetched",
		"username", s.Username,
		"host", s.Host,
		"port", s.Port,
		"dbname", s.DBName,
	)

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=require",
		s.Username, url.QueryEscape(s.Password), s.Host, s.Port, s.DBName), nil
}

// StaticDSN renders a connection string from fixed parameters. Used for
// local development and tests, where no secrets service is available.
type StaticDSN struct {
	dsn string
}

// NewStaticDSN builds a static provider.
func NewStaticDSN(user, password, host string, port int, dbname string) *StaticDSN {
	return &StaticDSN{
		dsn: fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			user, url.QueryEscape(password), host, port, dbname),
	}
}

// DSN returns the fixed connection string.
func (p *StaticDSN) DSN(ctx context.Context) (string, error) {
	return p.dsn, nil
}
