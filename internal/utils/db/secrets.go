package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/GestaoMunicipal/api-folha/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// secretGetter é o pedaço do cliente do Secrets Manager que usamos.
type secretGetter interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

var newSecretsClient = func(ctx context.Context) (secretGetter, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return secretsmanager.NewFromConfig(cfg), nil
}

func retrieveCredentials(ctx context.Context, cfg config.DBConfig) (string, string, error) {
	if cfg.Usuario != "" && cfg.Senha != "" {
		return cfg.Usuario, cfg.Senha, nil
	}
	if cfg.SecretID == "" {
		return "", "", errors.New("credenciais do banco ausentes")
	}

	client, err := newSecretsClient(ctx)
	if err != nil {
		return "", "", fmt.Errorf("configurando AWS: %w", err)
	}
	return credentialsFromSecret(ctx, client, cfg.SecretID)
}

func credentialsFromSecret(ctx context.Context, client secretGetter, secretID string) (string, string, error) {
	result, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(secretID),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return "", "", fmt.Errorf("lendo segredo %s: %w", secretID, err)
	}
	if result.SecretString == nil {
		return "", "", fmt.Errorf("segredo %s sem SecretString", secretID)
	}

	var secret Credentials
	if err := json.Unmarshal([]byte(*result.SecretString), &secret); err != nil {
		return "", "", fmt.Errorf("segredo %s mal formado: %w", secretID, err)
	}
	return secret.Username, secret.Password, nil
}
