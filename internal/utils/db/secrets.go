package db

import (
	"context"
	"encoding/json"

	"github.com/KromaEnergia/api-comissao/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/pkg/errors"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// secretGetter é o subconjunto do cliente do Secrets Manager que usamos.
type secretGetter interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

var newSecretsClient = func(ctx context.Context) (secretGetter, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "carregar configuração AWS")
	}
	return secretsmanager.NewFromConfig(awsCfg), nil
}

// retrieveCredentials usa DB_USERNAME/DB_PASSWORD quando definidos;
// caso contrário busca o segredo DB_SECRET_ID no Secrets Manager.
func retrieveCredentials(cfg config.DatabaseConfig) (string, string, error) {
	if cfg.User != "" && cfg.Password != "" {
		return cfg.User, cfg.Password, nil
	}
	if cfg.SecretID == "" {
		return "", "", errors.New("credenciais do banco ausentes: defina DB_USERNAME/DB_PASSWORD ou DB_SECRET_ID")
	}

	ctx := context.TODO()
	client, err := newSecretsClient(ctx)
	if err != nil {
		return "", "", err
	}
	return fetchCredentials(ctx, client, cfg.SecretID)
}

func fetchCredentials(ctx context.Context, client secretGetter, secretID string) (string, string, error) {
	result, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(secretID),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return "", "", errors.Wrapf(err, "buscar segredo %s", secretID)
	}
	if result.SecretString == nil {
		return "", "", errors.Errorf("segredo %s sem SecretString", secretID)
	}

	var secret Credentials
	if err := json.Unmarshal([]byte(*result.SecretString), &secret); err != nil {
		return "", "", errors.Wrap(err, "decodificar segredo do banco")
	}
	return secret.Username, secret.Password, nil
}
