package db

import (
	"fmt"

	"github.com/KromaEnergia/api-comissao/internal/config"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DSN monta a string de conexão do Postgres com as credenciais já resolvidas.
func DSN(cfg config.DatabaseConfig, username, password string) string {
	var sslMode string
	if cfg.SSLDisable {
		sslMode = " sslmode=disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s",
		cfg.Host, username, password, cfg.Name, cfg.Port, sslMode)
}

func ConnectDataBase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	username, password, err := retrieveCredentials(cfg)
	if err != nil {
		return nil, err
	}

	database, err := gorm.Open(postgres.Open(DSN(cfg, username, password)), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Error),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "abrir conexão com o banco")
	}

	return database, nil
}
