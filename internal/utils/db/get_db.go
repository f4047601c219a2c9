package db

import (
	"github.com/KromaEnergia/api-comissao/internal/config"
	"github.com/KromaEnergia/api-comissao/internal/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func GetDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	database, err := ConnectDataBase(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("Banco conectado",
		zap.String("host", cfg.Host),
		zap.String("dbname", cfg.Name),
	)
	return database, nil
}
