package db

import (
	"context"
	"fmt"

	"github.com/GestaoMunicipal/api-folha/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDataBase abre a conexão com o Postgres usando as credenciais do
// ambiente ou, na falta delas, do Secrets Manager.
func ConnectDataBase(ctx context.Context, cfg config.DBConfig) (*gorm.DB, error) {
	username, password, err := retrieveCredentials(ctx, cfg)
	if err != nil {
		return nil, err
	}
	database, err := gorm.Open(postgres.Open(DSN(cfg, username, password)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("conectando ao banco: %w", err)
	}
	return database, nil
}

// DSN monta a string de conexão do driver postgres.
func DSN(cfg config.DBConfig, username, password string) string {
	var sslMode string
	if cfg.SSLDisable {
		sslMode = " sslmode=disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s",
		cfg.Host, username, password, cfg.Nome, cfg.Porta, sslMode)
}
