package db

import (
	"context"
	"fmt"

	"github.com/GestaoMunicipal/api-folha/internal/auth"
	"github.com/GestaoMunicipal/api-folha/internal/config"
	"github.com/GestaoMunicipal/api-folha/internal/funcionario"
	"github.com/GestaoMunicipal/api-folha/internal/simulacao"
	"github.com/GestaoMunicipal/api-folha/internal/usuario"
	"gorm.io/gorm"
)

// GetDB conecta e aplica o AutoMigrate de todos os modelos da API.
func GetDB(ctx context.Context, cfg config.DBConfig) (*gorm.DB, error) {
	database, err := ConnectDataBase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(database); err != nil {
		return nil, err
	}
	return database, nil
}

func Migrate(database *gorm.DB) error {
	if err := database.AutoMigrate(
		&usuario.Usuario{},
		&auth.RefreshToken{},
		&funcionario.Funcionario{},
		&simulacao.Simulacao{},
	); err != nil {
		return fmt.Errorf("erro no AutoMigrate: %w", err)
	}
	return nil
}
