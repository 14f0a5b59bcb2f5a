package usuario

import (
	"errors"
	"fmt"

	"github.com/GestaoMunicipal/api-folha/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrSenhaAdminAusente indica ADMIN_EMAIL sem ADMIN_SENHA com a tabela de usuários vazia.
var ErrSenhaAdminAusente = errors.New("ADMIN_SENHA é obrigatória para criar o administrador inicial")

// GarantirAdmin cria o primeiro administrador quando a tabela está vazia.
func GarantirAdmin(db *gorm.DB, log *zap.Logger, email, senha string) error {
	if email == "" {
		return nil
	}
	repo := NewRepository()
	n, err := repo.Count(db)
	if err != nil {
		return fmt.Errorf("contando usuários: %w", err)
	}
	if n > 0 {
		return nil
	}

	if senha == "" {
		return ErrSenhaAdminAusente
	}
	hash, err := utils.HashSenha(senha)
	if err != nil {
		return err
	}
	u := Usuario{Nome: "Administrador", Email: email, Senha: hash, IsAdmin: true}
	if err := repo.Save(db, &u); err != nil {
		return fmt.Errorf("criando administrador: %w", err)
	}
	log.Info("administrador inicial criado", zap.String("email", u.Email))
	return nil
}
