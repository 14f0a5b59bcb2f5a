package funcionario

import (
	"errors"

	"github.com/GestaoMunicipal/api-folha/internal/folha"
	"gorm.io/gorm"
)

// ErrCPFDuplicado indica que já existe funcionário (ativo ou desligado) com o CPF.
var ErrCPFDuplicado = errors.New("CPF já cadastrado")

// Filtro de listagem; campos vazios não filtram.
type Filtro struct {
	Secretaria   string
	TipoContrato folha.TipoContrato
	Ativo        *bool
}

type Repository interface {
	ListarTodos(db *gorm.DB, f Filtro) ([]Funcionario, error)
	BuscarPorID(db *gorm.DB, id uint) (*Funcionario, error)
	BuscarPorCPF(db *gorm.DB, cpf string) (*Funcionario, error)
	Salvar(db *gorm.DB, f *Funcionario) error
	Atualizar(db *gorm.DB, id uint, novosDados *Funcionario) (*Funcionario, error)
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB, f Filtro) ([]Funcionario, error) {
	q := db.Order("nome")
	if f.Secretaria != "" {
		q = q.Where("secretaria = ?", f.Secretaria)
	}
	if f.TipoContrato != "" {
		q = q.Where("tipo_contrato = ?", f.TipoContrato)
	}
	if f.Ativo != nil {
		q = q.Where("ativo = ?", *f.Ativo)
	}
	var funcionarios []Funcionario
	err := q.Find(&funcionarios).Error
	return funcionarios, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Funcionario, error) {
	var f Funcionario
	if err := db.First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// BuscarPorCPF inclui registros apagados, já que o índice único também os cobre.
func (r *repositoryImpl) BuscarPorCPF(db *gorm.DB, cpf string) (*Funcionario, error) {
	var f Funcionario
	if err := db.Unscoped().Where("cpf = ?", cpf).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// Salvar cria ou regrava o funcionário. Na criação recusa CPF repetido.
func (r *repositoryImpl) Salvar(db *gorm.DB, f *Funcionario) error {
	if f.ID == 0 {
		if _, err := r.BuscarPorCPF(db, f.CPF); err == nil {
			return ErrCPFDuplicado
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	return db.Save(f).Error
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, id uint, novosDados *Funcionario) (*Funcionario, error) {
	var existente Funcionario
	if err := db.First(&existente, id).Error; err != nil {
		return nil, err
	}

	if novosDados.CPF != existente.CPF {
		outro, err := r.BuscarPorCPF(db, novosDados.CPF)
		if err == nil && outro.ID != existente.ID {
			return nil, ErrCPFDuplicado
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	existente.Nome = novosDados.Nome
	existente.CPF = novosDados.CPF
	existente.Email = novosDados.Email
	existente.Cargo = novosDados.Cargo
	existente.Secretaria = novosDados.Secretaria
	existente.Salario = novosDados.Salario
	existente.TipoContrato = novosDados.TipoContrato
	existente.Beneficios = novosDados.Beneficios
	existente.DataAdmissao = novosDados.DataAdmissao
	existente.Ativo = novosDados.Ativo

	if err := db.Save(&existente).Error; err != nil {
		return nil, err
	}
	return &existente, nil
}

// Deletar faz soft delete; retorna gorm.ErrRecordNotFound se o ID não existe.
func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	res := db.Delete(&Funcionario{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
