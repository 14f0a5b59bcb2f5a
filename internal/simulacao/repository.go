package simulacao

import (
	"github.com/GestaoMunicipal/api-folha/internal/folha"
	"gorm.io/gorm"
)

// Repository encapsula operações de banco para Simulacao
type Repository struct {
	DB *gorm.DB
}

// NewRepository cria um novo repositório
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Filtro restringe a listagem; campos vazios não filtram.
type Filtro struct {
	FuncionarioID *uint
	TipoContrato  folha.TipoContrato
}

func (r *Repository) Create(s *Simulacao) error {
	return r.DB.Create(s).Error
}

func (r *Repository) FindByID(id uint) (*Simulacao, error) {
	var s Simulacao
	if err := r.DB.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// List devolve as simulações mais recentes primeiro.
func (r *Repository) List(f Filtro) ([]Simulacao, error) {
	q := r.DB.Order("created_at DESC, id DESC")
	if f.FuncionarioID != nil {
		q = q.Where("funcionario_id = ?", *f.FuncionarioID)
	}
	if f.TipoContrato != "" {
		q = q.Where("tipo_contrato = ?", f.TipoContrato)
	}
	var list []Simulacao
	err := q.Find(&list).Error
	return list, err
}

// DeleteByID apaga a simulação; retorna gorm.ErrRecordNotFound se nada foi apagado.
func (r *Repository) DeleteByID(id uint) error {
	res := r.DB.Delete(&Simulacao{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
