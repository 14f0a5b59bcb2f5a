package funcionario

import (
	"time"

	"github.com/GestaoMunicipal/api-folha/internal/folha"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Funcionario struct {
	gorm.Model
	Nome         string             `gorm:"not null"`
	CPF          string             `gorm:"size:11;uniqueIndex;not null"`
	Email        string             `gorm:"size:120"`
	Cargo        string             `gorm:"size:80"`
	Secretaria   string             `gorm:"size:80;index"`
	Salario      decimal.Decimal    `gorm:"type:numeric(12,2);not null;default:0"`
	TipoContrato folha.TipoContrato `gorm:"size:20;not null"`
	Beneficios   decimal.Decimal    `gorm:"type:numeric(12,2);not null;default:0"`
	DataAdmissao *time.Time
	Ativo        bool `gorm:"not null"`
}

// Entrada monta a entrada do simulador com os dados cadastrados.
func (f Funcionario) Entrada() folha.EntradaSalario {
	return folha.EntradaSalario{
		SalarioBruto: f.Salario,
		TipoContrato: f.TipoContrato,
		Beneficios:   f.Beneficios,
	}
}
