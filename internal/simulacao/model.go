package simulacao

import (
	"time"

	"github.com/GestaoMunicipal/api-folha/internal/folha"
	"github.com/shopspring/decimal"
)

// Simulacao é o registro histórico de uma simulação de salário.
type Simulacao struct {
	ID            uint               `gorm:"primaryKey"`
	FuncionarioID *uint              `gorm:"index"`
	TipoContrato  folha.TipoContrato `gorm:"size:20;not null;index"`
	SalarioBruto  decimal.Decimal    `gorm:"type:numeric(12,2);not null;default:0"`
	Beneficios    decimal.Decimal    `gorm:"type:numeric(12,2);not null;default:0"`
	INSS          decimal.Decimal    `gorm:"column:inss;type:numeric(12,2);not null;default:0"`
	IRRF          decimal.Decimal    `gorm:"column:irrf;type:numeric(12,2);not null;default:0"`
	FGTS          decimal.Decimal    `gorm:"column:fgts;type:numeric(12,2);not null;default:0"`
	Descontos     decimal.Decimal    `gorm:"type:numeric(12,2);not null;default:0"`
	Liquido       decimal.Decimal    `gorm:"type:numeric(12,2);not null;default:0"`
	CriadoPor     uint               `gorm:"index"`
	CreatedAt     time.Time
}

// NovaSimulacao copia o resultado do cálculo para o modelo persistido.
func NovaSimulacao(tipo folha.TipoContrato, r folha.ResultadoSimulacao) Simulacao {
	return Simulacao{
		TipoContrato: tipo,
		SalarioBruto: r.SalarioBruto,
		Beneficios:   r.Beneficios,
		INSS:         r.Detalhes.INSS,
		IRRF:         r.Detalhes.IRRF,
		FGTS:         r.Detalhes.FGTS,
		Descontos:    r.Descontos,
		Liquido:      r.SalarioLiquido,
	}
}

// Resultado reconstrói o retorno do cálculo a partir do registro.
func (s Simulacao) Resultado() folha.ResultadoSimulacao {
	return folha.ResultadoSimulacao{
		SalarioBruto:   s.SalarioBruto,
		Descontos:      s.Descontos,
		Beneficios:     s.Beneficios,
		SalarioLiquido: s.Liquido,
		Detalhes: folha.DetalheDescontos{
			INSS:             s.INSS,
			IRRF:             s.IRRF,
			FGTS:             s.FGTS,
			OutrosBeneficios: s.Beneficios,
		},
	}
}
