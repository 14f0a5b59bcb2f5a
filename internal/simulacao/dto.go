package simulacao

import (
	"time"

	"github.com/GestaoMunicipal/api-folha/internal/folha"
	"github.com/shopspring/decimal"
)

// SimulacaoRequest é o corpo de POST /simulacoes. Valores aceitam número ou texto.
type SimulacaoRequest struct {
	GrossSalary  decimal.Decimal `json:"grossSalary"`
	ContractType string          `json:"contractType"`
	Benefits     decimal.Decimal `json:"benefits"`
}

// DescontosRequest é o corpo de POST /folha/descontos.
type DescontosRequest struct {
	Salary decimal.Decimal `json:"salary"`
}

type DetalhesDTO struct {
	INSS          float64 `json:"inss"`
	IRRF          float64 `json:"irrf"`
	FGTS          float64 `json:"fgts"`
	OtherBenefits float64 `json:"otherBenefits"`
}

// ResultadoDTO é o formato de saída do simulador (valores com 2 casas).
type ResultadoDTO struct {
	GrossSalary float64     `json:"grossSalary"`
	Deductions  float64     `json:"deductions"`
	Benefits    float64     `json:"benefits"`
	NetSalary   float64     `json:"netSalary"`
	Details     DetalhesDTO `json:"details"`
}

type DescontosDTO struct {
	INSS      float64 `json:"inss"`
	IRRF      float64 `json:"irrf"`
	NetSalary float64 `json:"netSalary"`
}

type SimulacaoDTO struct {
	ID            uint      `json:"id"`
	FuncionarioID *uint     `json:"funcionarioId,omitempty"`
	ContractType  string    `json:"contractType"`
	CriadoPor     uint      `json:"criadoPor"`
	CreatedAt     time.Time `json:"createdAt"`
	ResultadoDTO
}

func num(d decimal.Decimal) float64 { return d.InexactFloat64() }

func ToResultadoDTO(r folha.ResultadoSimulacao) ResultadoDTO {
	return ResultadoDTO{
		GrossSalary: num(r.SalarioBruto),
		Deductions:  num(r.Descontos),
		Benefits:    num(r.Beneficios),
		NetSalary:   num(r.SalarioLiquido),
		Details: DetalhesDTO{
			INSS:          num(r.Detalhes.INSS),
			IRRF:          num(r.Detalhes.IRRF),
			FGTS:          num(r.Detalhes.FGTS),
			OtherBenefits: num(r.Detalhes.OutrosBeneficios),
		},
	}
}

func ToDescontosDTO(d folha.Descontos) DescontosDTO {
	return DescontosDTO{INSS: num(d.INSS), IRRF: num(d.IRRF), NetSalary: num(d.SalarioLiquido)}
}

func ToDTO(s Simulacao) SimulacaoDTO {
	return SimulacaoDTO{
		ID:            s.ID,
		FuncionarioID: s.FuncionarioID,
		ContractType:  s.TipoContrato.String(),
		CriadoPor:     s.CriadoPor,
		CreatedAt:     s.CreatedAt,
		ResultadoDTO:  ToResultadoDTO(s.Resultado()),
	}
}

func toDTOs(list []Simulacao) []SimulacaoDTO {
	out := make([]SimulacaoDTO, 0, len(list))
	for _, s := range list {
		out = append(out, ToDTO(s))
	}
	return out
}
