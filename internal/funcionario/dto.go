package funcionario

import (
	"fmt"
	"strings"
	"time"

	"github.com/GestaoMunicipal/api-folha/internal/folha"
	"github.com/GestaoMunicipal/api-folha/internal/utils"
	"github.com/shopspring/decimal"
)

// FuncionarioRequest é o corpo de POST e PUT /funcionarios. Valores aceitam número ou texto.
type FuncionarioRequest struct {
	Nome         string          `json:"nome"`
	CPF          string          `json:"cpf"`
	Email        string          `json:"email"`
	Cargo        string          `json:"cargo"`
	Secretaria   string          `json:"secretaria"`
	Salario      decimal.Decimal `json:"salario"`
	TipoContrato string          `json:"tipoContrato"`
	Beneficios   decimal.Decimal `json:"beneficios"`
	DataAdmissao *time.Time      `json:"dataAdmissao"`
	Ativo        *bool           `json:"ativo"`
}

// SimularRequest permite sobrescrever os benefícios cadastrados.
type SimularRequest struct {
	Beneficios *decimal.Decimal `json:"beneficios"`
}

// paraModelo valida o payload e normaliza CPF e vínculo.
// ativoPadrao vale quando o corpo não traz `ativo`.
func (req FuncionarioRequest) paraModelo(ativoPadrao bool) (Funcionario, error) {
	nome := strings.TrimSpace(req.Nome)
	if nome == "" {
		return Funcionario{}, fmt.Errorf("%w: nome é obrigatório", folha.ErrEntradaInvalida)
	}
	cpf := utils.ApenasDigitos(req.CPF)
	if !utils.CPFValido(cpf) {
		return Funcionario{}, fmt.Errorf("%w: CPF inválido", folha.ErrEntradaInvalida)
	}
	tipo, err := folha.ParseTipoContrato(req.TipoContrato)
	if err != nil {
		return Funcionario{}, err
	}
	if err := folha.Validar(folha.EntradaSalario{SalarioBruto: req.Salario, TipoContrato: tipo, Beneficios: req.Beneficios}); err != nil {
		return Funcionario{}, err
	}

	ativo := ativoPadrao
	if req.Ativo != nil {
		ativo = *req.Ativo
	}
	return Funcionario{
		Nome:         nome,
		CPF:          cpf,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Cargo:        strings.TrimSpace(req.Cargo),
		Secretaria:   strings.TrimSpace(req.Secretaria),
		Salario:      req.Salario.Round(2),
		TipoContrato: tipo,
		Beneficios:   req.Beneficios.Round(2),
		DataAdmissao: req.DataAdmissao,
		Ativo:        ativo,
	}, nil
}

type FuncionarioDTO struct {
	ID           uint       `json:"id"`
	Nome         string     `json:"nome"`
	CPF          string     `json:"cpf"`
	Email        string     `json:"email,omitempty"`
	Cargo        string     `json:"cargo,omitempty"`
	Secretaria   string     `json:"secretaria,omitempty"`
	Salario      float64    `json:"salario"`
	TipoContrato string     `json:"tipoContrato"`
	Beneficios   float64    `json:"beneficios"`
	DataAdmissao *time.Time `json:"dataAdmissao,omitempty"`
	Ativo        bool       `json:"ativo"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func ToDTO(f Funcionario) FuncionarioDTO {
	return FuncionarioDTO{
		ID:           f.ID,
		Nome:         f.Nome,
		CPF:          f.CPF,
		Email:        f.Email,
		Cargo:        f.Cargo,
		Secretaria:   f.Secretaria,
		Salario:      f.Salario.InexactFloat64(),
		TipoContrato: f.TipoContrato.String(),
		Beneficios:   f.Beneficios.InexactFloat64(),
		DataAdmissao: f.DataAdmissao,
		Ativo:        f.Ativo,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

// TotaisFolhaDTO soma os valores mensais de um grupo de funcionários.
type TotaisFolhaDTO struct {
	Funcionarios   int     `json:"funcionarios"`
	SalarioBruto   float64 `json:"salarioBruto"`
	INSS           float64 `json:"inss"`
	IRRF           float64 `json:"irrf"`
	FGTS           float64 `json:"fgts"`
	Beneficios     float64 `json:"beneficios"`
	SalarioLiquido float64 `json:"salarioLiquido"`
}

type ResumoSecretariaDTO struct {
	Secretaria string `json:"secretaria"`
	TotaisFolhaDTO
}

type ResumoFolhaDTO struct {
	Secretarias []ResumoSecretariaDTO `json:"secretarias"`
	Geral       TotaisFolhaDTO        `json:"geral"`
}
