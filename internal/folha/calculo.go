package folha

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrEntradaInvalida sinaliza salário/benefício negativo ou vínculo desconhecido.
var ErrEntradaInvalida = errors.New("entrada inválida")

// ValorMaximo limita salário e benefícios para que a soma caiba em numeric(12,2).
var ValorMaximo = decimal.RequireFromString("999999999.99")

// EntradaSalario é a entrada imutável de uma simulação.
type EntradaSalario struct {
	SalarioBruto decimal.Decimal `json:"grossSalary"`
	TipoContrato TipoContrato    `json:"contractType"`
	Beneficios   decimal.Decimal `json:"benefits"`
}

// DetalheDescontos traz cada componente já arredondado.
type DetalheDescontos struct {
	INSS             decimal.Decimal `json:"inss"`
	IRRF             decimal.Decimal `json:"irrf"`
	FGTS             decimal.Decimal `json:"fgts"`
	OutrosBeneficios decimal.Decimal `json:"otherBenefits"`
}

// ResultadoSimulacao é o retorno de SimularSalario.
type ResultadoSimulacao struct {
	SalarioBruto   decimal.Decimal  `json:"grossSalary"`
	Descontos      decimal.Decimal  `json:"deductions"`
	Beneficios     decimal.Decimal  `json:"benefits"`
	SalarioLiquido decimal.Decimal  `json:"netSalary"`
	Detalhes       DetalheDescontos `json:"details"`
}

// Descontos é o retorno do cálculo simples exibido na ficha do funcionário.
type Descontos struct {
	INSS           decimal.Decimal `json:"inss"`
	IRRF           decimal.Decimal `json:"irrf"`
	SalarioLiquido decimal.Decimal `json:"netSalary"`
}

// CalcularDescontos roda INSS e IRRF sobre o salário, sem considerar o vínculo.
// Não valida a entrada: valores negativos seguem pelas mesmas fórmulas.
func CalcularDescontos(salario decimal.Decimal) Descontos {
	inss := CalcularINSS(salario)
	irrf := CalcularIRRF(salario.Sub(inss))
	return Descontos{
		INSS:           inss,
		IRRF:           irrf,
		SalarioLiquido: arredondar(salario.Sub(inss).Sub(irrf)),
	}
}

// SimularSalario calcula descontos e líquido conforme o tipo de contrato.
// Vínculo desconhecido não gera descontos; use SimularValidado para rejeitá-lo.
func SimularSalario(bruto decimal.Decimal, tipo TipoContrato, beneficios decimal.Decimal) ResultadoSimulacao {
	var inss, irrf, fgts, descontos decimal.Decimal

	switch tipo {
	case ContratoCLT:
		inss = CalcularINSS(bruto)
		irrf = CalcularIRRF(bruto.Sub(inss))
		fgts = arredondar(bruto.Mul(aliquotaFGTS))
		descontos = arredondar(inss.Add(irrf))
	case ContratoPJ:
		// o Simples é reportado como IRRF
		descontos = arredondar(bruto.Mul(aliquotaPJ))
		irrf = descontos
	case ContratoTemporario:
		inss = arredondar(bruto.Mul(aliquotaINSSTemp))
		irrf = arredondar(bruto.Mul(aliquotaIRRFTemp))
		descontos = arredondar(inss.Add(irrf))
	}

	return ResultadoSimulacao{
		SalarioBruto:   arredondar(bruto),
		Descontos:      descontos,
		Beneficios:     arredondar(beneficios),
		SalarioLiquido: arredondar(bruto.Sub(descontos).Add(beneficios)),
		Detalhes: DetalheDescontos{
			INSS:             arredondar(inss),
			IRRF:             arredondar(irrf),
			FGTS:             arredondar(fgts),
			OutrosBeneficios: arredondar(beneficios),
		},
	}
}

// Validar rejeita salário ou benefícios negativos ou acima de ValorMaximo e vínculo desconhecido.
func Validar(e EntradaSalario) error {
	if e.SalarioBruto.IsNegative() {
		return fmt.Errorf("%w: salário bruto negativo", ErrEntradaInvalida)
	}
	if e.Beneficios.IsNegative() {
		return fmt.Errorf("%w: benefícios negativos", ErrEntradaInvalida)
	}
	if e.SalarioBruto.GreaterThan(ValorMaximo) || e.Beneficios.GreaterThan(ValorMaximo) {
		return fmt.Errorf("%w: valor acima de %s", ErrEntradaInvalida, ValorMaximo.StringFixed(2))
	}
	if !e.TipoContrato.Valido() {
		return fmt.Errorf("%w: tipo de contrato desconhecido %q", ErrEntradaInvalida, e.TipoContrato)
	}
	return nil
}

// SimularValidado é o caminho usado pela API: valida antes de simular.
func SimularValidado(e EntradaSalario) (ResultadoSimulacao, error) {
	if err := Validar(e); err != nil {
		return ResultadoSimulacao{}, err
	}
	return SimularSalario(e.SalarioBruto, e.TipoContrato, e.Beneficios), nil
}
