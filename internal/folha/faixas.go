package folha

import "github.com/shopspring/decimal"

// Tabelas de 2024 usadas pelo painel. São constantes de política, não derivadas.

type faixaINSS struct {
	limite   decimal.Decimal // inclusivo
	aliquota decimal.Decimal
}

type faixaIRRF struct {
	limite   decimal.Decimal // inclusivo
	aliquota decimal.Decimal
	deducao  decimal.Decimal
}

var (
	faixasINSS = []faixaINSS{
		{limite: decimal.RequireFromString("1320.00"), aliquota: decimal.RequireFromString("0.075")},
		{limite: decimal.RequireFromString("2571.29"), aliquota: decimal.RequireFromString("0.09")},
		{limite: decimal.RequireFromString("3856.94"), aliquota: decimal.RequireFromString("0.12")},
		{limite: decimal.RequireFromString("7507.49"), aliquota: decimal.RequireFromString("0.14")},
	}
	// acima do último limite a contribuição é fixa
	tetoINSS = decimal.RequireFromString("877.24")

	isencaoIRRF = decimal.RequireFromString("2112.00")
	faixasIRRF  = []faixaIRRF{
		{limite: decimal.RequireFromString("2826.65"), aliquota: decimal.RequireFromString("0.075"), deducao: decimal.RequireFromString("158.40")},
		{limite: decimal.RequireFromString("3751.05"), aliquota: decimal.RequireFromString("0.15"), deducao: decimal.RequireFromString("370.40")},
		{limite: decimal.RequireFromString("4664.68"), aliquota: decimal.RequireFromString("0.225"), deducao: decimal.RequireFromString("651.73")},
	}
	ultimaFaixaIRRF = faixaIRRF{aliquota: decimal.RequireFromString("0.275"), deducao: decimal.RequireFromString("884.96")}

	aliquotaFGTS     = decimal.RequireFromString("0.08")
	aliquotaPJ       = decimal.RequireFromString("0.06")
	aliquotaINSSTemp = decimal.RequireFromString("0.11")
	aliquotaIRRFTemp = decimal.RequireFromString("0.05")
)

// arredondar aplica duas casas, meio para longe do zero.
func arredondar(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

// CalcularINSS aplica a alíquota da faixa encontrada sobre o salário inteiro
// (não é o cálculo marginal da Previdência). Acima da última faixa vale o teto fixo.
func CalcularINSS(salario decimal.Decimal) decimal.Decimal {
	for _, f := range faixasINSS {
		if salario.LessThanOrEqual(f.limite) {
			return arredondar(salario.Mul(f.aliquota))
		}
	}
	return tetoINSS
}

// CalcularIRRF calcula o imposto retido sobre a base já descontada do INSS.
func CalcularIRRF(base decimal.Decimal) decimal.Decimal {
	if base.LessThanOrEqual(isencaoIRRF) {
		return decimal.Zero
	}
	faixa := ultimaFaixaIRRF
	for _, f := range faixasIRRF {
		if base.LessThanOrEqual(f.limite) {
			faixa = f
			break
		}
	}
	return arredondar(base.Mul(faixa.aliquota).Sub(faixa.deducao))
}
