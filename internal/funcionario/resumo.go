package funcionario

import (
	"sort"

	"github.com/GestaoMunicipal/api-folha/internal/folha"
	"github.com/shopspring/decimal"
)

// SemSecretaria agrupa quem não tem secretaria cadastrada.
const SemSecretaria = "Sem secretaria"

type totais struct {
	quantidade                                   int
	bruto, inss, irrf, fgts, beneficios, liquido decimal.Decimal
}

func (t *totais) somar(r folha.ResultadoSimulacao) {
	t.quantidade++
	t.bruto = t.bruto.Add(r.SalarioBruto)
	t.inss = t.inss.Add(r.Detalhes.INSS)
	t.irrf = t.irrf.Add(r.Detalhes.IRRF)
	t.fgts = t.fgts.Add(r.Detalhes.FGTS)
	t.beneficios = t.beneficios.Add(r.Beneficios)
	t.liquido = t.liquido.Add(r.SalarioLiquido)
}

func (t totais) dto() TotaisFolhaDTO {
	return TotaisFolhaDTO{
		Funcionarios:   t.quantidade,
		SalarioBruto:   t.bruto.InexactFloat64(),
		INSS:           t.inss.InexactFloat64(),
		IRRF:           t.irrf.InexactFloat64(),
		FGTS:           t.fgts.InexactFloat64(),
		Beneficios:     t.beneficios.InexactFloat64(),
		SalarioLiquido: t.liquido.InexactFloat64(),
	}
}

// MontarResumoFolha simula o mês de cada funcionário ativo e soma por secretaria.
// Secretarias saem em ordem alfabética.
func MontarResumoFolha(funcionarios []Funcionario) ResumoFolhaDTO {
	var geral totais
	porSecretaria := map[string]*totais{}

	for _, f := range funcionarios {
		if !f.Ativo {
			continue
		}
		r := folha.SimularSalario(f.Salario, f.TipoContrato, f.Beneficios)

		nome := f.Secretaria
		if nome == "" {
			nome = SemSecretaria
		}
		t, ok := porSecretaria[nome]
		if !ok {
			t = &totais{}
			porSecretaria[nome] = t
		}
		t.somar(r)
		geral.somar(r)
	}

	nomes := make([]string, 0, len(porSecretaria))
	for nome := range porSecretaria {
		nomes = append(nomes, nome)
	}
	sort.Strings(nomes)

	resumo := ResumoFolhaDTO{
		Secretarias: make([]ResumoSecretariaDTO, 0, len(nomes)),
		Geral:       geral.dto(),
	}
	for _, nome := range nomes {
		resumo.Secretarias = append(resumo.Secretarias, ResumoSecretariaDTO{
			Secretaria:     nome,
			TotaisFolhaDTO: porSecretaria[nome].dto(),
		})
	}
	return resumo
}
