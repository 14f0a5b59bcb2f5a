package folha

import (
	"fmt"
	"strings"
)

// TipoContrato é a classificação do vínculo que seleciona o conjunto de descontos.
type TipoContrato string

const (
	ContratoCLT        TipoContrato = "CLT"
	ContratoPJ         TipoContrato = "PJ"
	ContratoTemporario TipoContrato = "Temporary"
)

// TiposContrato lista os vínculos aceitos, na ordem em que aparecem no painel.
var TiposContrato = []TipoContrato{ContratoCLT, ContratoPJ, ContratoTemporario}

// ParseTipoContrato converte o texto recebido da API/banco no enum.
// Aceita também a grafia em português do temporário.
func ParseTipoContrato(s string) (TipoContrato, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "clt":
		return ContratoCLT, nil
	case "pj":
		return ContratoPJ, nil
	case "temporary", "temporario", "temporário":
		return ContratoTemporario, nil
	}
	return "", fmt.Errorf("%w: tipo de contrato desconhecido %q", ErrEntradaInvalida, s)
}

// Valido informa se o valor é um dos vínculos conhecidos.
func (t TipoContrato) Valido() bool {
	switch t {
	case ContratoCLT, ContratoPJ, ContratoTemporario:
		return true
	}
	return false
}

func (t TipoContrato) String() string { return string(t) }
