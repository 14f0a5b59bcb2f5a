package folha

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTipoContrato(t *testing.T) {
	casos := map[string]TipoContrato{
		"CLT":        ContratoCLT,
		" clt ":      ContratoCLT,
		"PJ":         ContratoPJ,
		"Temporary":  ContratoTemporario,
		"temporário": ContratoTemporario,
		"Temporario": ContratoTemporario,
	}
	for in, want := range casos {
		got, err := ParseTipoContrato(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
		assert.True(t, got.Valido())
	}

	_, err := ParseTipoContrato("estagio")
	assert.True(t, errors.Is(err, ErrEntradaInvalida))
	assert.False(t, TipoContrato("").Valido())
}

// Um vínculo novo em TiposContrato precisa de um case em SimularSalario.
func TestTiposContrato(t *testing.T) {
	bruto := dec("4000")
	for _, tipo := range TiposContrato {
		assert.True(t, tipo.Valido(), tipo)

		parsed, err := ParseTipoContrato(tipo.String())
		require.NoError(t, err)
		assert.Equal(t, tipo, parsed)

		r := SimularSalario(bruto, tipo, dec("0"))
		assert.True(t, r.Descontos.IsPositive(), "%s sem descontos", tipo)
		assert.True(t, r.SalarioLiquido.Add(r.Descontos).Equal(bruto), tipo)
	}
}
