package simulacao

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GestaoMunicipal/api-folha/internal/cache"
	"github.com/GestaoMunicipal/api-folha/internal/folha"
	"github.com/GestaoMunicipal/api-folha/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type spyCache struct {
	*cache.MemoryCache
	hits, sets int
	falhaSet   bool
}

func (c *spyCache) Get(ctx context.Context, key string) (string, bool) {
	v, ok := c.MemoryCache.Get(ctx, key)
	if ok {
		c.hits++
	}
	return v, ok
}

func (c *spyCache) Set(ctx context.Context, key, value string) error {
	c.sets++
	if c.falhaSet {
		return errors.New("redis fora")
	}
	return c.MemoryCache.Set(ctx, key, value)
}

func novoService(t *testing.T) (*Service, *spyCache) {
	t.Helper()
	c := &spyCache{MemoryCache: cache.NewMemoryCache(time.Minute)}
	db := testutil.NewTestDB(t, &Simulacao{})
	return NewService(NewRepository(db), c, zap.NewNop()), c
}

func entrada(bruto string, tipo folha.TipoContrato, beneficios string) folha.EntradaSalario {
	return folha.EntradaSalario{
		SalarioBruto: decimal.RequireFromString(bruto),
		TipoContrato: tipo,
		Beneficios:   decimal.RequireFromString(beneficios),
	}
}

func TestSimular_UsaCache(t *testing.T) {
	s, c := novoService(t)
	ctx := context.Background()

	r1, err := s.Simular(ctx, entrada("5000", folha.ContratoCLT, "300"))
	require.NoError(t, err)
	r2, err := s.Simular(ctx, entrada("5000.00", folha.ContratoCLT, "300"))
	require.NoError(t, err)

	assert.Equal(t, 1, c.sets)
	assert.Equal(t, 1, c.hits)
	assert.Equal(t, "4284.23", r1.SalarioLiquido.StringFixed(2))
	assert.True(t, r1.SalarioLiquido.Equal(r2.SalarioLiquido))
	assert.True(t, r1.Detalhes.IRRF.Equal(r2.Detalhes.IRRF))
}

func TestSimular_FalhaNoCacheNaoQuebra(t *testing.T) {
	s, c := novoService(t)
	c.falhaSet = true

	r, err := s.Simular(context.Background(), entrada("2000", folha.ContratoTemporario, "0"))
	require.NoError(t, err)
	assert.Equal(t, "1680.00", r.SalarioLiquido.StringFixed(2))
}

func TestSimular_EntradaInvalida(t *testing.T) {
	s, c := novoService(t)

	_, err := s.Simular(context.Background(), entrada("-1", folha.ContratoPJ, "0"))
	assert.True(t, errors.Is(err, folha.ErrEntradaInvalida))
	assert.Equal(t, 0, c.sets)
}

func TestRegistrar(t *testing.T) {
	s, _ := novoService(t)
	fid := uint(9)

	sim, err := s.Registrar(context.Background(), &fid, 2, entrada("5000", folha.ContratoPJ, "0"))
	require.NoError(t, err)
	require.NotZero(t, sim.ID)

	salvo, err := s.Repo.FindByID(sim.ID)
	require.NoError(t, err)
	assert.Equal(t, folha.ContratoPJ, salvo.TipoContrato)
	assert.Equal(t, uint(2), salvo.CriadoPor)
	require.NotNil(t, salvo.FuncionarioID)
	assert.Equal(t, fid, *salvo.FuncionarioID)
	assert.Equal(t, "300.00", salvo.Descontos.StringFixed(2))
	assert.Equal(t, "4700.00", salvo.Liquido.StringFixed(2))
}

func TestRepository_ListFiltraEDelete(t *testing.T) {
	s, _ := novoService(t)
	ctx := context.Background()
	fid := uint(1)

	_, err := s.Registrar(ctx, &fid, 1, entrada("3000", folha.ContratoCLT, "0"))
	require.NoError(t, err)
	_, err = s.Registrar(ctx, nil, 1, entrada("3000", folha.ContratoPJ, "0"))
	require.NoError(t, err)

	todas, err := s.Repo.List(Filtro{})
	require.NoError(t, err)
	assert.Len(t, todas, 2)

	doFuncionario, err := s.Repo.List(Filtro{FuncionarioID: &fid})
	require.NoError(t, err)
	require.Len(t, doFuncionario, 1)
	assert.Equal(t, folha.ContratoCLT, doFuncionario[0].TipoContrato)

	pj, err := s.Repo.List(Filtro{TipoContrato: folha.ContratoPJ})
	require.NoError(t, err)
	require.Len(t, pj, 1)

	require.NoError(t, s.Repo.DeleteByID(pj[0].ID))
	assert.Error(t, s.Repo.DeleteByID(pj[0].ID))
}
