package simulacao

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/GestaoMunicipal/api-folha/internal/cache"
	"github.com/GestaoMunicipal/api-folha/internal/folha"
	"go.uber.org/zap"
)

// Service valida, calcula (com cache) e registra simulações.
type Service struct {
	Repo  *Repository
	Cache cache.Cache
	Log   *zap.Logger
}

func NewService(repo *Repository, c cache.Cache, log *zap.Logger) *Service {
	return &Service{Repo: repo, Cache: c, Log: log}
}

func chaveCache(e folha.EntradaSalario) string {
	return fmt.Sprintf("folha:simulacao:%s:%s:%s", e.TipoContrato, e.SalarioBruto.String(), e.Beneficios.String())
}

// Simular devolve o resultado do cálculo sem persistir.
func (s *Service) Simular(ctx context.Context, e folha.EntradaSalario) (folha.ResultadoSimulacao, error) {
	if err := folha.Validar(e); err != nil {
		return folha.ResultadoSimulacao{}, err
	}

	key := chaveCache(e)
	if raw, ok := s.Cache.Get(ctx, key); ok {
		var r folha.ResultadoSimulacao
		if err := json.Unmarshal([]byte(raw), &r); err == nil {
			return r, nil
		}
		s.Log.Warn("cache de simulação corrompido", zap.String("key", key))
	}

	r := folha.SimularSalario(e.SalarioBruto, e.TipoContrato, e.Beneficios)

	// falha de cache não é crítica
	if raw, err := json.Marshal(r); err == nil {
		if err := s.Cache.Set(ctx, key, string(raw)); err != nil {
			s.Log.Warn("falha ao gravar cache de simulação", zap.Error(err))
		}
	}
	return r, nil
}

// Registrar simula e guarda no histórico.
func (s *Service) Registrar(ctx context.Context, funcionarioID *uint, usuarioID uint, e folha.EntradaSalario) (*Simulacao, error) {
	r, err := s.Simular(ctx, e)
	if err != nil {
		return nil, err
	}
	sim := NovaSimulacao(e.TipoContrato, r)
	sim.FuncionarioID = funcionarioID
	sim.CriadoPor = usuarioID
	if err := s.Repo.Create(&sim); err != nil {
		return nil, fmt.Errorf("salvando simulação: %w", err)
	}
	// devolve o que o banco guardou, igual ao que GET /simulacoes/{id} verá
	salvo, err := s.Repo.FindByID(sim.ID)
	if err != nil {
		return nil, fmt.Errorf("relendo simulação %d: %w", sim.ID, err)
	}
	return salvo, nil
}
