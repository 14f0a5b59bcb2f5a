package funcionario

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/GestaoMunicipal/api-folha/internal/auth"
	"github.com/GestaoMunicipal/api-folha/internal/cache"
	"github.com/GestaoMunicipal/api-folha/internal/notificacao"
	"github.com/GestaoMunicipal/api-folha/internal/simulacao"
	"github.com/GestaoMunicipal/api-folha/internal/testutil"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func novoHandler(t *testing.T, webhookURL string) *Handler {
	t.Helper()
	db := testutil.NewTestDB(t, &Funcionario{}, &simulacao.Simulacao{})
	sims := simulacao.NewService(simulacao.NewRepository(db), cache.NewMemoryCache(time.Minute), zap.NewNop())
	return NewHandler(db, sims, notificacao.NewNotificador(webhookURL, zap.NewNop()), zap.NewNop())
}

func requisicao(method, url, body string, vars map[string]string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, url, nil)
	} else {
		req = httptest.NewRequest(method, url, bytes.NewBufferString(body))
	}
	req = req.WithContext(auth.ComUsuario(req.Context(), 7, true))
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}

const ana = `{"nome":"Ana Souza","cpf":"529.982.247-25","secretaria":"Saúde","salario":5000,"tipoContrato":"clt","beneficios":"300"}`

func criar(t *testing.T, h *Handler, body string) FuncionarioDTO {
	t.Helper()
	w := httptest.NewRecorder()
	h.Criar(w, requisicao(http.MethodPost, "/funcionarios", body, nil))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var dto FuncionarioDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
	return dto
}

func TestCriar(t *testing.T) {
	h := novoHandler(t, "")

	dto := criar(t, h, ana)
	assert.NotZero(t, dto.ID)
	assert.Equal(t, "52998224725", dto.CPF)
	assert.Equal(t, "CLT", dto.TipoContrato)
	assert.Equal(t, 5000.0, dto.Salario)
	assert.Equal(t, 300.0, dto.Beneficios)
	assert.True(t, dto.Ativo)
}

func TestCriar_Invalidos(t *testing.T) {
	h := novoHandler(t, "")

	casos := map[string]string{
		"json":     `{nome}`,
		"nome":     `{"nome":" ","cpf":"52998224725","salario":1000,"tipoContrato":"CLT"}`,
		"cpf":      `{"nome":"Ana","cpf":"11111111111","salario":1000,"tipoContrato":"CLT"}`,
		"salario":  `{"nome":"Ana","cpf":"52998224725","salario":-1,"tipoContrato":"CLT"}`,
		"contrato": `{"nome":"Ana","cpf":"52998224725","salario":1000,"tipoContrato":"Estagio"}`,
	}
	for nome, body := range casos {
		w := httptest.NewRecorder()
		h.Criar(w, requisicao(http.MethodPost, "/funcionarios", body, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, nome)
	}
}

func TestCriar_CPFDuplicadoDisparaWebhook(t *testing.T) {
	var chamadas atomic.Int32
	var recebido map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chamadas.Add(1)
		_ = json.NewDecoder(r.Body).Decode(&recebido)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	h := novoHandler(t, srv.URL)
	criar(t, h, ana)

	w := httptest.NewRecorder()
	h.Criar(w, requisicao(http.MethodPost, "/funcionarios", ana, nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, int32(1), chamadas.Load())
	assert.Equal(t, "52998224725", recebido["cpf"])
}

func TestListar(t *testing.T) {
	h := novoHandler(t, "")
	criar(t, h, ana)
	criar(t, h, `{"nome":"Bruno","cpf":"11144477735","secretaria":"Educação","salario":2000,"tipoContrato":"PJ","ativo":false}`)

	w := httptest.NewRecorder()
	h.Listar(w, requisicao(http.MethodGet, "/funcionarios?secretaria=Educa%C3%A7%C3%A3o&ativo=false", "", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var lista []FuncionarioDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&lista))
	require.Len(t, lista, 1)
	assert.Equal(t, "Bruno", lista[0].Nome)

	w = httptest.NewRecorder()
	h.Listar(w, requisicao(http.MethodGet, "/funcionarios?ativo=talvez", "", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBuscarAtualizarDeletar(t *testing.T) {
	h := novoHandler(t, "")
	dto := criar(t, h, ana)
	vars := map[string]string{"id": "1"}
	require.Equal(t, uint(1), dto.ID)

	w := httptest.NewRecorder()
	h.BuscarPorID(w, requisicao(http.MethodGet, "/funcionarios/1", "", vars))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	body := `{"nome":"Ana Souza","cpf":"52998224725","secretaria":"Saúde","salario":6000,"tipoContrato":"PJ"}`
	h.Atualizar(w, requisicao(http.MethodPut, "/funcionarios/1", body, vars))
	require.Equal(t, http.StatusOK, w.Code)
	var atualizado FuncionarioDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&atualizado))
	assert.Equal(t, 6000.0, atualizado.Salario)
	assert.Equal(t, "PJ", atualizado.TipoContrato)

	w = httptest.NewRecorder()
	h.Deletar(w, requisicao(http.MethodDelete, "/funcionarios/1", "", vars))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	h.BuscarPorID(w, requisicao(http.MethodGet, "/funcionarios/1", "", vars))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	h.BuscarPorID(w, requisicao(http.MethodGet, "/funcionarios/x", "", map[string]string{"id": "x"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDescontos(t *testing.T) {
	h := novoHandler(t, "")
	criar(t, h, `{"nome":"Ana","cpf":"52998224725","salario":3000,"tipoContrato":"CLT"}`)

	w := httptest.NewRecorder()
	h.Descontos(w, requisicao(http.MethodGet, "/funcionarios/1/descontos", "", map[string]string{"id": "1"}))
	require.Equal(t, http.StatusOK, w.Code)
	var got simulacao.DescontosDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, simulacao.DescontosDTO{INSS: 360, IRRF: 39.6, NetSalary: 2600.4}, got)
}

func TestSimular(t *testing.T) {
	h := novoHandler(t, "")
	criar(t, h, ana)
	vars := map[string]string{"id": "1"}

	w := httptest.NewRecorder()
	h.Simular(w, requisicao(http.MethodPost, "/funcionarios/1/simulacoes", "", vars))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var sim simulacao.SimulacaoDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&sim))
	assert.Equal(t, 4284.23, sim.NetSalary)
	require.NotNil(t, sim.FuncionarioID)
	assert.Equal(t, uint(1), *sim.FuncionarioID)
	assert.Equal(t, uint(7), sim.CriadoPor)

	w = httptest.NewRecorder()
	h.Simular(w, requisicao(http.MethodPost, "/funcionarios/1/simulacoes", `{"beneficios":0}`, vars))
	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&sim))
	assert.Equal(t, 3984.23, sim.NetSalary)

	w = httptest.NewRecorder()
	h.Simular(w, requisicao(http.MethodPost, "/funcionarios/1/simulacoes", `{"beneficios":-1}`, vars))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	fid := uint(1)
	historico, err := h.Simulacoes.Repo.List(simulacao.Filtro{FuncionarioID: &fid})
	require.NoError(t, err)
	assert.Len(t, historico, 2)
}

func TestResumo(t *testing.T) {
	h := novoHandler(t, "")
	criar(t, h, ana)
	criar(t, h, `{"nome":"Bruno","cpf":"11144477735","secretaria":"Educação","salario":2000,"tipoContrato":"Temporary"}`)
	criar(t, h, `{"nome":"Carla","cpf":"12345678909","secretaria":"Educação","salario":9000,"tipoContrato":"CLT","ativo":false}`)

	w := httptest.NewRecorder()
	h.Resumo(w, requisicao(http.MethodGet, "/folha/resumo", "", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resumo ResumoFolhaDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resumo))
	assert.Equal(t, 2, resumo.Geral.Funcionarios)
	assert.Equal(t, 7000.0, resumo.Geral.SalarioBruto)
	assert.Equal(t, 5964.23, resumo.Geral.SalarioLiquido)
	require.Len(t, resumo.Secretarias, 2)
	assert.Equal(t, "Educação", resumo.Secretarias[0].Secretaria)
}

func TestAtualizar_SemAtivoMantemSituacao(t *testing.T) {
	h := novoHandler(t, "")
	criar(t, h, `{"nome":"Bruno","cpf":"11144477735","salario":2000,"tipoContrato":"PJ","ativo":false}`)
	vars := map[string]string{"id": "1"}

	w := httptest.NewRecorder()
	body := `{"nome":"Bruno","cpf":"11144477735","cargo":"Motorista","salario":2100,"tipoContrato":"PJ"}`
	h.Atualizar(w, requisicao(http.MethodPut, "/funcionarios/1", body, vars))
	require.Equal(t, http.StatusOK, w.Code)
	var dto FuncionarioDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
	assert.False(t, dto.Ativo)
	assert.Equal(t, "Motorista", dto.Cargo)

	w = httptest.NewRecorder()
	body = `{"nome":"Bruno","cpf":"11144477735","salario":2100,"tipoContrato":"PJ","ativo":true}`
	h.Atualizar(w, requisicao(http.MethodPut, "/funcionarios/1", body, vars))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
	assert.True(t, dto.Ativo)

	w = httptest.NewRecorder()
	h.Atualizar(w, requisicao(http.MethodPut, "/funcionarios/9", body, map[string]string{"id": "9"}))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
