package funcionario

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/GestaoMunicipal/api-folha/internal/auth"
	"github.com/GestaoMunicipal/api-folha/internal/folha"
	"github.com/GestaoMunicipal/api-folha/internal/notificacao"
	"github.com/GestaoMunicipal/api-folha/internal/simulacao"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler encapsula DB, repository e os serviços usados nas rotas de funcionário
type Handler struct {
	DB          *gorm.DB
	Repository  Repository
	Simulacoes  *simulacao.Service
	Notificador *notificacao.Notificador
	Log         *zap.Logger
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB, simulacoes *simulacao.Service, notificador *notificacao.Notificador, log *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Repository:  NewRepository(),
		Simulacoes:  simulacoes,
		Notificador: notificador,
		Log:         log,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func idDaRota(r *http.Request) (uint, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// buscar escreve 400/404/500 e devolve nil quando o funcionário não pode ser carregado.
func (h *Handler) buscar(w http.ResponseWriter, r *http.Request) *Funcionario {
	id, ok := idDaRota(r)
	if !ok {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return nil
	}
	f, err := h.Repository.BuscarPorID(h.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "funcionário não encontrado", http.StatusNotFound)
		return nil
	}
	if err != nil {
		h.Log.Error("erro ao buscar funcionário", zap.Uint("id", id), zap.Error(err))
		http.Error(w, "erro ao buscar funcionário", http.StatusInternalServerError)
		return nil
	}
	return f
}

// Criar trata POST /funcionarios
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req FuncionarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	f, err := req.paraModelo(true)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = h.Repository.Salvar(h.DB, &f)
	if errors.Is(err, ErrCPFDuplicado) {
		h.Log.Warn("cadastro com CPF repetido", zap.String("nome", f.Nome))
		h.Notificador.AlertarCPFDuplicado(r.Context(), f.CPF, f.Nome)
		http.Error(w, "CPF já cadastrado", http.StatusConflict)
		return
	}
	if err != nil {
		h.Log.Error("erro ao salvar funcionário", zap.Error(err))
		http.Error(w, "erro ao salvar funcionário", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, ToDTO(f))
}

// Listar trata GET /funcionarios
// Filtros opcionais: secretaria, tipoContrato, ativo.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filtro := Filtro{Secretaria: q.Get("secretaria")}
	if v := q.Get("tipoContrato"); v != "" {
		tipo, err := folha.ParseTipoContrato(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		filtro.TipoContrato = tipo
	}
	if v := q.Get("ativo"); v != "" {
		ativo, err := strconv.ParseBool(v)
		if err != nil {
			http.Error(w, "parâmetro ativo inválido", http.StatusBadRequest)
			return
		}
		filtro.Ativo = &ativo
	}

	funcionarios, err := h.Repository.ListarTodos(h.DB, filtro)
	if err != nil {
		h.Log.Error("erro ao listar funcionários", zap.Error(err))
		http.Error(w, "erro ao listar funcionários", http.StatusInternalServerError)
		return
	}
	out := make([]FuncionarioDTO, 0, len(funcionarios))
	for _, f := range funcionarios {
		out = append(out, ToDTO(f))
	}
	writeJSON(w, http.StatusOK, out)
}

// BuscarPorID trata GET /funcionarios/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	if f := h.buscar(w, r); f != nil {
		writeJSON(w, http.StatusOK, ToDTO(*f))
	}
}

// Atualizar trata PUT /funcionarios/{id}
// Sem `ativo` no corpo, a situação atual do funcionário é mantida.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	var req FuncionarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	existente := h.buscar(w, r)
	if existente == nil {
		return
	}
	id := existente.ID

	dados, err := req.paraModelo(existente.Ativo)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f, err := h.Repository.Atualizar(h.DB, id, &dados)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "funcionário não encontrado", http.StatusNotFound)
	case errors.Is(err, ErrCPFDuplicado):
		http.Error(w, "CPF já cadastrado", http.StatusConflict)
	case err != nil:
		h.Log.Error("erro ao atualizar funcionário", zap.Uint("id", id), zap.Error(err))
		http.Error(w, "erro ao atualizar funcionário", http.StatusInternalServerError)
	default:
		writeJSON(w, http.StatusOK, ToDTO(*f))
	}
}

// Deletar trata DELETE /funcionarios/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(r)
	if !ok {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Deletar(h.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "funcionário não encontrado", http.StatusNotFound)
			return
		}
		h.Log.Error("erro ao deletar funcionário", zap.Uint("id", id), zap.Error(err))
		http.Error(w, "erro ao deletar funcionário", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Descontos trata GET /funcionarios/{id}/descontos
func (h *Handler) Descontos(w http.ResponseWriter, r *http.Request) {
	f := h.buscar(w, r)
	if f == nil {
		return
	}
	writeJSON(w, http.StatusOK, simulacao.ToDescontosDTO(folha.CalcularDescontos(f.Salario)))
}

// Simular trata POST /funcionarios/{id}/simulacoes
// O corpo é opcional e só pode trocar os benefícios.
func (h *Handler) Simular(w http.ResponseWriter, r *http.Request) {
	var req SimularRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	f := h.buscar(w, r)
	if f == nil {
		return
	}
	entrada := f.Entrada()
	if req.Beneficios != nil {
		entrada.Beneficios = *req.Beneficios
	}

	userID, _ := auth.UsuarioID(r.Context())
	sim, err := h.Simulacoes.Registrar(r.Context(), &f.ID, userID, entrada)
	if errors.Is(err, folha.ErrEntradaInvalida) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.Log.Error("erro ao registrar simulação", zap.Uint("funcionario", f.ID), zap.Error(err))
		http.Error(w, "erro ao registrar simulação", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, simulacao.ToDTO(*sim))
}

// Resumo trata GET /folha/resumo
func (h *Handler) Resumo(w http.ResponseWriter, r *http.Request) {
	ativo := true
	funcionarios, err := h.Repository.ListarTodos(h.DB, Filtro{Ativo: &ativo})
	if err != nil {
		h.Log.Error("erro ao montar resumo da folha", zap.Error(err))
		http.Error(w, "erro ao montar resumo da folha", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, MontarResumoFolha(funcionarios))
}
