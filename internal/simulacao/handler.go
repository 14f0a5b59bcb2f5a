package simulacao

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/GestaoMunicipal/api-folha/internal/auth"
	"github.com/GestaoMunicipal/api-folha/internal/folha"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler gerencia rotas de simulação de salário
type Handler struct {
	Service *Service
	Log     *zap.Logger
}

// NewHandler cria um novo Handler
func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{Service: service, Log: log}
}

func idDaRota(r *http.Request) (uint, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Create trata POST /simulacoes
// Com ?salvar=false só calcula, sem gravar no histórico.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req SimulacaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	tipo, err := folha.ParseTipoContrato(req.ContractType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	entrada := folha.EntradaSalario{SalarioBruto: req.GrossSalary, TipoContrato: tipo, Beneficios: req.Benefits}

	if r.URL.Query().Get("salvar") == "false" {
		res, err := h.Service.Simular(r.Context(), entrada)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, ToResultadoDTO(res))
		return
	}

	userID, _ := auth.UsuarioID(r.Context())
	sim, err := h.Service.Registrar(r.Context(), nil, userID, entrada)
	if errors.Is(err, folha.ErrEntradaInvalida) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.Log.Error("erro ao registrar simulação", zap.Error(err))
		http.Error(w, "Erro ao registrar simulação", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, ToDTO(*sim))
}

// Descontos trata POST /folha/descontos (cálculo simples, sem vínculo)
func (h *Handler) Descontos(w http.ResponseWriter, r *http.Request) {
	var req DescontosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if req.Salary.IsNegative() {
		http.Error(w, "salário não pode ser negativo", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, ToDescontosDTO(folha.CalcularDescontos(req.Salary)))
}

// List trata GET /simulacoes
// Aceita query params opcionais `funcionarioId` e `tipoContrato`.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var f Filtro
	if v := r.URL.Query().Get("funcionarioId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			http.Error(w, "funcionarioId inválido", http.StatusBadRequest)
			return
		}
		fid := uint(id)
		f.FuncionarioID = &fid
	}
	if v := r.URL.Query().Get("tipoContrato"); v != "" {
		tipo, err := folha.ParseTipoContrato(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.TipoContrato = tipo
	}

	list, err := h.Service.Repo.List(f)
	if err != nil {
		http.Error(w, "Erro ao buscar simulações", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toDTOs(list))
}

// Get trata GET /simulacoes/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(r)
	if !ok {
		http.Error(w, "ID da simulação inválido", http.StatusBadRequest)
		return
	}

	sim, err := h.Service.Repo.FindByID(id)
	if err != nil {
		http.Error(w, "Simulação não encontrada", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, ToDTO(*sim))
}

// Delete trata DELETE /simulacoes/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(r)
	if !ok {
		http.Error(w, "ID da simulação inválido", http.StatusBadRequest)
		return
	}

	if err := h.Service.Repo.DeleteByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Simulação não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao deletar simulação", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
