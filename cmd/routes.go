package main

import (
	"net/http"

	"github.com/GestaoMunicipal/api-folha/internal/auth"
	"github.com/GestaoMunicipal/api-folha/internal/funcionario"
	"github.com/GestaoMunicipal/api-folha/internal/simulacao"
	"github.com/GestaoMunicipal/api-folha/internal/usuario"
	"github.com/gorilla/mux"
)

type handlers struct {
	keys         *auth.Keys
	sessoes      *auth.Sessoes
	usuarios     *usuario.Handler
	funcionarios *funcionario.Handler
	simulacoes   *simulacao.Handler
}

func admin(h http.HandlerFunc) http.Handler {
	return auth.RequireAdmin(h)
}

func novoRouter(h handlers) *mux.Router {
	r := mux.NewRouter()

	// Rotas públicas
	r.HandleFunc("/usuarios/login", h.usuarios.Login).Methods("POST")
	r.HandleFunc("/auth/refresh", h.sessoes.Refresh).Methods("POST")
	r.HandleFunc("/auth/logout", h.sessoes.Logout).Methods("POST")
	r.HandleFunc("/.well-known/jwks.json", h.keys.JWKSHandler).Methods("GET")
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	api := r.NewRoute().Subrouter()
	api.Use(auth.Autenticar(h.keys))

	// Rotas de usuários
	api.Handle("/usuarios", admin(h.usuarios.Create)).Methods("POST")
	api.Handle("/usuarios", admin(h.usuarios.List)).Methods("GET")
	api.HandleFunc("/usuarios/me", h.usuarios.Me).Methods("GET")

	// Rotas de funcionários
	api.Handle("/funcionarios", admin(h.funcionarios.Criar)).Methods("POST")
	api.HandleFunc("/funcionarios", h.funcionarios.Listar).Methods("GET")
	api.HandleFunc("/funcionarios/{id}", h.funcionarios.BuscarPorID).Methods("GET")
	api.Handle("/funcionarios/{id}", admin(h.funcionarios.Atualizar)).Methods("PUT")
	api.Handle("/funcionarios/{id}", admin(h.funcionarios.Deletar)).Methods("DELETE")
	api.HandleFunc("/funcionarios/{id}/descontos", h.funcionarios.Descontos).Methods("GET")
	api.HandleFunc("/funcionarios/{id}/simulacoes", h.funcionarios.Simular).Methods("POST")

	// Rotas de folha e simulações
	api.HandleFunc("/folha/resumo", h.funcionarios.Resumo).Methods("GET")
	api.HandleFunc("/folha/descontos", h.simulacoes.Descontos).Methods("POST")
	api.HandleFunc("/simulacoes", h.simulacoes.Create).Methods("POST")
	api.HandleFunc("/simulacoes", h.simulacoes.List).Methods("GET")
	api.HandleFunc("/simulacoes/{id}", h.simulacoes.Get).Methods("GET")
	api.HandleFunc("/simulacoes/{id}", h.simulacoes.Delete).Methods("DELETE")

	return r
}
