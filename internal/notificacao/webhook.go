package notificacao

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Notificador envia alertas para o webhook da equipe de RH.
type Notificador struct {
	URL    string
	Client *http.Client
	Log    *zap.Logger
}

func NewNotificador(url string, log *zap.Logger) *Notificador {
	return &Notificador{
		URL:    url,
		Client: &http.Client{Timeout: 5 * time.Second},
		Log:    log,
	}
}

type alerta struct {
	Mensagem string `json:"mensagem"`
	CPF      string `json:"cpf"`
	Nome     string `json:"nome,omitempty"`
}

// AlertarCPFDuplicado avisa que alguém tentou cadastrar um CPF já existente.
// Falhas só vão para o log; o cadastro não depende do webhook.
func (n *Notificador) AlertarCPFDuplicado(ctx context.Context, cpf, nome string) {
	if n == nil || n.URL == "" {
		return
	}
	err := n.enviar(ctx, alerta{
		Mensagem: "Alerta: tentativa de cadastro de funcionário com CPF já existente",
		CPF:      cpf,
		Nome:     nome,
	})
	if err != nil {
		n.Log.Warn("erro ao enviar webhook", zap.String("cpf", cpf), zap.Error(err))
	}
}

func (n *Notificador) enviar(ctx context.Context, payload alerta) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook respondeu %d", resp.StatusCode)
	}
	return nil
}
