package auth

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	"github.com/GestaoMunicipal/api-folha/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// Keys guarda a chave de assinatura ativa e as chaves públicas por kid.
type Keys struct {
	privKey   *rsa.PrivateKey
	pubKeys   map[string]*rsa.PublicKey
	activeKID string
	issuer    string
	audience  string
}

func NewKeys(priv *rsa.PrivateKey, kid, issuer, audience string) (*Keys, error) {
	if priv == nil || kid == "" || issuer == "" || audience == "" {
		return nil, errors.New("chave, kid, issuer e audience são obrigatórios")
	}
	return &Keys{
		privKey:   priv,
		pubKeys:   map[string]*rsa.PublicKey{kid: &priv.PublicKey},
		activeKID: kid,
		issuer:    issuer,
		audience:  audience,
	}, nil
}

// LoadKeys lê a chave privada PEM (PKCS#1 ou PKCS#8) indicada na configuração.
func LoadKeys(cfg config.AuthConfig) (*Keys, error) {
	if cfg.ChavePrivadaPath == "" || cfg.KID == "" || cfg.Issuer == "" || cfg.Audience == "" {
		return nil, errors.New("missing envs: AUTH_RSA_PRIVATE_PATH/AUTH_KID/AUTH_ISSUER/AUTH_AUDIENCE")
	}

	b, err := os.ReadFile(cfg.ChavePrivadaPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	priv, err := parsePrivateKey(b)
	if err != nil {
		return nil, err
	}
	return NewKeys(priv, cfg.KID, cfg.Issuer, cfg.Audience)
}

func parsePrivateKey(b []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(b)
	if block == nil {
		return nil, errors.New("pem decode private key failed")
	}

	var pk any
	if k, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		pk = k
	} else if k8, err2 := x509.ParsePKCS8PrivateKey(block.Bytes); err2 == nil {
		pk = k8
	} else {
		return nil, fmt.Errorf("parse private key: %v / %v", err, err2)
	}

	priv, ok := pk.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("private key is not RSA")
	}
	return priv, nil
}

func (k *Keys) getPub(kid string) (*rsa.PublicKey, bool) { p, ok := k.pubKeys[kid]; return p, ok }
func signMethod() jwt.SigningMethod                      { return jwt.SigningMethodRS256 }
