package utils

import "strings"

// ApenasDigitos remove pontuação de documentos ("123.456.789-09" -> "12345678909").
func ApenasDigitos(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CPFValido confere tamanho e dígitos verificadores. Espera só dígitos.
func CPFValido(cpf string) bool {
	if len(cpf) != 11 {
		return false
	}
	repetido := true
	for i := 1; i < 11; i++ {
		if cpf[i] != cpf[0] {
			repetido = false
			break
		}
	}
	if repetido {
		return false
	}
	return digitoCPF(cpf[:9], 10) == cpf[9] && digitoCPF(cpf[:10], 11) == cpf[10]
}

func digitoCPF(base string, peso int) byte {
	soma := 0
	for i := 0; i < len(base); i++ {
		soma += int(base[i]-'0') * (peso - i)
	}
	resto := soma * 10 % 11
	if resto == 10 {
		resto = 0
	}
	return byte('0' + resto)
}
