package service

import (
	"errors"
	"strings"
)

var (
	ErrNoOrderFile = errors.New("nenhum arquivo de pedidos foi enviado")
	ErrEmptySheet  = errors.New("a planilha de pedidos não contém dados")
)

// MissingColumnsError rejects an order sheet that lacks required headers.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "colunas obrigatórias ausentes: " + strings.Join(e.Columns, ", ")
}
