package parcela

import "github.com/pkg/errors"

var (
	ErrStatusInvalido = errors.New("status inválido. Use 'Pendente', 'Pago' ou 'Cancelada'")
	ErrParcelaPaga    = errors.New("não é permitido alterar o status de uma parcela já paga")
)

var statusPermitidos = map[string]bool{
	StatusPendente:  true,
	StatusPago:      true,
	StatusCancelada: true,
}

// ValidarTransicao aplica a regra de status: uma parcela paga não volta atrás.
func ValidarTransicao(atual, novo string) error {
	if !statusPermitidos[novo] {
		return ErrStatusInvalido
	}
	if atual == StatusPago && novo != StatusPago {
		return ErrParcelaPaga
	}
	return nil
}
