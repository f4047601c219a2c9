package organizacao

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

type ctxKey string

// Header é o cabeçalho HTTP que identifica a organização (tenant).
const Header = "X-Organizacao-ID"

const ctxOrganizacaoID ctxKey = "organizacaoID"

// Middleware exige o cabeçalho X-Organizacao-ID e guarda o ID no contexto.
// Todas as consultas de tabela de preços e vendas ficam restritas a essa organização.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		raw := strings.TrimSpace(r.Header.Get(Header))
		if raw == "" {
			http.Error(w, "Cabeçalho X-Organizacao-ID ausente", http.StatusBadRequest)
			return
		}
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			http.Error(w, "X-Organizacao-ID inválido", http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, r.WithContext(ComID(r.Context(), uint(id))))
	})
}

// ComID devolve um contexto carregando o ID da organização.
func ComID(ctx context.Context, id uint) context.Context {
	return context.WithValue(ctx, ctxOrganizacaoID, id)
}

// DoContexto lê o ID da organização gravado pelo Middleware.
func DoContexto(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(ctxOrganizacaoID).(uint)
	return id, ok && id != 0
}
