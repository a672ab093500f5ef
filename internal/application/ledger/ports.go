package ledger

import (
	"context"

	"github.com/vncerqueira/estoquebar-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa tx. Garante que a atualização da quantidade do
// item e a escrita/remoção do movimento confirmem ou desfaçam juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// ViewInvalidator invalida as visões derivadas (agregações do dashboard) após
// qualquer escrita confirmada, mantendo-as eventualmente consistentes mesmo
// quando o patch otimista do cache local for incompleto.
type ViewInvalidator interface {
	InvalidateDashboards(ctx context.Context)
}
