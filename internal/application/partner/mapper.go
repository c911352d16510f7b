package partner

import (
	"errors"

	"github.com/jhoicas/gestion-api/internal/application/dto"
	"github.com/jhoicas/gestion-api/internal/domain"
	"github.com/jhoicas/gestion-api/internal/domain/entity"
	"github.com/jhoicas/gestion-api/internal/domain/ledger"
)

func toPartnerResponse(p *entity.Partner) *dto.PartnerResponse {
	txs := p.Transactions
	if txs == nil {
		txs = []entity.Transaction{}
	}
	return &dto.PartnerResponse{
		ID:           p.ID,
		Name:         p.Name,
		Identifier:   p.Identifier,
		Contact:      p.Contact,
		Transactions: txs,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toAmounts(a ledger.Amounts) dto.AmountsDTO {
	return dto.AmountsDTO{Total: a.Total, Paid: a.Paid, ResteAPayer: a.Remaining}
}

func toSettleItems(in []dto.SettleItemRequest) []ledger.SettleItem {
	out := make([]ledger.SettleItem, 0, len(in))
	for _, it := range in {
		out = append(out, ledger.SettleItem{Price: it.UnitPrice(), Quantity: it.Quantite})
	}
	return out
}

func errorsIsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
