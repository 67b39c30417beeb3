//go:build unit || e2e

package builder

import (
	"envelope-ledger/internal/domain/capacity"
	"envelope-ledger/internal/domain/partner"
	"envelope-ledger/internal/infra/seed"

	"github.com/google/uuid"
)

type PartnerBuilder struct {
	ID       uuid.UUID
	Name     string
	Envelope int64
	Active   bool
	Products []partner.Product
}

func NewPartnerBuilder() *PartnerBuilder {
	return &PartnerBuilder{
		ID:       uuid.New(),
		Name:     "SwissLife",
		Envelope: 1_000_000,
		Active:   true,
	}
}

func (b *PartnerBuilder) WithEnvelope(envelope int64) *PartnerBuilder {
	b.Envelope = envelope
	return b
}

func (b *PartnerBuilder) Inactive() *PartnerBuilder {
	b.Active = false
	return b
}

// WithProduct adds a product owned by the partner and returns its id.
func (b *PartnerBuilder) WithProduct(title string) uuid.UUID {
	id := uuid.New()
	b.Products = append(b.Products, partner.Product{
		ID:        id,
		PartnerID: b.ID,
		Category:  "autocall",
		Title:     title,
	})
	return id
}

func (b *PartnerBuilder) BuildDomain() partner.Partner {
	return partner.Partner{
		ID:       b.ID,
		Name:     b.Name,
		Envelope: capacity.Amount(b.Envelope),
		Active:   b.Active,
	}
}

func (b *PartnerBuilder) BuildSeedEntry() seed.PartnerEntry {
	active := b.Active
	entry := seed.PartnerEntry{
		ID:       b.ID,
		Name:     b.Name,
		Envelope: b.Envelope,
		Active:   &active,
	}
	for _, p := range b.Products {
		entry.Products = append(entry.Products, seed.ProductEntry{
			ID:       p.ID,
			Category: p.Category,
			Title:    p.Title,
		})
	}
	return entry
}
