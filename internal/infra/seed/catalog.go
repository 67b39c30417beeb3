package seed

import (
	"os"

	"envelope-ledger/internal/domain/capacity"
	"envelope-ledger/internal/domain/partner"
	"envelope-ledger/internal/pkg/errs"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Catalog is the YAML layout of a partner/product seed file:
//
//	partners:
//	  - id: 6f1c...
//	    name: SwissLife
//	    envelope: 100000000
//	    active: true
//	    products:
//	      - id: 0b7e...
//	        category: autocall
//	        title: Autocall Euro Stoxx 2031
type Catalog struct {
	Partners []PartnerEntry `yaml:"partners"`
}

type PartnerEntry struct {
	ID       uuid.UUID      `yaml:"id"`
	Name     string         `yaml:"name"`
	Envelope int64          `yaml:"envelope"`
	Active   *bool          `yaml:"active"`
	Products []ProductEntry `yaml:"products"`
}

type ProductEntry struct {
	ID       uuid.UUID `yaml:"id"`
	Category string    `yaml:"category"`
	Title    string    `yaml:"title"`
}

func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrapf(err, "read catalog seed %s", path)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, errs.Wrap(err, "decode catalog seed")
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	seen := make(map[uuid.UUID]struct{})
	for _, p := range c.Partners {
		if p.ID == uuid.Nil {
			return errs.Newf("partner %q has no id", p.Name)
		}
		if _, err := capacity.NewEnvelope(p.Envelope); err != nil {
			return errs.Wrapf(err, "partner %s envelope", p.ID)
		}
		if _, dup := seen[p.ID]; dup {
			return errs.Newf("duplicate id %s", p.ID)
		}
		seen[p.ID] = struct{}{}
		for _, pr := range p.Products {
			if pr.ID == uuid.Nil {
				return errs.Newf("product %q of partner %s has no id", pr.Title, p.ID)
			}
			if _, dup := seen[pr.ID]; dup {
				return errs.Newf("duplicate id %s", pr.ID)
			}
			seen[pr.ID] = struct{}{}
		}
	}
	return nil
}

func (e PartnerEntry) Partner() partner.Partner {
	active := true
	if e.Active != nil {
		active = *e.Active
	}
	return partner.Partner{
		ID:       e.ID,
		Name:     e.Name,
		Envelope: capacity.Amount(e.Envelope),
		Active:   active,
	}
}

func (e ProductEntry) Product(partnerID uuid.UUID) partner.Product {
	return partner.Product{
		ID:        e.ID,
		PartnerID: partnerID,
		Category:  e.Category,
		Title:     e.Title,
	}
}
