package stock

import (
	"errors"
	"strings"
	"time"

	"wms/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrReceiptIsNotConstructed = errors.New("Receipt must be created via NewReceipt constructor")

// Donor identifies who a receipt came from. Its name feeds the three letter
// donor code of the receipt reference.
type Donor struct {
	ID   uuid.UUID
	Name string
}

// Receipt is the inbound document lots are received against.
type Receipt struct {
	id         uuid.UUID
	reference  string
	donor      *Donor
	receivedOn time.Time
}

func NewReceipt(id uuid.UUID, reference string, donor *Donor, receivedOn time.Time) (*Receipt, error) {
	reference = strings.TrimSpace(reference)
	if err := errors.Join(requireID("id", id), requireReference(reference)); err != nil {
		return nil, err
	}
	if donor != nil && donor.ID == uuid.Nil {
		return nil, errs.NewValueIsRequiredError("donor id")
	}
	return &Receipt{
		id:         id,
		reference:  reference,
		donor:      donor,
		receivedOn: Date(receivedOn),
	}, nil
}

func (r *Receipt) Validate() error {
	if r == nil || r.id == uuid.Nil {
		return ErrReceiptIsNotConstructed
	}
	return nil
}

func (r *Receipt) ID() uuid.UUID         { return r.id }
func (r *Receipt) Reference() string     { return r.reference }
func (r *Receipt) Donor() *Donor         { return r.donor }
func (r *Receipt) ReceivedOn() time.Time { return r.receivedOn }

func requireReference(reference string) error {
	if reference == "" {
		return errs.NewValueIsRequiredError("reference")
	}
	return nil
}
