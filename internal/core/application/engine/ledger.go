package engine

import (
	"context"
	"errors"
	"time"

	"wms/internal/core/domain/model/kernel"
	"wms/internal/core/domain/model/stock"
	"wms/internal/pkg/errs"

	"github.com/google/uuid"
)

// ReceiptRequest asks Receive to file the lot under a new receipt. An empty
// Reference is generated.
type ReceiptRequest struct {
	Reference string
	Donor     *stock.Donor
}

type ReceiveInput struct {
	ProductID uuid.UUID
	Quantity  int
	// Location defaults to the product's default location.
	Location   *kernel.Location
	Attributes stock.LotAttributes
	Receipt    *ReceiptRequest
	Actor      kernel.Actor
}

type ReceiveResult struct {
	Lot     *stock.Lot
	Receipt *stock.Receipt
}

// Receive creates a lot holding the received quantity and journals an IN
// movement.
func (e *Engine) Receive(ctx context.Context, in ReceiveInput) (ReceiveResult, error) {
	if in.Quantity <= 0 {
		return ReceiveResult{}, errs.NewInvalidQuantityError(in.Quantity)
	}

	product, err := e.repos.ProductRepository().Get(ctx, in.ProductID)
	if err != nil {
		return ReceiveResult{}, err
	}

	location := in.Location
	if location == nil {
		location = product.DefaultLocation()
	}
	if location == nil {
		return ReceiveResult{}, errs.NewValueIsRequiredError("location")
	}

	var result ReceiveResult
	attrs := in.Attributes
	if in.Receipt != nil {
		receivedOn := e.now()
		if attrs.ReceivedOn != nil {
			receivedOn = *attrs.ReceivedOn
		}
		receipt, err := e.fileReceipt(ctx, *in.Receipt, receivedOn)
		if err != nil {
			return ReceiveResult{}, err
		}
		id := receipt.ID()
		attrs.ReceiptID = &id
		if attrs.ReceivedOn == nil {
			day := receipt.ReceivedOn()
			attrs.ReceivedOn = &day
		}
		result.Receipt = receipt
	}

	lot, err := stock.NewLot(uuid.New(), product, in.Quantity, *location, attrs)
	if err != nil {
		return ReceiveResult{}, err
	}
	if err = e.repos.LotRepository().Add(ctx, lot); err != nil {
		return ReceiveResult{}, err
	}

	to := lot.Location()
	if err = e.journal(ctx, stock.MovementIn, lot, in.Quantity, nil, &to, stock.MovementContext{}, in.Actor); err != nil {
		return ReceiveResult{}, err
	}

	result.Lot = lot
	return result, nil
}

// fileReceipt stores a receipt under req.Reference or, when it is empty, under
// a generated reference. A generated reference taken concurrently is
// replaced by the next one.
func (e *Engine) fileReceipt(ctx context.Context, req ReceiptRequest, receivedOn time.Time) (*stock.Receipt, error) {
	if req.Reference != "" {
		return e.addReceipt(ctx, req.Reference, req.Donor, receivedOn)
	}

	var lastErr error
	for attempt := 0; attempt < e.retries; attempt++ {
		ref, err := e.NextReceiptReference(ctx, receivedOn, req.Donor)
		if err != nil {
			return nil, err
		}
		receipt, err := e.addReceipt(ctx, ref, req.Donor, receivedOn)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, errs.ErrDuplicateKey) {
			return nil, err
		}
		lastErr = err
		e.recorder.RecordCodeCollision("receipt")
		e.logger.DebugContext(ctx, "receipt reference taken, retrying", "reference", ref, "attempt", attempt+1)
	}
	return nil, lastErr
}

func (e *Engine) addReceipt(ctx context.Context, ref string, donor *stock.Donor, receivedOn time.Time) (*stock.Receipt, error) {
	receipt, err := stock.NewReceipt(uuid.New(), ref, donor, receivedOn)
	if err != nil {
		return nil, err
	}
	if err = e.repos.ReceiptRepository().Add(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

type AdjustInput struct {
	LotID       uuid.UUID
	Delta       int
	ReasonCode  string
	ReasonNotes string
	Actor       kernel.Actor
}

// Adjust corrects the on hand quantity of a lot by a signed delta and
// journals an ADJUST movement of |delta|.
func (e *Engine) Adjust(ctx context.Context, in AdjustInput) (*stock.Lot, error) {
	if in.Delta == 0 {
		return nil, errs.NewBusinessRuleError(errs.ErrInvalidQuantity, "adjustment delta must not be 0")
	}

	lot, err := e.repos.LotRepository().GetForUpdate(ctx, in.LotID)
	if err != nil {
		return nil, err
	}
	if err = lot.Adjust(in.Delta); err != nil {
		return nil, err
	}
	if err = e.repos.LotRepository().Update(ctx, lot); err != nil {
		return nil, err
	}

	location := lot.Location()
	quantity := in.Delta
	var from, to *kernel.Location
	if in.Delta < 0 {
		from, quantity = &location, -in.Delta
	} else {
		to = &location
	}
	mc := stock.MovementContext{ReasonCode: in.ReasonCode, ReasonNotes: in.ReasonNotes}
	if err = e.journal(ctx, stock.MovementAdjust, lot, quantity, from, to, mc, in.Actor); err != nil {
		return nil, err
	}
	return lot, nil
}

type TransferInput struct {
	LotID       uuid.UUID
	To          kernel.Location
	ReasonNotes string
	Actor       kernel.Actor
}

// Transfer moves the whole lot and journals a TRANSFER movement of its on
// hand quantity, 0 included.
func (e *Engine) Transfer(ctx context.Context, in TransferInput) (*stock.Lot, error) {
	lot, err := e.repos.LotRepository().GetForUpdate(ctx, in.LotID)
	if err != nil {
		return nil, err
	}

	from := lot.Location()
	if err = lot.MoveTo(in.To); err != nil {
		return nil, err
	}
	if err = e.repos.LotRepository().Update(ctx, lot); err != nil {
		return nil, err
	}

	to := lot.Location()
	mc := stock.MovementContext{ReasonNotes: in.ReasonNotes}
	if err = e.journal(ctx, stock.MovementTransfer, lot, lot.OnHand(), &from, &to, mc, in.Actor); err != nil {
		return nil, err
	}
	return lot, nil
}

// ExpireLots marks available lots past their expiry date as expired and
// returns how many changed.
func (e *Engine) ExpireLots(ctx context.Context) (int, error) {
	today := stock.Date(e.now())
	lots, err := e.repos.LotRepository().ListExpiredAvailable(ctx, today)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, lot := range lots {
		if !lot.Expire(today) {
			continue
		}
		if err = e.repos.LotRepository().Update(ctx, lot); err != nil {
			return expired, err
		}
		expired++
	}
	return expired, nil
}

func (e *Engine) journal(
	ctx context.Context,
	movementType stock.MovementType,
	lot *stock.Lot,
	quantity int,
	from, to *kernel.Location,
	mc stock.MovementContext,
	actor kernel.Actor,
) error {
	movement, err := stock.NewMovement(movementType, lot, quantity, from, to, mc, actor, e.now())
	if err != nil {
		return err
	}
	if err = e.repos.MovementRepository().Add(ctx, movement); err != nil {
		return err
	}
	e.recorder.RecordMovement(movementType.String(), quantity)
	return nil
}
