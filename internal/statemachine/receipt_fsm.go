package statemachine

import (
	"context"
	"fmt"
	"time"

	"github.com/looplab/fsm"
	"github.com/sjperalta/clinic-billing-api/internal/models"
)

// Receipt lifecycle events
const (
	EventCollect = "collect"
	EventReopen  = "reopen"
)

// ReceiptFSM wraps a receipt with its payment state machine
type ReceiptFSM struct {
	receipt *models.Receipt
	fsm     *fsm.FSM
}

// NewReceiptFSM creates a new receipt state machine starting from the receipt's current status
func NewReceiptFSM(receipt *models.Receipt) *ReceiptFSM {
	rfsm := &ReceiptFSM{
		receipt: receipt,
	}

	rfsm.fsm = fsm.NewFSM(
		receipt.Status(),
		fsm.Events{
			// unpaid → paid (balance collected)
			{Name: EventCollect, Src: []string{models.ReceiptStatusUnpaid}, Dst: models.ReceiptStatusPaid},

			// paid → unpaid (collection reversed)
			{Name: EventReopen, Src: []string{models.ReceiptStatusPaid}, Dst: models.ReceiptStatusUnpaid},
		},
		fsm.Callbacks{},
	)

	return rfsm
}

// Collect marks the receipt paid with the given payment mode at the given time
func (r *ReceiptFSM) Collect(ctx context.Context, mode string, at time.Time) error {
	if !r.receipt.MayCollect() {
		return fmt.Errorf("receipt cannot be collected in current state: %s", r.receipt.Status())
	}
	if !models.IsCollectableMode(mode) {
		return fmt.Errorf("payment mode %q cannot settle a receipt", mode)
	}

	if err := r.fsm.Event(ctx, EventCollect); err != nil {
		return fmt.Errorf("failed to collect receipt: %w", err)
	}

	r.receipt.IsPaid = true
	r.receipt.PaymentMode = mode
	r.receipt.PaidAt = &at
	return nil
}

// Reopen moves a paid receipt back to outstanding and clears its payment mode
func (r *ReceiptFSM) Reopen(ctx context.Context) error {
	if !r.receipt.MayReopen() {
		return fmt.Errorf("receipt cannot be reopened in current state: %s", r.receipt.Status())
	}

	if err := r.fsm.Event(ctx, EventReopen); err != nil {
		return fmt.Errorf("failed to reopen receipt: %w", err)
	}

	r.receipt.IsPaid = false
	r.receipt.PaymentMode = models.PaymentModeUnpaid
	r.receipt.PaidAt = nil
	return nil
}

// Current returns the current state
func (r *ReceiptFSM) Current() string {
	return r.fsm.Current()
}

// Can checks if a transition is possible
func (r *ReceiptFSM) Can(event string) bool {
	return r.fsm.Can(event)
}
