// Package strategy implements the strategy state machine: it consumes
// MarketUpdate events and emits Signal events by gating entries on a
// conjunction of indicator predicates and exiting on regime/indicator
// reversals.
package strategy

import "github.com/bmackie-quant/newsmomentum-backtest/internal/market"

// Strategy is the capability interface the simulator dispatches
// MarketUpdate events to: a single ProcessMarketUpdate entry point, adapted
// here to the richer Tick/Event shapes this engine uses and to the
// simulator's need to query the strategy's regime label at fill time.
type Strategy interface {
	// ProcessMarketUpdate consumes one tick and returns zero or more Signal
	// events scheduled at the tick's timestamp.
	ProcessMarketUpdate(tick market.Tick) []market.Event

	// OnFill lets the simulator report a confirmed fill back to the
	// strategy so its notion of "holding a position" reflects what actually
	// executed, not merely what it last signalled.
	OnFill(fill market.Fill)

	// RegimeLabel reports the strategy's classifier's current label, read
	// by the simulator when a LONG fill opens a position.
	RegimeLabel() string
}
