package market

// Direction is the side of a Signal/Order/Fill. The strategy modeled here is
// long-only, but Direction still carries Short for completeness of the wire
// format — nothing in this repo emits it.
type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
	Exit  Direction = "EXIT"
)

// Kind tags which payload an Event carries. Event dispatch is a closed set of
// four variants; a tagged struct with a Kind discriminant is the Go analogue
// of a class hierarchy over a closed set, without needing a type switch over
// unexported interfaces.
type Kind int

const (
	KindMarketUpdate Kind = iota
	KindSignal
	KindOrder
	KindFill
)

func (k Kind) String() string {
	switch k {
	case KindMarketUpdate:
		return "MarketUpdate"
	case KindSignal:
		return "Signal"
	case KindOrder:
		return "Order"
	case KindFill:
		return "Fill"
	default:
		return "Unknown"
	}
}

// MarketUpdate carries one tick into the event loop.
type MarketUpdate struct {
	Tick Tick
}

// Signal is a strategy's trading decision: open, add to, or exit a position.
type Signal struct {
	Symbol string
	Dir    Direction
	Qty    float64
	Price  float64
}

// Order is a Signal translated into something the simulator can fill.
type Order struct {
	Symbol string
	Dir    Direction
	Qty    float64
	Price  float64
}

// Fill is the synthetic execution of an Order after latency has elapsed.
type Fill struct {
	Symbol     string
	Dir        Direction
	Qty        float64
	FillPrice  float64
	Commission float64
}

// Event is the unit the simulator's priority queue dispatches. Exactly one of
// the payload pointers is non-nil, selected by Kind; once dequeued an Event is
// consumed exactly once and never re-enqueued by value (a new Event is built
// for whatever gets scheduled next).
type Event struct {
	Ts   int64
	Kind Kind

	MarketUpdate *MarketUpdate
	Signal       *Signal
	Order        *Order
	Fill         *Fill
}

// NewMarketUpdateEvent wraps a tick as a MarketUpdate event at its own timestamp.
func NewMarketUpdateEvent(t Tick) Event {
	return Event{Ts: t.TimestampUs, Kind: KindMarketUpdate, MarketUpdate: &MarketUpdate{Tick: t}}
}

// NewSignalEvent builds a Signal event scheduled at ts.
func NewSignalEvent(ts int64, symbol string, dir Direction, qty, price float64) Event {
	return Event{Ts: ts, Kind: KindSignal, Signal: &Signal{Symbol: symbol, Dir: dir, Qty: qty, Price: price}}
}

// NewOrderEvent builds an Order event preserving the triggering Signal's fields.
func NewOrderEvent(ts int64, symbol string, dir Direction, qty, price float64) Event {
	return Event{Ts: ts, Kind: KindOrder, Order: &Order{Symbol: symbol, Dir: dir, Qty: qty, Price: price}}
}

// NewFillEvent builds a Fill event for the given order at fillTs.
func NewFillEvent(ts int64, symbol string, dir Direction, qty, fillPrice, commission float64) Event {
	return Event{
		Ts:   ts,
		Kind: KindFill,
		Fill: &Fill{Symbol: symbol, Dir: dir, Qty: qty, FillPrice: fillPrice, Commission: commission},
	}
}
