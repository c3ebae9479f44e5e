package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Process-wide counters reported by the root endpoint.
var (
	RequestsServed    Counter
	StockReservations Counter
	StockReleases     Counter
	StockRejections   Counter
)

type Snapshot struct {
	RequestsServed    uint64 `json:"requests_served"`
	StockReservations uint64 `json:"stock_reservations"`
	StockReleases     uint64 `json:"stock_releases"`
	StockRejections   uint64 `json:"stock_rejections"`
}

func Current() Snapshot {
	return Snapshot{
		RequestsServed:    RequestsServed.Load(),
		StockReservations: StockReservations.Load(),
		StockReleases:     StockReleases.Load(),
		StockRejections:   StockRejections.Load(),
	}
}
