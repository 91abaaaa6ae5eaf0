// Package chainsim is a stand-in blockchain RPC client for the
// demonstration command: it enumerates addresses from a synthetic address
// book and reports a deterministic pseudo-balance for each, playing the
// role a real JSON-RPC eth_getBalance client would play against
// chainindexer/pkg/runner.
package chainsim

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"chainindexer/internal/resultstore"
	"chainindexer/pkg/logger"
	"chainindexer/pkg/runner"
)

// Client implements runner.Callback[string], using an address string as
// the entry type.
type Client struct {
	store       *resultstore.Store
	addressBook []string
	height      uint64
	latency     time.Duration
}

// New builds a Client over the given address book, writing results into
// store. latency simulates per-batch RPC round-trip time.
func New(store *resultstore.Store, addressBook []string, latency time.Duration) *Client {
	return &Client{store: store, addressBook: addressBook, height: 1, latency: latency}
}

// Init enumerates every address in the book once per call, which is what
// makes poll mode meaningful here: each rerun re-walks the same book at a
// newer simulated height.
func (c *Client) Init(ctx context.Context, emit func(string) error) error {
	c.height++
	for _, addr := range c.addressBook {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := emit(addr); err != nil {
			return err
		}
	}
	return nil
}

// Run fetches (simulates fetching) balances for a batch of addresses and
// persists them to the result store.
func (c *Client) Run(ctx context.Context, batch []string) runner.RunOutcome[string] {
	if c.latency > 0 {
		select {
		case <-time.After(c.latency):
		case <-ctx.Done():
			return runner.Retry[string]()
		}
	}

	for _, addr := range batch {
		bal := resultstore.Balance{
			Address:   addr,
			Wei:       fmt.Sprintf("%d", pseudoBalance(addr, c.height)),
			Height:    c.height,
			UpdatedAt: time.Now().UTC(),
		}
		if err := c.store.PutBalance(bal); err != nil {
			logger.Warn("failed to persist balance, retrying batch", "address", addr, "err", err)
			return runner.Retry[string]()
		}
	}
	return runner.OK[string]()
}

// pseudoBalance derives a stable, address- and height-dependent integer so
// repeated runs against the same address book produce visibly changing but
// reproducible numbers.
func pseudoBalance(address string, height uint64) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(address))
	base := h.Sum64()
	return base%1_000_000_000 + height*37
}
