package view

import (
	"helium-explorer/types"
)

type Phase int

const (
	PhaseInit Phase = iota
	PhaseLoading
	PhaseReady
	PhasePageLoading
	PhaseExhausted
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhasePageLoading:
		return "page_loading"
	case PhaseExhausted:
		return "exhausted"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is what a front-end renders for one block. It is only ever replaced
// by Reduce, never mutated in place.
type State struct {
	Epoch        uint64
	Hash         string
	Block        *types.Block
	Transactions []*types.Transaction
	Loading      bool
	PageLoading  bool
	HasMore      bool
	Err          error
}

func (s State) Phase() Phase {
	switch {
	case s.Hash == "":
		return PhaseInit
	case s.Err != nil:
		return PhaseFailed
	case s.Loading:
		return PhaseLoading
	case s.PageLoading:
		return PhasePageLoading
	case !s.HasMore:
		return PhaseExhausted
	default:
		return PhaseReady
	}
}

// CanLoadMore reports whether the "load more" control should be offered.
func (s State) CanLoadMore() bool {
	return s.Block != nil && !s.Loading && !s.PageLoading && s.HasMore
}

type Action interface {
	epoch() uint64
}

// Reset starts a new navigation. Its epoch must be greater than the current
// one; every later action carries the epoch it was issued under.
type Reset struct {
	Epoch uint64
	Hash  string
}

type BlockLoaded struct {
	Epoch uint64
	Block *types.Block
}

type PageRequested struct {
	Epoch uint64
}

type PageLoaded struct {
	Epoch        uint64
	Transactions []*types.Transaction
	PageSize     int
}

type Failed struct {
	Epoch uint64
	Err   error
}

func (a Reset) epoch() uint64         { return a.Epoch }
func (a BlockLoaded) epoch() uint64   { return a.Epoch }
func (a PageRequested) epoch() uint64 { return a.Epoch }
func (a PageLoaded) epoch() uint64    { return a.Epoch }
func (a Failed) epoch() uint64        { return a.Epoch }

// Reduce returns the state that follows s after action. Actions stamped with
// an epoch other than the current one are stale and leave s unchanged.
func Reduce(s State, action Action) State {
	if reset, ok := action.(Reset); ok {
		return State{
			Epoch:        reset.Epoch,
			Hash:         reset.Hash,
			Transactions: []*types.Transaction{},
			Loading:      true,
			HasMore:      true,
		}
	}
	if action.epoch() != s.Epoch {
		return s
	}

	switch a := action.(type) {
	case BlockLoaded:
		s.Block = a.Block
		s.Loading = false
		s.Err = nil
	case PageRequested:
		s.PageLoading = true
		s.Err = nil
	case PageLoaded:
		s.Transactions = appendUnique(s.Transactions, a.Transactions)
		s.HasMore = len(a.Transactions) == a.PageSize
		s.PageLoading = false
	case Failed:
		s.Err = a.Err
		s.Loading = false
		s.PageLoading = false
	}
	return s
}

// appendUnique copies txns so states handed out earlier keep their slice.
func appendUnique(txns, page []*types.Transaction) []*types.Transaction {
	seen := make(map[string]bool, len(txns)+len(page))
	merged := make([]*types.Transaction, 0, len(txns)+len(page))
	for _, tx := range txns {
		seen[tx.Hash] = true
		merged = append(merged, tx)
	}
	for _, tx := range page {
		if seen[tx.Hash] {
			continue
		}
		seen[tx.Hash] = true
		merged = append(merged, tx)
	}
	return merged
}
