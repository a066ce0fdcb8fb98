package view

import (
	"testing"

	"github.com/go-playground/assert/v2"
	"helium-explorer/types"
)

func txns(hs ...string) []*types.Transaction {
	res := make([]*types.Transaction, 0, len(hs))
	for _, h := range hs {
		res = append(res, &types.Transaction{Hash: h, Type: types.PocReceiptsV1})
	}
	return res
}

func TestReduceLifecycle(t *testing.T) {
	var s State
	assert.Equal(t, s.Phase(), PhaseInit)

	s = Reduce(s, Reset{Epoch: 1, Hash: "h"})
	assert.Equal(t, s.Phase(), PhaseLoading)
	assert.Equal(t, s.HasMore, true)
	assert.Equal(t, len(s.Transactions), 0)

	s = Reduce(s, BlockLoaded{Epoch: 1, Block: &types.Block{Hash: "h"}})
	assert.Equal(t, s.Phase(), PhaseReady)
	assert.Equal(t, s.CanLoadMore(), true)

	s = Reduce(s, PageRequested{Epoch: 1})
	assert.Equal(t, s.Phase(), PhasePageLoading)
	assert.Equal(t, s.CanLoadMore(), false)

	s = Reduce(s, PageLoaded{Epoch: 1, Transactions: txns("a", "b"), PageSize: 2})
	assert.Equal(t, s.Phase(), PhaseReady)
	assert.Equal(t, hashes(s.Transactions), []string{"a", "b"})

	s = Reduce(s, PageRequested{Epoch: 1})
	s = Reduce(s, PageLoaded{Epoch: 1, Transactions: txns("c"), PageSize: 2})
	assert.Equal(t, s.Phase(), PhaseExhausted)
	assert.Equal(t, hashes(s.Transactions), []string{"a", "b", "c"})
}

func TestReduceIgnoresStaleEpoch(t *testing.T) {
	s := Reduce(State{}, Reset{Epoch: 1, Hash: "a"})
	s = Reduce(s, Reset{Epoch: 2, Hash: "b"})

	next := Reduce(s, BlockLoaded{Epoch: 1, Block: &types.Block{Hash: "a"}})
	assert.Equal(t, next.Block == nil, true)
	next = Reduce(next, PageLoaded{Epoch: 1, Transactions: txns("a-0"), PageSize: 20})
	assert.Equal(t, len(next.Transactions), 0)
	next = Reduce(next, Failed{Epoch: 1, Err: errUpstream})
	assert.Equal(t, next.Err, nil)
	assert.Equal(t, next.Hash, "b")
}

func TestReduceSkipsDuplicateHashes(t *testing.T) {
	s := Reduce(State{}, Reset{Epoch: 1, Hash: "h"})
	s = Reduce(s, BlockLoaded{Epoch: 1, Block: &types.Block{Hash: "h"}})
	s = Reduce(s, PageLoaded{Epoch: 1, Transactions: txns("a", "b"), PageSize: 2})
	s = Reduce(s, PageLoaded{Epoch: 1, Transactions: txns("b", "c"), PageSize: 2})

	assert.Equal(t, hashes(s.Transactions), []string{"a", "b", "c"})
	assert.Equal(t, s.HasMore, true)
}

func TestReduceDoesNotShareSlices(t *testing.T) {
	s := Reduce(State{}, Reset{Epoch: 1, Hash: "h"})
	s = Reduce(s, BlockLoaded{Epoch: 1, Block: &types.Block{Hash: "h"}})
	first := Reduce(s, PageLoaded{Epoch: 1, Transactions: txns("a"), PageSize: 1})
	second := Reduce(first, PageLoaded{Epoch: 1, Transactions: txns("b"), PageSize: 1})

	assert.Equal(t, len(first.Transactions), 1)
	assert.Equal(t, len(second.Transactions), 2)
}

func TestReduceFailure(t *testing.T) {
	s := Reduce(State{}, Reset{Epoch: 3, Hash: "h"})
	s = Reduce(s, Failed{Epoch: 3, Err: errUpstream})

	assert.Equal(t, s.Loading, false)
	assert.Equal(t, s.Phase(), PhaseFailed)
	assert.Equal(t, s.Phase().String(), "failed")
	assert.Equal(t, s.CanLoadMore(), false)
}
