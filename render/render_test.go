package render

import (
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/pkg/errors"
	"helium-explorer/types"
	"helium-explorer/view"
)

func readyState() view.State {
	return view.State{
		Epoch: 1,
		Hash:  "blockhash",
		Block: &types.Block{Hash: "blockhash", Height: 93212, Time: 1576700000, TransactionCount: 2},
		Transactions: []*types.Transaction{
			{Type: types.PaymentV1, Hash: "tx-pay", Fee: 35000, Amount: 250_000_000},
			{Type: types.PocRequestV1, Hash: "tx-poc", Fee: 0, Challenger: "hotspot-x"},
		},
		HasMore: true,
	}
}

func TestPage(t *testing.T) {
	page, err := Page(readyState(), Text, 0)
	assert.Equal(t, err, nil)

	for _, want := range []string{
		"Block 93,212",
		"Hash: blockhash",
		"2 transactions",
		"Payment",
		"tx-pay",
		"35,000",
		"2.5 HNT",
		"PoC Request",
		"challenger hotspot-x",
		"more available",
	} {
		assert.Equal(t, strings.Contains(page, want), true)
	}
}

func TestPageMarkdown(t *testing.T) {
	page, err := Page(readyState(), Markdown, 0)
	assert.Equal(t, err, nil)
	assert.Equal(t, strings.Contains(page, "|"), true)
	assert.Equal(t, strings.Contains(page, "tx-poc"), true)
}

func TestEmptyBlockHidesCountAndLoadMore(t *testing.T) {
	state := readyState()
	state.Transactions = []*types.Transaction{}
	state.HasMore = false
	state.Block.TransactionCount = 0

	page, err := Page(state, Text, 0)
	assert.Equal(t, err, nil)
	assert.Equal(t, strings.Contains(Card(state), "transactions"), false)
	assert.Equal(t, strings.Contains(page, "No transactions"), true)
	assert.Equal(t, strings.Contains(page, "Showing all 0 transactions"), true)
	assert.Equal(t, strings.Contains(page, "more available"), false)
}

func TestCardStates(t *testing.T) {
	assert.Equal(t, Card(view.State{}), "No block selected\n")

	loading := view.State{Epoch: 1, Hash: "h", Loading: true, HasMore: true}
	assert.Equal(t, Card(loading), "Block h\nLoading...\n")

	failed := view.State{Epoch: 1, Hash: "h", Err: errors.New("boom")}
	assert.Equal(t, Card(failed), "Block h\nError: boom\n")
}

func TestDetail(t *testing.T) {
	pay2 := &types.Transaction{Type: types.PaymentV2, Payments: []types.Payment{{Amount: 1}, {Amount: 2}}}
	assert.Equal(t, Detail(pay2), "0.00000003 HNT")

	rewards := &types.Transaction{Type: types.RewardsV1}
	assert.Equal(t, Detail(rewards), "")
}
