package types

import (
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/goccy/go-json"
)

func TestTxnTypeLabel(t *testing.T) {
	assert.Equal(t, PaymentV1.Label(), "Payment")
	assert.Equal(t, PaymentV2.Label(), "Payment")
	assert.Equal(t, PocReceiptsV1.Label(), "PoC Receipt")
	assert.Equal(t, StateChannelCloseV1.Label(), "Packets Transferred")
	assert.Equal(t, TxnType("brand_new_v9").Label(), "brand_new_v9")
}

func TestTransactionTotalAmount(t *testing.T) {
	var tx Transaction
	raw := `{"type":"payment_v2","hash":"h1","fee":35000,"payer":"p",
		"payments":[{"payee":"a","amount":100},{"payee":"b","amount":250}]}`
	if err := json.Unmarshal([]byte(raw), &tx); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, tx.Type.IsPayment(), true)
	assert.Equal(t, tx.TotalAmount(), uint64(350))
	assert.Equal(t, tx.Fee, uint64(35000))

	v1 := Transaction{Type: PaymentV1, Amount: 42}
	assert.Equal(t, v1.TotalAmount(), uint64(42))
}

func TestBlockDecode(t *testing.T) {
	var block Block
	raw := `{"hash":"abc","height":93212,"time":1576700000,"transaction_count":21,"prev_hash":"xyz"}`
	if err := json.Unmarshal([]byte(raw), &block); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, block.Height, uint64(93212))
	assert.Equal(t, block.TransactionCount, 21)
	assert.Equal(t, block.Timestamp().Unix(), int64(1576700000))
}
