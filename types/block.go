package types

import "time"

type Block struct {
	Hash             string `json:"hash"`
	Height           uint64 `json:"height"`
	Time             int64  `json:"time"`
	TransactionCount int    `json:"transaction_count"`
	PrevHash         string `json:"prev_hash"`
	SnapshotHash     string `json:"snapshot_hash,omitempty"`
}

// Timestamp converts the unix seconds reported by the API.
func (b *Block) Timestamp() time.Time {
	return time.Unix(b.Time, 0)
}

type BlockHeight struct {
	Height uint64 `json:"height"`
}
