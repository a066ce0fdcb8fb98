package view

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"helium-explorer/types"
)

var errUpstream = errors.New("upstream unavailable")

type fakeSource struct {
	mu       sync.Mutex
	blocks   map[string]*types.Block
	txns     map[string][]*types.Transaction
	hold     map[string]chan struct{}
	blockErr error
	takeErr  error
	getCalls int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		blocks: make(map[string]*types.Block),
		txns:   make(map[string][]*types.Transaction),
		hold:   make(map[string]chan struct{}),
	}
}

func (s *fakeSource) addBlock(hash string, height uint64, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blocks[hash] = &types.Block{Hash: hash, Height: height, TransactionCount: n}
	txns := make([]*types.Transaction, 0, n)
	for i := 0; i < n; i++ {
		txns = append(txns, &types.Transaction{
			Type: types.PaymentV1,
			Hash: fmt.Sprintf("%s-%d", hash, i),
			Fee:  35000,
		})
	}
	s.txns[hash] = txns
}

// holdFeed makes every later Take on hash block until release is called.
func (s *fakeSource) holdFeed(hash string) (release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan struct{})
	s.hold[hash] = ch
	return func() {
		s.mu.Lock()
		delete(s.hold, hash)
		s.mu.Unlock()
		close(ch)
	}
}

func (s *fakeSource) setErrors(blockErr, takeErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blockErr, s.takeErr = blockErr, takeErr
}

func (s *fakeSource) GetBlock(_ context.Context, hash string) (*types.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.getCalls++
	if s.blockErr != nil {
		return nil, s.blockErr
	}
	block, ok := s.blocks[hash]
	if !ok {
		return nil, errors.Errorf("block %s not found", hash)
	}
	return block, nil
}

func (s *fakeSource) GetBlockByHeight(_ context.Context, height uint64) (*types.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, block := range s.blocks {
		if block.Height == height {
			return block, nil
		}
	}
	return nil, errors.Errorf("no block at height %d", height)
}

func (s *fakeSource) OpenTransactionFeed(_ context.Context, hash string) (types.TransactionFeed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txns, ok := s.txns[hash]
	if !ok {
		return nil, errors.Errorf("block %s not found", hash)
	}
	return &fakeFeed{src: s, hash: hash, txns: txns}, nil
}

type fakeFeed struct {
	src  *fakeSource
	hash string
	txns []*types.Transaction
	pos  int
}

func (f *fakeFeed) Take(ctx context.Context, n int) ([]*types.Transaction, error) {
	f.src.mu.Lock()
	hold := f.src.hold[f.hash]
	takeErr := f.src.takeErr
	f.src.mu.Unlock()

	if hold != nil {
		select {
		case <-hold:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if takeErr != nil {
		return nil, takeErr
	}

	end := f.pos + n
	if end > len(f.txns) {
		end = len(f.txns)
	}
	page := f.txns[f.pos:end]
	f.pos = end
	return page, nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not reached in time")
		}
		time.Sleep(time.Millisecond)
	}
}

func hashes(txns []*types.Transaction) []string {
	res := make([]string, 0, len(txns))
	for _, tx := range txns {
		res = append(res, tx.Hash)
	}
	return res
}
