package view

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"helium-explorer/metrics"
	"helium-explorer/types"
)

var (
	ErrEmptyHash    = errors.New("block hash is empty")
	ErrNotReady     = errors.New("block is not loaded yet")
	ErrPageInFlight = errors.New("a page of transactions is already loading")
	ErrExhausted    = errors.New("all transactions are loaded")
)

// Source is the remote side of a view: the Helium API client in production.
type Source interface {
	GetBlock(ctx context.Context, hash string) (*types.Block, error)
	GetBlockByHeight(ctx context.Context, height uint64) (*types.Block, error)
	OpenTransactionFeed(ctx context.Context, hash string) (types.TransactionFeed, error)
}

// View holds the detail state of one block and the cursor over its
// transactions. All state changes go through Reduce.
type View struct {
	source   Source
	pageSize int

	mu    sync.Mutex
	state State
	feed  types.TransactionFeed

	logger *zap.SugaredLogger
}

func New(source Source, pageSize int) *View {
	return &View{
		source:   source,
		pageSize: pageSize,
		logger:   zap.S().Named("[view]"),
	}
}

func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *View) PageSize() int {
	return v.pageSize
}

// dispatch must be called with mu held.
func (v *View) dispatch(action Action) {
	v.state = Reduce(v.state, action)
}

// Navigate loads hash unless it is already displayed. A hash whose block
// failed to load is loaded again.
func (v *View) Navigate(ctx context.Context, hash string) error {
	v.mu.Lock()
	current := v.state.Hash == hash && (v.state.Block != nil || v.state.Err == nil)
	v.mu.Unlock()

	if current {
		return nil
	}
	return v.Load(ctx, hash)
}

// Load resets the view to hash, fetches the block and opens its transaction
// feed concurrently, then loads the first page.
func (v *View) Load(ctx context.Context, hash string) error {
	if hash == "" {
		return ErrEmptyHash
	}

	v.mu.Lock()
	epoch := v.state.Epoch + 1
	v.dispatch(Reset{Epoch: epoch, Hash: hash})
	v.feed = nil
	v.mu.Unlock()

	var (
		block *types.Block
		feed  types.TransactionFeed
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		block, err = v.source.GetBlock(gctx, hash)
		return errors.Wrapf(err, "get block %s", hash)
	})
	g.Go(func() error {
		var err error
		feed, err = v.source.OpenTransactionFeed(gctx, hash)
		return err
	})
	if err := g.Wait(); err != nil {
		v.fail(epoch, "load", err)
		return err
	}

	v.mu.Lock()
	if v.state.Epoch != epoch {
		v.mu.Unlock()
		v.logger.Debugf("Dropped block [%s], view moved on", hash)
		return nil
	}
	v.dispatch(BlockLoaded{Epoch: epoch, Block: block})
	v.feed = feed
	v.mu.Unlock()

	v.logger.Debugf("Loaded block [%s] at height [%d]", hash, block.Height)
	return v.loadPage(ctx, epoch)
}

// LoadHeight resolves height to a block hash and loads it.
func (v *View) LoadHeight(ctx context.Context, height uint64) error {
	block, err := v.source.GetBlockByHeight(ctx, height)
	if err != nil {
		metrics.ViewFailed("height")
		return errors.Wrapf(err, "get block at height %d", height)
	}
	return v.Navigate(ctx, block.Hash)
}

// LoadMore appends the next page of transactions.
func (v *View) LoadMore(ctx context.Context) error {
	v.mu.Lock()
	epoch := v.state.Epoch
	v.mu.Unlock()

	return v.loadPage(ctx, epoch)
}

func (v *View) loadPage(ctx context.Context, epoch uint64) error {
	v.mu.Lock()
	if v.state.Epoch != epoch {
		v.mu.Unlock()
		return nil
	}
	switch {
	case v.feed == nil || v.state.Block == nil:
		v.mu.Unlock()
		return ErrNotReady
	case v.state.PageLoading:
		v.mu.Unlock()
		return ErrPageInFlight
	case !v.state.HasMore:
		v.mu.Unlock()
		return ErrExhausted
	}
	v.dispatch(PageRequested{Epoch: epoch})
	feed := v.feed
	v.mu.Unlock()

	txns, err := feed.Take(ctx, v.pageSize)
	if err != nil {
		v.fail(epoch, "page", err)
		return err
	}

	v.mu.Lock()
	v.dispatch(PageLoaded{Epoch: epoch, Transactions: txns, PageSize: v.pageSize})
	total, hasMore := len(v.state.Transactions), v.state.HasMore
	v.mu.Unlock()

	metrics.PageLoaded()
	v.logger.Debugf("Appended [%d] transactions, total [%d], has more [%t]", len(txns), total, hasMore)
	return nil
}

func (v *View) fail(epoch uint64, op string, err error) {
	v.mu.Lock()
	v.dispatch(Failed{Epoch: epoch, Err: err})
	v.mu.Unlock()

	metrics.ViewFailed(op)
	v.logger.Warnf("Block view %s failed: %v", op, err)
}
