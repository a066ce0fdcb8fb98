package net

import (
	"context"

	"github.com/pkg/errors"
	"helium-explorer/types"
)

// TransactionFeed walks the cursor-paginated transaction list of one block.
// Upstream pages have their own size, so fetched items are buffered until a
// caller takes them.
type TransactionFeed struct {
	client *Client
	hash   string

	buffer []*types.Transaction
	cursor string
	done   bool
}

// OpenTransactionFeed fetches the first upstream page, so an unknown block
// fails here rather than on the first Take.
func (c *Client) OpenTransactionFeed(ctx context.Context, hash string) (types.TransactionFeed, error) {
	feed := &TransactionFeed{client: c, hash: hash}
	if err := feed.fetch(ctx); err != nil {
		return nil, errors.Wrapf(err, "open transaction feed of %s", hash)
	}
	return feed, nil
}

func (f *TransactionFeed) Take(ctx context.Context, n int) ([]*types.Transaction, error) {
	for len(f.buffer) < n && !f.done {
		if err := f.fetch(ctx); err != nil {
			return nil, errors.Wrapf(err, "take %d transactions of %s", n, f.hash)
		}
	}

	if n > len(f.buffer) {
		n = len(f.buffer)
	}
	page := make([]*types.Transaction, n)
	copy(page, f.buffer[:n])
	f.buffer = f.buffer[n:]
	return page, nil
}

func (f *TransactionFeed) fetch(ctx context.Context) error {
	resp, err := f.client.getTransactions(ctx, f.hash, f.cursor)
	if err != nil {
		return err
	}

	// An empty page that hands back the same cursor would loop forever.
	stalled := len(resp.Data) == 0 && resp.Cursor == f.cursor
	f.buffer = append(f.buffer, resp.Data...)
	f.cursor = resp.Cursor
	f.done = resp.Cursor == "" || stalled
	return nil
}
