package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"helium-explorer/common"
	"helium-explorer/types"
	"helium-explorer/utils"
	"helium-explorer/view"
)

type Style int

const (
	Text Style = iota
	Markdown
)

var transactionHeader = []string{"Type", "Hash", "Fee (DC)", "Detail"}

// Card renders the block summary shown above the transaction table.
func Card(state view.State) string {
	var sb strings.Builder

	switch {
	case state.Phase() == view.PhaseInit:
		return "No block selected\n"
	case state.Block == nil && state.Err != nil:
		fmt.Fprintf(&sb, "Block %s\nError: %v\n", state.Hash, state.Err)
		return sb.String()
	case state.Loading, state.Block == nil:
		fmt.Fprintf(&sb, "Block %s\nLoading...\n", state.Hash)
		return sb.String()
	}

	block := state.Block
	fmt.Fprintf(&sb, "Block %s\n", common.FormatHeight(block.Height))
	fmt.Fprintf(&sb, "Hash: %s\n", block.Hash)
	fmt.Fprintf(&sb, "Time: %s\n", common.FormatBlockTime(block.Timestamp()))
	if len(state.Transactions) > 0 {
		fmt.Fprintf(&sb, "%d transactions\n", block.TransactionCount)
	}
	return sb.String()
}

// Detail is the type-specific column: moved amount for payments, the
// challenger for proof-of-coverage transactions.
func Detail(tx *types.Transaction) string {
	switch {
	case tx.Type.IsPayment():
		return common.FormatHNT(tx.TotalAmount())
	case tx.Type.IsPoc() && tx.Challenger != "":
		return "challenger " + utils.ShortAddress(tx.Challenger)
	case tx.Gateway != "":
		return "hotspot " + utils.ShortAddress(tx.Gateway)
	default:
		return ""
	}
}

func rows(txns []*types.Transaction, hashWidth int) [][]string {
	data := make([][]string, 0, len(txns))
	for _, tx := range txns {
		data = append(data, []string{
			tx.Type.Label(),
			common.ShortHash(tx.Hash, hashWidth),
			common.FormatDC(tx.Fee),
			Detail(tx),
		})
	}
	return data
}

func newTable(w io.Writer, style Style) *tablewriter.Table {
	opts := []tablewriter.Option{
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithHeaderAlignment(tw.AlignNone),
		tablewriter.WithRowAlignment(tw.AlignNone),
	}
	if style == Markdown {
		md := renderer.NewMarkdown(
			tw.Rendition{
				Borders: tw.Border{
					Left:   tw.Off,
					Right:  tw.Off,
					Top:    tw.Off,
					Bottom: tw.Off,
				},
			},
		)
		opts = append(opts, tablewriter.WithRenderer(md))
	}
	return tablewriter.NewTable(w, opts...)
}

// Transactions writes the transaction table. hashWidth > 0 abbreviates hashes.
func Transactions(w io.Writer, txns []*types.Transaction, style Style, hashWidth int) error {
	if len(txns) == 0 {
		_, err := io.WriteString(w, "No transactions\n")
		return err
	}

	table := newTable(w, style)
	table.Header(transactionHeader)
	if err := table.Bulk(rows(txns, hashWidth)); err != nil {
		return err
	}
	return table.Render()
}

// Footer tells the viewer what the next action can be.
func Footer(state view.State) string {
	switch {
	case state.Block == nil:
		return ""
	case state.PageLoading:
		return "Loading more transactions...\n"
	case state.Err != nil:
		return fmt.Sprintf("Error: %v\n", state.Err)
	case state.CanLoadMore():
		return fmt.Sprintf("Showing %d transactions, more available\n", len(state.Transactions))
	default:
		return fmt.Sprintf("Showing all %d transactions\n", len(state.Transactions))
	}
}

// Page renders card, table and footer of a view state.
func Page(state view.State, style Style, hashWidth int) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(Card(state))
	if state.Block != nil {
		buf.WriteString("\n")
		if err := Transactions(&buf, state.Transactions, style, hashWidth); err != nil {
			return "", err
		}
		buf.WriteString(Footer(state))
	}
	return buf.String(), nil
}
