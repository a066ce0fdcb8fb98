package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"helium-explorer/config"
	"helium-explorer/log"
	"helium-explorer/net"
	"helium-explorer/render"
	"helium-explorer/types"
	"helium-explorer/view"
)

var (
	configPath string
	apiURL     string
	pageSize   int
	logLevel   string
	hashWidth  int
	loadAll    bool
	asJSON     bool
)

var rootCmd = &cobra.Command{
	Use:   "explorer",
	Short: "Browse Helium blocks and their transactions from the terminal",
}

var blockCmd = &cobra.Command{
	Use:   "block <hash|height>",
	Short: "Show a block and page through its transactions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		v := view.New(net.New(&cfg.Net), cfg.View.PageSize)

		s := &session{
			view: v,
			in:   bufio.NewScanner(cmd.InOrStdin()),
			out:  cmd.OutOrStdout(),
		}
		if err := s.open(cmd.Context(), args[0]); err != nil {
			return err
		}
		if loadAll {
			return s.drain(cmd.Context())
		}
		return s.interact(cmd.Context())
	},
}

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Print the current chain height",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		height, err := net.New(&cfg.Net).GetNowHeight(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), height)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path of a toml config file")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Helium API base url")
	rootCmd.PersistentFlags().IntVar(&pageSize, "page-size", 0, "transactions per page")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level")

	blockCmd.Flags().IntVar(&hashWidth, "hash-width", 0, "abbreviate transaction hashes to this many leading/trailing chars")
	blockCmd.Flags().BoolVar(&loadAll, "all", false, "load every page without prompting")
	blockCmd.Flags().BoolVar(&asJSON, "json", false, "print the view state as json")

	rootCmd.AddCommand(blockCmd, latestCmd)
}

func loadConfig() *config.Config {
	cfg := config.Default()
	if configPath != "" {
		cfg = config.LoadConfig(configPath)
	}
	if apiURL != "" {
		cfg.Net.ApiURL = apiURL
	}
	if pageSize > 0 {
		cfg.View.PageSize = pageSize
	}
	cfg.Log.Path = ""
	cfg.Log.Level = logLevel

	log.Init(&cfg.Log)
	return cfg
}

type jsonState struct {
	Block        *types.Block         `json:"block"`
	Transactions []*types.Transaction `json:"transactions"`
	HasMore      bool                 `json:"has_more"`
	Error        string               `json:"error,omitempty"`
}

type session struct {
	view *view.View
	in   *bufio.Scanner
	out  io.Writer
}

// open navigates to arg, read as a height when it is all digits.
func (s *session) open(ctx context.Context, arg string) error {
	var err error
	if height, parseErr := strconv.ParseUint(arg, 10, 64); parseErr == nil {
		err = s.view.LoadHeight(ctx, height)
	} else {
		err = s.view.Navigate(ctx, arg)
	}
	s.print()
	return err
}

func (s *session) drain(ctx context.Context) error {
	for s.view.State().CanLoadMore() {
		if err := s.view.LoadMore(ctx); err != nil {
			s.print()
			return err
		}
	}
	s.print()
	return nil
}

func (s *session) interact(ctx context.Context) error {
	for {
		prompt := "<hash|height> to open, q to quit: "
		if s.view.State().CanLoadMore() {
			prompt = "m for more, " + prompt
		}
		fmt.Fprint(s.out, prompt)

		if !s.in.Scan() {
			return s.in.Err()
		}
		input := strings.TrimSpace(s.in.Text())

		switch input {
		case "":
			continue
		case "q", "quit", "exit":
			return nil
		case "m", "more":
			err := s.view.LoadMore(ctx)
			if errors.Is(err, view.ErrExhausted) {
				fmt.Fprintln(s.out, "No more transactions")
				continue
			}
			s.print()
		default:
			if err := s.open(ctx, input); err != nil {
				fmt.Fprintf(s.out, "Error: %v\n", err)
			}
		}
	}
}

func (s *session) print() {
	state := s.view.State()
	if asJSON {
		out := jsonState{
			Block:        state.Block,
			Transactions: state.Transactions,
			HasMore:      state.HasMore,
		}
		if state.Err != nil {
			out.Error = state.Err.Error()
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err == nil {
			fmt.Fprintln(s.out, string(data))
			return
		}
	}

	page, err := render.Page(state, render.Text, hashWidth)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprint(s.out, page)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
