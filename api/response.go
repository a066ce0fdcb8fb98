package api

import (
	"net/http"

	"github.com/pkg/errors"
	"helium-explorer/net"
	"helium-explorer/types"
	"helium-explorer/view"
)

type blockViewResponse struct {
	Hash         string               `json:"hash"`
	Phase        string               `json:"phase"`
	Loading      bool                 `json:"loading"`
	PageLoading  bool                 `json:"page_loading"`
	HasMore      bool                 `json:"has_more"`
	CanLoadMore  bool                 `json:"can_load_more"`
	Block        *types.Block         `json:"block"`
	Transactions []*types.Transaction `json:"transactions"`
	Error        string               `json:"error,omitempty"`
}

func newBlockViewResponse(state view.State) *blockViewResponse {
	resp := &blockViewResponse{
		Hash:         state.Hash,
		Phase:        state.Phase().String(),
		Loading:      state.Loading,
		PageLoading:  state.PageLoading,
		HasMore:      state.HasMore,
		CanLoadMore:  state.CanLoadMore(),
		Block:        state.Block,
		Transactions: state.Transactions,
	}
	if resp.Transactions == nil {
		resp.Transactions = []*types.Transaction{}
	}
	if state.Err != nil {
		resp.Error = state.Err.Error()
	}
	return resp
}

func statusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, view.ErrEmptyHash):
		return http.StatusBadRequest
	case errors.Is(err, net.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, view.ErrNotReady),
		errors.Is(err, view.ErrPageInFlight),
		errors.Is(err, view.ErrExhausted):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}
