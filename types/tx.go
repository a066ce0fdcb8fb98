package types

import "context"

type TxnType string

const (
	AddGatewayV1           TxnType = "add_gateway_v1"
	AssertLocationV1       TxnType = "assert_location_v1"
	AssertLocationV2       TxnType = "assert_location_v2"
	ChainVarsV1            TxnType = "vars_v1"
	CoinbaseV1             TxnType = "coinbase_v1"
	ConsensusGroupV1       TxnType = "consensus_group_v1"
	ConsensusGroupFailV1   TxnType = "consensus_group_failure_v1"
	CreateHTLCV1           TxnType = "create_htlc_v1"
	DCCoinbaseV1           TxnType = "dc_coinbase_v1"
	GenGatewayV1           TxnType = "gen_gateway_v1"
	OUIV1                  TxnType = "oui_v1"
	PaymentV1              TxnType = "payment_v1"
	PaymentV2              TxnType = "payment_v2"
	PocReceiptsV1          TxnType = "poc_receipts_v1"
	PocRequestV1           TxnType = "poc_request_v1"
	PriceOracleV1          TxnType = "price_oracle_v1"
	RedeemHTLCV1           TxnType = "redeem_htlc_v1"
	RewardsV1              TxnType = "rewards_v1"
	RewardsV2              TxnType = "rewards_v2"
	RoutingV1              TxnType = "routing_v1"
	SecurityCoinbaseV1     TxnType = "security_coinbase_v1"
	SecurityExchangeV1     TxnType = "security_exchange_v1"
	StakeValidatorV1       TxnType = "stake_validator_v1"
	StateChannelCloseV1    TxnType = "state_channel_close_v1"
	StateChannelOpenV1     TxnType = "state_channel_open_v1"
	TokenBurnV1            TxnType = "token_burn_v1"
	TransferHotspotV1      TxnType = "transfer_hotspot_v1"
	TransferHotspotV2      TxnType = "transfer_hotspot_v2"
	TransferValidatorV1    TxnType = "transfer_validator_stake_v1"
	UnstakeValidatorV1     TxnType = "unstake_validator_v1"
	ValidatorHeartbeatV1   TxnType = "validator_heartbeat_v1"
	UpdateGatewayOUIV1     TxnType = "update_gateway_oui_v1"
	TokenBurnExchangeRateV TxnType = "token_burn_exchange_rate_v1"
)

// Label is the short human name shown in the type column. Unknown tags fall
// back to the raw type string.
func (t TxnType) Label() string {
	switch t {
	case AddGatewayV1:
		return "Add Hotspot"
	case AssertLocationV1, AssertLocationV2:
		return "Assert Location"
	case ChainVarsV1:
		return "Chain Vars"
	case CoinbaseV1:
		return "Coinbase"
	case ConsensusGroupV1:
		return "Consensus Election"
	case ConsensusGroupFailV1:
		return "Consensus Failure"
	case CreateHTLCV1:
		return "Create HTLC"
	case DCCoinbaseV1:
		return "DC Coinbase"
	case GenGatewayV1:
		return "Genesis Hotspot"
	case OUIV1:
		return "OUI"
	case PaymentV1, PaymentV2:
		return "Payment"
	case PocReceiptsV1:
		return "PoC Receipt"
	case PocRequestV1:
		return "PoC Request"
	case PriceOracleV1:
		return "Oracle Price"
	case RedeemHTLCV1:
		return "Redeem HTLC"
	case RewardsV1, RewardsV2:
		return "Mining Rewards"
	case RoutingV1:
		return "Routing"
	case SecurityCoinbaseV1:
		return "Security Coinbase"
	case SecurityExchangeV1:
		return "Security Exchange"
	case StakeValidatorV1:
		return "Stake Validator"
	case StateChannelCloseV1:
		return "Packets Transferred"
	case StateChannelOpenV1:
		return "State Channel Open"
	case TokenBurnV1:
		return "Token Burn"
	case TransferHotspotV1, TransferHotspotV2:
		return "Transfer Hotspot"
	case TransferValidatorV1:
		return "Transfer Stake"
	case UnstakeValidatorV1:
		return "Unstake Validator"
	case ValidatorHeartbeatV1:
		return "Validator Heartbeat"
	case UpdateGatewayOUIV1:
		return "Update Hotspot OUI"
	case TokenBurnExchangeRateV:
		return "Burn Exchange Rate"
	default:
		return string(t)
	}
}

func (t TxnType) IsPayment() bool {
	return t == PaymentV1 || t == PaymentV2
}

func (t TxnType) IsPoc() bool {
	return t == PocRequestV1 || t == PocReceiptsV1
}

type Payment struct {
	Payee  string `json:"payee"`
	Amount uint64 `json:"amount"`
}

type Transaction struct {
	Type   TxnType `json:"type"`
	Hash   string  `json:"hash"`
	Height uint64  `json:"height"`
	Time   int64   `json:"time"`
	Fee    uint64  `json:"fee"`

	Amount     uint64    `json:"amount,omitempty"`
	Payer      string    `json:"payer,omitempty"`
	Payee      string    `json:"payee,omitempty"`
	Payments   []Payment `json:"payments,omitempty"`
	Challenger string    `json:"challenger,omitempty"`
	Gateway    string    `json:"gateway,omitempty"`
}

// TotalAmount sums the moved amount in bones for both payment versions.
func (tx *Transaction) TotalAmount() uint64 {
	if tx.Type == PaymentV2 {
		var total uint64
		for _, p := range tx.Payments {
			total += p.Amount
		}
		return total
	}
	return tx.Amount
}

// TransactionFeed is a stateful handle over the transactions of one block.
// Take returns fewer than n items only when the feed is exhausted.
type TransactionFeed interface {
	Take(ctx context.Context, n int) ([]*Transaction, error)
}
