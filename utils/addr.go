package utils

import (
	"github.com/btcsuite/btcd/btcutil/base58"
)

const (
	heliumAddressVersion = 0x00
	ed25519KeyType       = 0x01
	ed25519KeySize       = 32
)

// IsHeliumAddress checks the base58check encoding used for Helium accounts
// and hotspots: version 0, one key type byte, then the public key.
func IsHeliumAddress(addr string) bool {
	payload, version, err := base58.CheckDecode(addr)
	if err != nil || version != heliumAddressVersion {
		return false
	}
	return len(payload) == ed25519KeySize+1 && payload[0] == ed25519KeyType
}

// ShortAddress abbreviates valid addresses and returns anything else as is.
func ShortAddress(addr string) string {
	if !IsHeliumAddress(addr) || len(addr) <= 16 {
		return addr
	}
	return addr[:8] + "..." + addr[len(addr)-6:]
}
