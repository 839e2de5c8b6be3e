package eos

import (
	"github.com/anyswap/eosio-client/chain"
	"github.com/anyswap/eosio-client/client"
)

// IsValidAddress checks account name syntax: 1 to 12 characters from
// the name alphabet, with no 13th-position extension.
func (b *Bridge) IsValidAddress(address string) bool {
	if len(address) == 0 || len(address) > 12 {
		return false
	}
	n, err := chain.NewName(address)
	if err != nil {
		return false
	}
	// trailing dots change nothing on chain but make two spellings of
	// the same account, reject them
	return n.String() == address
}

// EqualAddress compares two account names by their packed value.
func (b *Bridge) EqualAddress(addr1, addr2 string) bool {
	n1, err1 := chain.NewName(addr1)
	n2, err2 := chain.NewName(addr2)
	return err1 == nil && err2 == nil && n1 == n2
}

// AccountExists probes get_account on the gateways.
func (b *Bridge) AccountExists(account chain.Name) (bool, error) {
	err := b.forEachClient(func(c *client.Client) error {
		_, err := c.GetAccount(account)
		return err
	})
	if err != nil {
		if client.IsAPIErrorName(err, "account_query_exception") || client.IsAPIErrorName(err, "name_query_exception") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
