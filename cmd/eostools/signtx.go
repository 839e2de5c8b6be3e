package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/urfave/cli/v2"

	"github.com/anyswap/eosio-client/chain"
	"github.com/anyswap/eosio-client/cmd/utils"
	"github.com/anyswap/eosio-client/common"
	"github.com/anyswap/eosio-client/eos"
	"github.com/anyswap/eosio-client/params"
)

var (
	txFileFlag = &cli.StringFlag{
		Name:  "txfile",
		Usage: "transaction JSON file (built when absent)",
	}
	wifFlag = &cli.StringFlag{
		Name:  "wif",
		Usage: "private key in WIF or PVT_ form",
	}
	senderFlag = &cli.StringFlag{
		Name:  "from",
		Usage: "from account",
	}
	receiverFlag = &cli.StringFlag{
		Name:  "to",
		Usage: "to account",
	}
	quantityFlag = &cli.StringFlag{
		Name:  "quantity",
		Usage: "asset quantity, eg. '1.0000 EOS'",
	}
	memoFlag = &cli.StringFlag{
		Name:  "memo",
		Usage: "transfer memo",
	}

	signTxCommand = &cli.Command{
		Action:    signTx,
		Name:      "signtx",
		Usage:     "build and sign a transaction",
		ArgsUsage: " ",
		Description: `
Sign a transaction from --txfile, or build a token transfer from the
--from/--to/--quantity flags first, then sign it with --wif and print
the signed transaction JSON.
`,
		Flags: []cli.Flag{
			utils.ConfigFileFlag,
			txFileFlag,
			wifFlag,
			senderFlag,
			receiverFlag,
			quantityFlag,
			memoFlag,
		},
	}
)

// newBridge builds the chain bridge from the loaded toml config.
func newBridge(ctx *cli.Context) (*eos.Bridge, error) {
	config := params.LoadConfig(utils.GetConfigFilePath(ctx))
	chainID, err := common.HexToHash(config.Chain.ChainID)
	if err != nil {
		return nil, err
	}
	tokenContract, err := chain.NewName(config.Chain.TokenContract)
	if err != nil {
		return nil, err
	}
	return eos.NewBridge(
		&eos.ChainConfig{
			ChainID:       chainID,
			TokenContract: tokenContract,
			ExpirySeconds: config.Chain.Expiry,
		},
		&eos.GatewayConfig{APIAddress: config.Gateway.APIAddress},
	), nil
}

func loadTransaction(ctx *cli.Context, b *eos.Bridge) (*chain.Transaction, error) {
	if txFile := ctx.String(txFileFlag.Name); txFile != "" {
		data, err := ioutil.ReadFile(txFile)
		if err != nil {
			return nil, err
		}
		tx := new(chain.Transaction)
		if err := json.Unmarshal(data, tx); err != nil {
			return nil, err
		}
		return tx, nil
	}
	from, err := chain.NewName(ctx.String(senderFlag.Name))
	if err != nil {
		return nil, fmt.Errorf("wrong from account: %w", err)
	}
	to, err := chain.NewName(ctx.String(receiverFlag.Name))
	if err != nil {
		return nil, fmt.Errorf("wrong to account: %w", err)
	}
	quantity, err := chain.ParseAsset(ctx.String(quantityFlag.Name))
	if err != nil {
		return nil, fmt.Errorf("wrong quantity: %w", err)
	}
	return b.BuildTransfer(from, to, quantity, ctx.String(memoFlag.Name))
}

func signTx(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	b, err := newBridge(ctx)
	if err != nil {
		return err
	}
	tx, err := loadTransaction(ctx, b)
	if err != nil {
		return err
	}
	stx, err := b.SignTransactionWithPrivateKey(tx, ctx.String(wifFlag.Name))
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(stx, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
