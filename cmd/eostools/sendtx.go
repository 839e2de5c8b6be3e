package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/urfave/cli/v2"

	"github.com/anyswap/eosio-client/chain"
	"github.com/anyswap/eosio-client/cmd/utils"
)

var (
	signedTxFileFlag = &cli.StringFlag{
		Name:  "txfile",
		Usage: "signed transaction JSON file",
	}
	zlibFlag = &cli.BoolFlag{
		Name:  "zlib",
		Usage: "compress the packed transaction with zlib",
	}

	sendTxCommand = &cli.Command{
		Action:    sendTx,
		Name:      "sendtx",
		Usage:     "push a signed transaction",
		ArgsUsage: " ",
		Description: `
Pack a signed transaction JSON file and push it to the configured
gateways, printing the transaction id the node reports.
`,
		Flags: []cli.Flag{
			utils.ConfigFileFlag,
			signedTxFileFlag,
			zlibFlag,
		},
	}
)

func sendTx(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	b, err := newBridge(ctx)
	if err != nil {
		return err
	}
	data, err := ioutil.ReadFile(ctx.String(signedTxFileFlag.Name))
	if err != nil {
		return err
	}
	stx := chain.NewSignedTransaction(new(chain.Transaction))
	if err := json.Unmarshal(data, stx); err != nil {
		return err
	}
	compression := chain.CompressionNone
	if ctx.Bool(zlibFlag.Name) {
		compression = chain.CompressionZlib
	}
	txid, err := b.SendTransaction(stx, compression)
	if err != nil {
		return err
	}
	fmt.Println("transaction id:", txid)
	return nil
}
