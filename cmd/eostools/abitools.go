package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/anyswap/eosio-client/abi"
	"github.com/anyswap/eosio-client/cmd/utils"
)

var (
	abiFileFlag = &cli.StringFlag{
		Name:  "file",
		Usage: "input file path",
	}

	packABICommand = &cli.Command{
		Action:    packABI,
		Name:      "packabi",
		Usage:     "pack an ABI JSON document to its binary form",
		ArgsUsage: " ",
		Description: `
Read an ABI JSON file and print the hex of its abi_def binary form,
the shape set_abi and get_raw_abi carry.
`,
		Flags: []cli.Flag{abiFileFlag},
	}
	unpackABICommand = &cli.Command{
		Action:    unpackABI,
		Name:      "unpackabi",
		Usage:     "unpack a binary abi_def to JSON",
		ArgsUsage: "[hex]",
		Description: `
Read the abi_def binary form from a hex argument or --file and print
the ABI JSON document.
`,
		Flags: []cli.Flag{abiFileFlag},
	}
)

func packABI(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	data, err := ioutil.ReadFile(ctx.String(abiFileFlag.Name))
	if err != nil {
		return err
	}
	doc, err := abi.ParseJSON(data)
	if err != nil {
		return err
	}
	packed, err := abi.EncodeABI(doc)
	if err != nil {
		return err
	}
	fmt.Println(hex.EncodeToString(packed))
	return nil
}

func unpackABI(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	var input string
	if ctx.NArg() > 0 {
		input = ctx.Args().Get(0)
	} else {
		data, err := ioutil.ReadFile(ctx.String(abiFileFlag.Name))
		if err != nil {
			return err
		}
		input = strings.TrimSpace(string(data))
	}
	packed, err := hex.DecodeString(input)
	if err != nil {
		return err
	}
	doc, err := abi.DecodeABI(packed)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
