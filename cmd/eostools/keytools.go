package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/anyswap/eosio-client/cmd/utils"
	"github.com/anyswap/eosio-client/crypto"
)

var (
	keygenCommand = &cli.Command{
		Action:    keygen,
		Name:      "keygen",
		Usage:     "generate a new key pair",
		ArgsUsage: " ",
		Description: `
Generate a random K1 key pair and print the private key in WIF and
PVT_K1 form and the public key in legacy and PUB_K1 form.
`,
	}
	keyinfoCommand = &cli.Command{
		Action:    keyinfo,
		Name:      "keyinfo",
		Usage:     "print information of a key",
		ArgsUsage: "<key>",
		Description: `
Accepts a private key (WIF or PVT_ form) or a public key (legacy EOS
or PUB_ form) and prints its other textual encodings.
`,
	}
)

func keygen(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	key, err := crypto.NewRandomPrivateKey()
	if err != nil {
		return err
	}
	return printPrivateKey(key)
}

func keyinfo(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	if ctx.NArg() != 1 {
		return fmt.Errorf("miss key argument")
	}
	arg := ctx.Args().Get(0)
	if key, err := crypto.NewPrivateKey(arg); err == nil {
		return printPrivateKey(key)
	}
	pub, err := crypto.NewPublicKey(arg)
	if err != nil {
		return fmt.Errorf("neither a private nor a public key: %v", arg)
	}
	return printPublicKey(pub)
}

func printPrivateKey(key crypto.PrivateKey) error {
	fmt.Println("Private key (WIF):   ", key.String())
	fmt.Println("Private key (PVT_):  ", key.StringTyped())
	pub, err := key.PublicKey()
	if err != nil {
		return err
	}
	return printPublicKey(pub)
}

func printPublicKey(pub crypto.PublicKey) error {
	fmt.Println("Public key (legacy): ", pub.String())
	fmt.Println("Public key (PUB_):   ", pub.StringTyped())
	return nil
}
