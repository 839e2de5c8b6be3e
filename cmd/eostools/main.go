package main

import (
	"os"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/anyswap/eosio-client/cmd/utils"
	"github.com/anyswap/eosio-client/log"
)

var (
	clientIdentifier = "eostools"
	// Git SHA1 commit hash of the release (set via linker flags)
	gitCommit = ""
	gitDate   = ""
	// The app that holds all commands and flags.
	app = utils.NewApp(clientIdentifier, gitCommit, gitDate, "the eosio client command line tools")
)

func initApp() {
	app.HideVersion = true // we have a command to print the version
	app.Commands = []*cli.Command{
		keygenCommand,
		keyinfoCommand,
		signTxCommand,
		sendTxCommand,
		packABICommand,
		unpackABICommand,
		utils.VersionCommand,
	}
	app.Flags = []cli.Flag{
		utils.VerbosityFlag,
		utils.JSONFormatFlag,
		utils.ColorFormatFlag,
	}
	sort.Sort(cli.CommandsByName(app.Commands))
}

func main() {
	initApp()
	if err := app.Run(os.Args); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}
