// Command justmint mints one of one NFTs on solana with assets stored
// on arweave through a bundlr node.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/justmint/JustMint/cmd/utils"
	"github.com/justmint/JustMint/log"
	"github.com/urfave/cli/v2"
)

var (
	clientIdentifier = "justmint"
	// Git SHA1 commit hash of the release (set via linker flags)
	gitCommit = ""
	gitDate   = ""
	// The app that holds all commands and flags.
	app = utils.NewApp(clientIdentifier, gitCommit, gitDate, "the justmint command line interface")
)

func initApp() {
	// Initialize the CLI app and start action
	app.Action = mintAction
	app.HideVersion = true // we have a command to print the version
	app.Commands = []*cli.Command{
		estimateCommand,
		fundCommand,
		uploadCommand,
		signerCommand,
		balanceCommand,
		airdropCommand,
		toolsCommand,
		utils.VersionCommand,
	}
	app.Flags = []cli.Flag{
		utils.DataDirFlag,
		utils.ConfigFileFlag,
		utils.LogFileFlag,
		utils.LogRotationFlag,
		utils.LogMaxAgeFlag,
		utils.VerbosityFlag,
		utils.JSONFormatFlag,
		utils.ColorFormatFlag,
	}
	app.Flags = append(app.Flags, mintFlags...)
}

func main() {
	// optional .env file may carry the config path and data dir
	_ = godotenv.Load()
	initApp()
	if err := app.Run(os.Args); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
