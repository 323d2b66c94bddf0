package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
)

// app version constants
const (
	VersionMajor = 1 // Major version component of the current release
	VersionMinor = 0 // Minor version component of the current release
	VersionPatch = 0 // Patch version component of the current release
)

// Version holds the textual version string.
var Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)

// NewApp creates an app with sane defaults.
func NewApp(identifier, gitCommit, gitDate, usage string) *cli.App {
	app := cli.NewApp()
	app.Name = filepath.Base(os.Args[0])
	app.Version = Version
	if identifier != "" {
		app.Version += "-" + identifier
	}
	if gitCommit != "" && len(gitCommit) >= 8 {
		app.Version += "-" + gitCommit[:8]
	}
	if gitDate != "" {
		app.Version += "-" + gitDate
	}
	app.Usage = usage
	return app
}

// VersionCommand version subcommand
var VersionCommand = &cli.Command{
	Action:    version,
	Name:      "version",
	Usage:     "print version numbers",
	ArgsUsage: " ",
	Description: `
The output of this command is supposed to be machine-readable.
`,
}

func version(ctx *cli.Context) error {
	fmt.Println(ctx.App.Name)
	fmt.Println("Version:", ctx.App.Version)
	return nil
}
