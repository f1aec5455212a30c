// Copyright 2022-2026 The Starkstore Authors
// This file is part of the Starkstore Node library.
//
// The Starkstore Node library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The Starkstore Node library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the Starkstore Node library. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/starkstore/node/params"
)

const banner = `
 ███████╗████████╗ █████╗ ██████╗ ██╗  ██╗███████╗████████╗ ██████╗ ██████╗ ███████╗
 ██╔════╝╚══██╔══╝██╔══██╗██╔══██╗██║ ██╔╝██╔════╝╚══██╔══╝██╔═══██╗██╔══██╗██╔════╝
 ███████╗   ██║   ███████║██████╔╝█████╔╝ ███████╗   ██║   ██║   ██║██████╔╝█████╗
 ╚════██║   ██║   ██╔══██║██╔══██╗██╔═██╗ ╚════██║   ██║   ██║   ██║██╔══██╗██╔══╝
 ███████║   ██║   ██║  ██║██║  ██║██║  ██╗███████║   ██║   ╚██████╔╝██║  ██║███████╗
 ╚══════╝   ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝   ╚═╝    ╚═════╝ ╚═╝  ╚═╝╚══════╝
`

const usageText = `node [options] [command]

Quick start:
  node run                        open the storage environment and serve metrics
  node run --data.dir /data/node  use a specific data directory
  node run --metrics.addr :9090   change the metrics listen address

Inspection (read-only, safe alongside a running node):
  node inspect markers            print every stream's next-expected block number
  node inspect block <n>          print header/body/state-diff presence for block n

Detailed help:
  node --help                     show every flag
  node inspect --help             inspection subcommands`

func main() {
	fmt.Print(banner)

	app := &cli.App{
		Name:                   "node",
		Usage:                  "Starknet block/state storage node",
		UsageText:              usageText,
		Version:                params.VersionWithCommit(params.GitCommit, ""),
		Flags:                  rootFlags,
		Commands:               []*cli.Command{runCommand, inspectCommand},
		UseShortOptionHandling: true,
		Suggest:                true,
		EnableBashCompletion:   true,
		Copyright:              "Copyright 2022-2026 The Starkstore Authors",
	}

	cli.AppHelpTemplate = `{{.Name}} - {{.Usage}}

Version: {{.Version}}

{{.UsageText}}

Options:
{{range .VisibleFlags}}  {{.}}
{{end}}
Commands:{{range .VisibleCommands}}
  {{.Name}}{{"\t"}}{{.Usage}}{{end}}

{{.Copyright}}
`

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
