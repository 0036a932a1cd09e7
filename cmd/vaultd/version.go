package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// GitCommit is set through ldflags at build time.
var GitCommit string

const (
	VersionMajor = 0
	VersionMinor = 1
	VersionPatch = 0
)

func version() string {
	vsn := fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
	if len(GitCommit) >= 8 {
		vsn += "-" + GitCommit[:8]
	}
	return vsn
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the vaultd version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version())
	},
}
