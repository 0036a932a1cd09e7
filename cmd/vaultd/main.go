package main

import (
	"fmt"
	"os"
)

func main() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(requestCmd)
	rootCmd.AddCommand(approveCmd)
	rootCmd.AddCommand(revokeCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(executeCmd)
	rootCmd.AddCommand(depositCmd)
	rootCmd.AddCommand(paymentCmd)
	rootCmd.AddCommand(queryCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
