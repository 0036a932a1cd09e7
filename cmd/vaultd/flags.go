package main

import "github.com/spf13/cobra"

func urlFlag(cmd *cobra.Command, url *string) {
	cmd.Flags().StringVarP(url, "url", "u", "http://127.0.0.1:26659", "vaultd service url")
}

func keyFlag(cmd *cobra.Command, path *string) {
	cmd.Flags().StringVarP(path, "skeyPath", "s", "./config/node_key", "private key path")
}

func nonceFlag(cmd *cobra.Command, nonce *uint64) {
	cmd.Flags().Uint64VarP(nonce, "nonce", "n", 0, "account nonce, fetched from the service when 0")
}
