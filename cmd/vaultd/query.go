package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type queryArguments struct {
	Url       string
	RequestId uint64
}

var queryArgs queryArguments

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the wallet service",
	Long:  ``,
}

var queryWalletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Show the wallet summary",
	Long:  ``,
	RunE:  queryWalletRun,
}

var queryOwnersCmd = &cobra.Command{
	Use:   "owners",
	Short: "List the registered owners",
	Long:  ``,
	RunE:  queryOwnersRun,
}

var queryRequestCmd = &cobra.Command{
	Use:   "request",
	Short: "Show one request",
	Long:  ``,
	RunE:  queryRequestRun,
}

func init() {
	queryCmd.PersistentFlags().StringVarP(&queryArgs.Url, "url", "u", "http://127.0.0.1:26659", "vaultd service url")
	queryRequestCmd.Flags().Uint64VarP(&queryArgs.RequestId, "request", "r", 0, "request id")
	queryCmd.AddCommand(queryWalletCmd)
	queryCmd.AddCommand(queryOwnersCmd)
	queryCmd.AddCommand(queryRequestCmd)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", " ")
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", out)
	return nil
}

func queryWalletRun(cmd *cobra.Command, args []string) error {
	var sum json.RawMessage
	if err := getJSON(queryArgs.Url+"/wallet", &sum); err != nil {
		return err
	}
	return printJSON(sum)
}

func queryOwnersRun(cmd *cobra.Command, args []string) error {
	var res json.RawMessage
	if err := getJSON(queryArgs.Url+"/owners", &res); err != nil {
		return err
	}
	return printJSON(res)
}

func queryRequestRun(cmd *cobra.Command, args []string) error {
	var res json.RawMessage
	err := postJSON(queryArgs.Url+"/getRequest", map[string]uint64{"requestId": queryArgs.RequestId}, &res)
	if err != nil {
		return err
	}
	return printJSON(res)
}
