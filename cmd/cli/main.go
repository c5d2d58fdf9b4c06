package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ledger-cli",
		Short: "Double-entry ledger CLI tool",
		Long:  `A command line interface for interacting with the ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Account commands
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var accountID, accountName, accountDirection string
	accountCreateCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]any{"direction": accountDirection}
			if accountID != "" {
				payload["id"] = accountID
			}
			if accountName != "" {
				payload["name"] = accountName
			}
			post("/api/v1/accounts/", payload)
		},
	}
	accountCreateCmd.Flags().StringVar(&accountID, "id", "", "Optional account id")
	accountCreateCmd.Flags().StringVar(&accountName, "name", "", "Optional account name")
	accountCreateCmd.Flags().StringVar(&accountDirection, "direction", "", "Account direction: debit or credit")
	accountCreateCmd.MarkFlagRequired("direction")

	accountGetCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get an account with its derived balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/accounts/" + args[0])
		},
	}

	var entriesLimit, entriesOffset int
	accountEntriesCmd := &cobra.Command{
		Use:   "entries <id>",
		Short: "List an account's entries",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get(fmt.Sprintf("/api/v1/accounts/%s/entries?limit=%d&offset=%d", args[0], entriesLimit, entriesOffset))
		},
	}
	accountEntriesCmd.Flags().IntVar(&entriesLimit, "limit", 20, "Page size")
	accountEntriesCmd.Flags().IntVar(&entriesOffset, "offset", 0, "Page offset")

	accountCmd.AddCommand(accountCreateCmd, accountGetCmd, accountEntriesCmd)
	rootCmd.AddCommand(accountCmd)

	// Transaction commands
	transactionCmd := &cobra.Command{
		Use:   "transaction",
		Short: "Transaction operations",
	}

	var txnID, txnName string
	var txnEntries []string
	transactionCreateCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a balanced transaction",
		Long: `Create a transaction from repeated --entry flags, each formatted as
account_id:direction:amount, for example --entry cash:debit:100.00.`,
		Run: func(cmd *cobra.Command, args []string) {
			entries := make([]map[string]string, 0, len(txnEntries))
			for _, raw := range txnEntries {
				parts := strings.SplitN(raw, ":", 3)
				if len(parts) != 3 {
					fmt.Printf("Invalid entry %q: expected account_id:direction:amount\n", raw)
					os.Exit(1)
				}
				entries = append(entries, map[string]string{
					"account_id": parts[0],
					"direction":  parts[1],
					"amount":     parts[2],
				})
			}

			payload := map[string]any{"entries": entries}
			if txnID != "" {
				payload["id"] = txnID
			}
			if txnName != "" {
				payload["name"] = txnName
			}
			post("/api/v1/transactions/", payload)
		},
	}
	transactionCreateCmd.Flags().StringVar(&txnID, "id", "", "Optional transaction id")
	transactionCreateCmd.Flags().StringVar(&txnName, "name", "", "Optional transaction name")
	transactionCreateCmd.Flags().StringArrayVar(&txnEntries, "entry", nil, "Entry as account_id:direction:amount (repeatable)")
	transactionCreateCmd.MarkFlagRequired("entry")

	transactionGetCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get a transaction with its entries",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/transactions/" + args[0])
		},
	}

	transactionCmd.AddCommand(transactionCreateCmd, transactionGetCmd)
	rootCmd.AddCommand(transactionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func post(path string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func get(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		pretty.Write(body)
	}

	fmt.Printf("Status: %d\n%s\n", resp.StatusCode, pretty.String())

	if resp.StatusCode >= 400 {
		os.Exit(1)
	}
}
