// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/services/explorer"
	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/utils"
)

func accountsCmd(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List the accounts visible to the configured user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			svc, err := explorer.NewExplorerService(sess)
			if err != nil {
				return err
			}

			accounts, err := svc.ListAccounts(cmd.Context(), explorer.ListAccountsRequest{MediaShuttleOnly: !all})
			if err != nil {
				return err
			}

			return utils.PrintOutput(cmd.OutOrStdout(), a.format, accounts, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tACCOUNT ID\tSERVICE ID")
				for _, acct := range accounts {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", acct.Name, acct.AccountID, acct.ServiceID)
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include accounts without a Media Shuttle subscription")
	return cmd
}
