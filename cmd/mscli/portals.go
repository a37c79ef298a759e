// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/result"
	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/services/explorer"
	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/utils"
)

func portalsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "portals [account]",
		Short: "List the portals of an account",
		Long:  "List the portals of an account. Without argument the configured default account is used.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountName := viper.GetString(utils.DefaultAccount)
			if len(args) == 1 {
				accountName = args[0]
			}
			if accountName == "" {
				return fmt.Errorf("account not specified")
			}

			sess, err := a.session()
			if err != nil {
				return err
			}
			svc, err := explorer.NewExplorerService(sess)
			if err != nil {
				return err
			}

			accounts, err := svc.ListAccounts(cmd.Context(), explorer.ListAccountsRequest{MediaShuttleOnly: true})
			if err != nil {
				return err
			}
			acct, ok := explorer.FindAccount(accounts, accountName)
			if !ok {
				return result.NotFound[explorer.AccountSummary](result.SubjectAccount, accountName).Err()
			}

			portals, err := svc.ListPortals(cmd.Context(), explorer.ListPortalsRequest{
				AccountID: acct.AccountID,
				ServiceID: acct.ServiceID,
			})
			if err != nil {
				return err
			}

			return utils.PrintOutput(cmd.OutOrStdout(), a.format, portals, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tTYPE\tPORTAL ID\tURL")
				for _, p := range portals {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Name, p.Type, p.PortalID, p.URL)
				}
				return tw.Flush()
			})
		},
	}
}
