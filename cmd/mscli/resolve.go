// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/services/portal"
	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/utils"
)

func resolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [account] [portal]",
		Short: "Print the identifiers of a share portal",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountName, portalName, err := accountAndPortal(args)
			if err != nil {
				return err
			}

			sess, err := a.session()
			if err != nil {
				return err
			}
			resolver, err := portal.NewResolver(sess)
			if err != nil {
				return err
			}

			sel, err := resolver.Resolve(cmd.Context(), accountName, portalName).Get()
			if err != nil {
				return err
			}

			return utils.PrintOutput(cmd.OutOrStdout(), a.format, sel, func(w io.Writer) error {
				fmt.Fprintf(w, "portal:  %s\nservice: %s\naccount: %s\n", sel.PortalID, sel.ServiceID, sel.AccountID)
				return nil
			})
		},
	}
}

// accountAndPortal fills missing positional arguments from the configured defaults.
func accountAndPortal(args []string) (string, string, error) {
	accountName := viper.GetString(utils.DefaultAccount)
	portalName := viper.GetString(utils.DefaultPortal)
	if len(args) > 0 {
		accountName = args[0]
	}
	if len(args) > 1 {
		portalName = args[1]
	}
	if accountName == "" || portalName == "" {
		return "", "", fmt.Errorf("account and portal must be given as arguments or configured")
	}
	return accountName, portalName, nil
}
