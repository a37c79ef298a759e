// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/utils"
)

func configureCmd(a *app) *cobra.Command {
	flagKeys := map[string]string{
		"user":      utils.MsUser,
		"password":  utils.MsPassword,
		"platform":  utils.PlatformAPIEndpoint,
		"messaging": utils.MessagingServiceURL,
		"account":   utils.DefaultAccount,
		"portal":    utils.DefaultPortal,
		"dest":      utils.DefaultDestination,
	}

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Store credentials and defaults in the INI file",
		Long: `Store credentials and defaults in the selected environment of the INI file.
Only the flags given are changed. When --user is given without --password and
stdin is a terminal, the password is prompted for.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for flag, key := range flagKeys {
				if cmd.Flags().Changed(flag) {
					v, _ := cmd.Flags().GetString(flag)
					viper.Set(key, v)
				}
			}

			if cmd.Flags().Changed("user") && !cmd.Flags().Changed("password") && term.IsTerminal(int(os.Stdin.Fd())) {
				fmt.Fprint(os.Stderr, "Password: ")
				pw, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Fprintln(os.Stderr)
				if err != nil {
					return fmt.Errorf("error in reading password: %w", err)
				}
				viper.Set(utils.MsPassword, string(pw))
			}

			env := viper.GetString(utils.CurrentEnvironment)
			if err := utils.UpdateIniFromStruct(a.iniPath, env); err != nil {
				return fmt.Errorf("failed to save ini: %w", err)
			}

			summary := utils.ConfigSummary()
			return utils.PrintOutput(cmd.OutOrStdout(), a.format, summary, func(w io.Writer) error {
				fmt.Fprintf(w, "Updated section [%s] in %s\n", env, a.iniPath)
				for _, k := range utils.SortedKeys(summary) {
					fmt.Fprintf(w, "  %s = %s\n", k, summary[k])
				}
				return nil
			})
		},
	}

	cmd.Flags().String("user", "", "Media Shuttle username")
	cmd.Flags().String("password", "", "Media Shuttle password")
	cmd.Flags().String("platform", "", "platform API endpoint")
	cmd.Flags().String("messaging", "", "messaging service URL")
	cmd.Flags().String("account", "", "default account name")
	cmd.Flags().String("portal", "", "default share portal name")
	cmd.Flags().String("dest", "", "default destination path")
	return cmd
}
