// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/services/portal"
	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/services/transfer"
	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/utils"
)

func uploadCmd(a *app) *cobra.Command {
	var (
		accountName string
		portalName  string
		destination string
		stageOnly   bool
	)

	cmd := &cobra.Command{
		Use:   "upload [files or directories...]",
		Short: "Upload files to a share portal",
		Long: `Resolve the share portal, open an upload session on it, stage the given
files and directories and transfer them. Without arguments the paths are read
from stdin, one per line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if accountName == "" {
				accountName = viper.GetString(utils.DefaultAccount)
			}
			if portalName == "" {
				portalName = viper.GetString(utils.DefaultPortal)
			}
			if destination == "" {
				destination = viper.GetString(utils.DefaultDestination)
			}
			if accountName == "" || portalName == "" {
				return fmt.Errorf("account and portal must be given as flags or configured")
			}

			sess, err := a.session()
			if err != nil {
				return err
			}
			resolver, err := portal.NewResolver(sess)
			if err != nil {
				return err
			}
			svc, err := transfer.NewTransferService(sess)
			if err != nil {
				return err
			}

			// 1) account + portal → identifiers
			sel, err := resolver.Resolve(ctx, accountName, portalName).Get()
			if err != nil {
				return err
			}

			// 2) upload session
			us, err := svc.CreateUpload(ctx, sel, destination).Get()
			if err != nil {
				return err
			}
			a.logger.Info("upload session created", zap.String("uploadId", us.ID()))

			// 3) staging
			var selector transfer.FileSelector = transfer.PathSelector(args)
			if len(args) == 0 {
				selector = transfer.PromptSelector{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()}
			}
			files, err := svc.StageUpload(ctx, us, selector).Wait(ctx)
			if err != nil {
				return err
			}

			if stageOnly {
				return utils.PrintOutput(cmd.OutOrStdout(), a.format, files, func(w io.Writer) error {
					fmt.Fprintf(w, "Staged %d files for upload %s\n", len(files), us.ID())
					for _, f := range files {
						fmt.Fprintf(w, "  %s (%s)\n", f.RelPath, humanize.IBytes(uint64(f.Size)))
					}
					return nil
				})
			}

			// 4) transfer
			var total int64
			for _, f := range files {
				total += f.Size
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Uploading %d files (%s) to %s\n", len(files), humanize.IBytes(uint64(total)), us.Options().DestinationPath)
			hook := utils.NewProgressHook(cmd.ErrOrStderr(), a.verbose, len(files), total)

			res, err := svc.Start(ctx, us, hook)
			if err != nil {
				return err
			}

			return utils.PrintOutput(cmd.OutOrStdout(), a.format, res, func(w io.Writer) error {
				fmt.Fprintf(w, "Upload %s completed: %d files\n", res.UploadID, len(res.Objects))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&accountName, "account", "a", "", "account name (default from config)")
	cmd.Flags().StringVarP(&portalName, "portal", "p", "", "share portal name (default from config)")
	cmd.Flags().StringVarP(&destination, "dest", "d", "", "destination path inside the portal (default from config)")
	cmd.Flags().BoolVar(&stageOnly, "stage-only", false, "stop after staging and print the staged files")
	return cmd
}
