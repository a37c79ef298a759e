// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package portal

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/result"
	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/services/explorer"
	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/services/session"
)

type Resolver struct {
	explorer Explorer
	logger   *zap.Logger
}

func NewResolver(sess *session.Session) (*Resolver, error) {
	ex, err := explorer.NewExplorerService(sess)
	if err != nil {
		return nil, err
	}
	return NewResolverWithExplorer(ex, sess.Logger()), nil
}

func NewResolverWithExplorer(ex Explorer, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{explorer: ex, logger: logger.Named("portal")}
}

// Resolve finds the account called accountName and, within it, the Share
// portal called portalName. Names must match exactly; when several entries
// share a name the first one listed wins. ServiceID and AccountID of the
// selection are taken from the account record.
func (r *Resolver) Resolve(ctx context.Context, accountName, portalName string) result.Outcome[PortalSelection] {
	accounts, err := r.explorer.ListAccounts(ctx, explorer.ListAccountsRequest{MediaShuttleOnly: true})
	if err != nil {
		r.logger.Warn("account listing failed", zap.String("account", accountName), zap.Error(err))
		return result.TransportError[PortalSelection](fmt.Errorf("failed to list accounts: %w", err))
	}

	acct, ok := explorer.FindAccount(accounts, accountName)
	if !ok {
		r.logger.Info("account not found", zap.String("account", accountName), zap.Int("listed", len(accounts)))
		return result.NotFound[PortalSelection](result.SubjectAccount, accountName)
	}

	portals, err := r.explorer.ListPortals(ctx, explorer.ListPortalsRequest{
		AccountID: acct.AccountID,
		ServiceID: acct.ServiceID,
	})
	if err != nil {
		r.logger.Warn("portal listing failed", zap.String("accountId", acct.AccountID), zap.Error(err))
		return result.TransportError[PortalSelection](fmt.Errorf("failed to list portals: %w", err))
	}
	r.logger.Debug("portals listed", zap.String("accountId", acct.AccountID), zap.Any("portals", portals))

	share, ok := explorer.FindSharePortal(portals, portalName)
	if !ok {
		r.logger.Info("share portal not found", zap.String("accountId", acct.AccountID), zap.String("portal", portalName))
		return result.NotFound[PortalSelection](result.SubjectPortal, portalName)
	}

	return result.Found(PortalSelection{
		PortalID:  share.PortalID,
		ServiceID: acct.ServiceID,
		AccountID: acct.AccountID,
	})
}
