package main

import (
	"context"

	"github.com/spf13/cobra"

	"metabridge/internal/gateway/entity"
	"metabridge/internal/gateway/handler/rpc"
)

func newResolveCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the contributors or authors of a dataset",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "contributors <dataset-id>",
		Short: "Print every contributor of a dataset in legacy order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, opts, args[0], false)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "authors <dataset-id>",
		Short: "Print the creators of a dataset in legacy order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, opts, args[0], true)
		},
	})
	return cmd
}

func runResolve(cmd *cobra.Command, opts *rootOptions, rawID string, authors bool) error {
	id, err := entity.ParseDatasetID(rawID)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	var out any
	if opts.remote != "" {
		out, err = resolveRemote(ctx, opts, id, authors)
	} else {
		out, err = resolveLocal(ctx, opts, id, authors)
	}
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), out)
}

func resolveRemote(ctx context.Context, opts *rootOptions, id entity.DatasetID, authors bool) (any, error) {
	client := rpc.NewDatasetClient(newHTTPClient(opts), opts.remote)
	if authors {
		res, err := client.ListAuthors(ctx, id.Int64())
		if err != nil {
			return nil, err
		}
		return res.Authors, nil
	}
	res, err := client.ListContributors(ctx, id.Int64())
	if err != nil {
		return nil, err
	}
	return res.Contributors, nil
}

func resolveLocal(ctx context.Context, opts *rootOptions, id entity.DatasetID, authors bool) (any, error) {
	a, err := loadApp(ctx, opts, "")
	if err != nil {
		return nil, err
	}
	defer a.Close()
	defer syncLogger(a.Logger())

	if authors {
		return a.Resolver().ResolveAuthors(ctx, id)
	}
	return a.Resolver().ResolveContributors(ctx, id)
}
