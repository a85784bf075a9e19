// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command figurectl browses a running figures server from the terminal.
//
// It fetches the full record set once through the gallery store and applies
// search and tag selection locally, exactly as the web gallery does.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/figures/internal/gallery"
	"github.com/taibuivan/figures/internal/platform/constants"
)

const defaultServer = "http://localhost:8080"

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// options holds the persistent flags shared by every subcommand.
type options struct {
	server  string
	timeout time.Duration
	out     io.Writer
}

func (opts *options) client() *gallery.Client {
	return gallery.NewClient(opts.server, nil)
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{out: out}

	root := &cobra.Command{
		Use:   "figurectl",
		Short: "Browse the historical figures directory",
		Long: `figurectl lists historical figures and their tags from a running
figures server.

Example:
  figurectl list
  figurectl list --search singh --tag warrior
  figurectl tags --server http://figures.internal:8080`,
		Version:      constants.AppVersion,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.server, "server", defaultServer, "base URL of the figures server")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", gallery.DefaultTimeout, "request timeout")

	root.AddCommand(newListCmd(opts))
	root.AddCommand(newTagsCmd(opts))
	root.SetOut(out)
	return root
}
