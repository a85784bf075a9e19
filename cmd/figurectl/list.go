// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taibuivan/figures/internal/figure"
	"github.com/taibuivan/figures/internal/gallery"
)

func newListCmd(opts *options) *cobra.Command {
	var (
		search string
		tag    string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List figures, ordered by death year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			store := gallery.NewStore(opts.client())
			if err := store.Refresh(ctx); err != nil {
				return fmt.Errorf("list figures: %w", err)
			}
			store.SetSearch(search)
			store.SelectTag(tag)

			view := store.Snapshot()
			if asJSON {
				return writeJSON(opts, view.Visible)
			}
			if view.Empty() {
				_, err := fmt.Fprintln(opts.out, gallery.EmptyStateMessage)
				return err
			}
			return writeTable(opts, view.Visible)
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive name search (English or Punjabi)")
	cmd.Flags().StringVarP(&tag, "tag", "t", figure.AllTags, `tag to filter by ("all" for none)`)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the records as JSON")
	return cmd
}

func newTagsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List every distinct tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			tags, err := opts.client().Tags(ctx)
			if err != nil {
				return fmt.Errorf("list tags: %w", err)
			}
			for _, tag := range tags {
				if _, err := fmt.Fprintln(opts.out, tag); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func writeJSON(opts *options, figures []figure.Figure) error {
	encoder := json.NewEncoder(opts.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(figures)
}

func writeTable(opts *options, figures []figure.Figure) error {
	writer := tabwriter.NewWriter(opts.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tNAME\tPUNJABI\tYEARS\tTAGS")
	for _, record := range figures {
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\n",
			record.ID,
			record.EnglishName,
			record.PunjabiName,
			years(record),
			strings.Join(record.Tags, ", "),
		)
	}
	return writer.Flush()
}

func years(record figure.Figure) string {
	format := func(year *int) string {
		if year == nil {
			return "?"
		}
		return strconv.Itoa(*year)
	}
	return format(record.BirthYear) + "-" + format(record.DeathYear)
}
