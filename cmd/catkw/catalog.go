package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pbaille/catkw/internal/catalog"
	"github.com/pbaille/catkw/internal/fetcher"
	"github.com/pbaille/catkw/internal/taxonomy"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// openFeed opens a local feed or downloads it when src is a URL
func openFeed(cmd *cobra.Command, src string) (io.ReadCloser, error) {
	if fetcher.IsURL(src) {
		logger.Info("downloading feed", zap.String("url", src))
		body, err := fetcher.Fetch(cmd.Context(), src)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(body)), nil
	}

	f, err := os.Open(src)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", catalog.ErrNotFound, src)
	}
	return f, err
}

// feedMissing reports a missing local feed so the command can stop without an error
func feedMissing(err error, src string) bool {
	if !errors.Is(err, catalog.ErrNotFound) {
		return false
	}
	fmt.Printf("Catalog feed not found: %s\n", src)
	return true
}

func extractCmd() *cobra.Command {
	var column, out string

	cmd := &cobra.Command{
		Use:   "extract [csv file or URL]",
		Short: "Extract normalized category paths from a catalog feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if column == "" {
				column = cfg.Catalog.Column
			}
			if out == "" {
				out = cfg.CategoriesFile
			}

			feed, err := openFeed(cmd, args[0])
			if feedMissing(err, args[0]) {
				return nil
			}
			if err != nil {
				return err
			}
			defer feed.Close()

			ext, err := catalog.Extract(feed, column)
			if err != nil {
				return err
			}
			if err := catalog.SavePaths(out, ext.Paths); err != nil {
				return err
			}

			logger.Debug("extracted categories", zap.Int("paths", len(ext.Paths)), zap.Int("anomalies", len(ext.Anomalies)))
			fmt.Printf("Found %d unique normalized categories (max %d levels)\n", len(ext.Paths), taxonomy.MaxLevels)
			fmt.Printf("Saved to: %s\n", out)

			if len(ext.Paths) > 0 {
				fmt.Println("\nPreview:")
				for i, p := range ext.Paths[:min(10, len(ext.Paths))] {
					fmt.Printf("  %d. %s\n", i+1, p)
				}
			}

			if len(ext.Anomalies) > 0 {
				fmt.Printf("\nWarning: %d values with more than %d levels (showing up to 10):\n", len(ext.Anomalies), taxonomy.MaxLevels)
				for _, a := range ext.Anomalies[:min(10, len(ext.Anomalies))] {
					fmt.Printf("   - %s\n", truncate(a, 120))
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&column, "column", "c", "", "category column (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output JSON file (default from config)")
	return cmd
}

func uniqueCmd() *cobra.Command {
	var column string

	cmd := &cobra.Command{
		Use:   "unique [csv file or URL]",
		Short: "List distinct values of a feed column in order of appearance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if column == "" {
				column = cfg.Count.Column
			}

			feed, err := openFeed(cmd, args[0])
			if feedMissing(err, args[0]) {
				return nil
			}
			if err != nil {
				return err
			}
			defer feed.Close()

			values, err := catalog.Unique(feed, column)
			if err != nil {
				return err
			}
			for _, v := range values {
				fmt.Println(v)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&column, "col", "", "column name (default from config)")
	return cmd
}

func countCmd() *cobra.Command {
	var column, blacklistFile string
	var noDefault bool

	cmd := &cobra.Command{
		Use:   "count [csv file or URL]",
		Short: "Count feed rows left after applying a category blacklist",
		Long: "Count feed rows left after applying a category blacklist.\n\n" +
			"Category names are compared case-insensitively here, unlike derive,\n" +
			"which matches canonical paths exactly.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if column == "" {
				column = cfg.Count.Column
			}

			var entries []string
			if !noDefault {
				entries = append(entries, cfg.Count.DefaultBlacklist...)
			}
			if blacklistFile != "" {
				extra, err := catalog.LoadBlacklist(blacklistFile)
				if err != nil {
					return err
				}
				entries = append(entries, extra...)
			}
			bl := catalog.NewFoldedSet(entries...)

			feed, err := openFeed(cmd, args[0])
			if feedMissing(err, args[0]) {
				return nil
			}
			if err != nil {
				return err
			}
			defer feed.Close()

			st, err := catalog.Count(feed, column, bl)
			if err != nil {
				return err
			}

			fmt.Printf("Total rows (excluding header): %d\n", st.Total)
			fmt.Printf("Blacklisted: %d (%.1f%%)\n", st.Blacklisted, st.BlacklistedPercent())
			fmt.Printf("Not blacklisted: %d (%.1f%%)\n", st.NonBlacklisted, st.KeptPercent())
			if st.EmptyOrMissing > 0 {
				fmt.Printf("Missing/empty category: %d\n", st.EmptyOrMissing)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&column, "col", "", "category column (default from config)")
	cmd.Flags().StringVar(&blacklistFile, "blacklist-file", "", "extra blacklist entries, one per line")
	cmd.Flags().BoolVar(&noDefault, "no-default", false, "ignore the configured default blacklist")
	return cmd
}
