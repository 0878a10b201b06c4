package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pbaille/catkw/internal/catalog"
	"github.com/pbaille/catkw/internal/derive"
	"github.com/pbaille/catkw/internal/report"
	"github.com/pbaille/catkw/internal/taxonomy"
	"github.com/pbaille/catkw/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type deriveFlags struct {
	categories string
	blacklist  string
	save       bool
	htmlOut    string
	asJSON     bool
}

func (f *deriveFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.categories, "categories", "", "JSON list of category paths (default from config)")
	cmd.Flags().StringVar(&f.blacklist, "blacklist", "", "blacklist file, one path per line (default from config)")
	cmd.Flags().BoolVar(&f.save, "save", false, "store the run in the history database")
	cmd.Flags().StringVar(&f.htmlOut, "html", "", "also write an HTML tree view to this file")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print the report as JSON")
}

func (f *deriveFlags) resolve() {
	if f.categories == "" {
		f.categories = cfg.CategoriesFile
	}
	if f.blacklist == "" {
		f.blacklist = cfg.BlacklistFile
	}
}

// loadDerivation derives keywords from the input files.
// It returns nil without error when an input is missing, after saying so.
func loadDerivation(f *deriveFlags) (*derive.Result, error) {
	res, err := derive.FromFiles(f.categories, f.blacklist)
	if errors.Is(err, catalog.ErrNotFound) {
		fmt.Printf("Missing %s or %s\n", f.categories, f.blacklist)
		return nil, nil
	}
	return res, err
}

func runDerive(f *deriveFlags) error {
	res, err := loadDerivation(f)
	if err != nil || res == nil {
		return err
	}

	logger.Debug("derived keywords",
		zap.Int("nodes", res.Tree.Len()),
		zap.Int("blacklist", res.Blacklist.Len()),
		zap.Int("keywords", len(res.Report.Keywords)),
		zap.Int("residual", len(res.Report.Residual)))

	if f.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res.Report); err != nil {
			return err
		}
	} else if err := report.WriteText(os.Stdout, res.Report, report.Options{ResidualLimit: cfg.Report.ResidualLimit}); err != nil {
		return err
	}

	if f.htmlOut != "" {
		out, err := os.Create(f.htmlOut)
		if err != nil {
			return fmt.Errorf("create html: %w", err)
		}
		if err := report.WriteHTML(out, res.Tree, res.Blacklist, res.Report); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("write html: %w", err)
		}
		logger.Info("wrote tree view", zap.String("file", f.htmlOut))
	}

	if f.save {
		s, err := getStore()
		if err != nil {
			return err
		}
		defer s.Close()

		run, err := s.SaveRun(res.Source, res.Report)
		if err != nil {
			return err
		}
		fmt.Printf("\nSaved run: %s\n", run.ID[:8])
	}

	return nil
}

func deriveCmd() *cobra.Command {
	var f deriveFlags

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Suggest minimal keywords covering the blacklist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.resolve()
			return runDerive(&f)
		},
	}

	f.register(cmd)
	return cmd
}

func watchCmd() *cobra.Command {
	var f deriveFlags

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-derive keywords whenever the inputs change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.resolve()
			rerun := func(ctx context.Context) error {
				fmt.Println(strings.Repeat("=", 60))
				return runDerive(&f)
			}

			w, err := watch.New([]string{f.categories, f.blacklist}, rerun, logger)
			if err != nil {
				return err
			}

			if err := rerun(cmd.Context()); err != nil {
				logger.Error("initial run failed", zap.Error(err))
			}
			logger.Info("watching inputs", zap.String("categories", f.categories), zap.String("blacklist", f.blacklist))
			return w.Run(cmd.Context())
		},
	}

	f.register(cmd)
	return cmd
}

func treeCmd() *cobra.Command {
	var f deriveFlags

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the category tree with blacklist and keyword markers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.resolve()
			res, err := loadDerivation(&f)
			if err != nil || res == nil {
				return err
			}

			keywords := taxonomy.NewPathSet(res.Report.Keywords...)
			res.Tree.Walk(func(id taxonomy.NodeID, n taxonomy.Node) bool {
				mark := "   "
				switch {
				case keywords.Has(n.Path):
					mark = "[*]"
				case res.Tree.IsLeaf(id) && res.Blacklist.Has(n.Path):
					mark = "[x]"
				}
				fmt.Printf("%s%s %s\n", strings.Repeat("  ", n.Depth), mark, n.Name)
				return true
			})

			if len(res.Report.Unknown) > 0 {
				fmt.Printf("\n%d blacklist entries are not in the tree (run derive for details)\n", len(res.Report.Unknown))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&f.categories, "categories", "", "JSON list of category paths (default from config)")
	cmd.Flags().StringVar(&f.blacklist, "blacklist", "", "blacklist file (default from config)")
	return cmd
}
