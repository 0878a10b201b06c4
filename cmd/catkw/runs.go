package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/pbaille/catkw/internal/api"
	"github.com/pbaille/catkw/internal/report"
	"github.com/pbaille/catkw/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List saved derivation runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			runs, err := s.ListRuns(limit, 0)
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Println("No runs yet. Use 'catkw derive --save' to record one.")
				return nil
			}

			for _, r := range runs {
				fmt.Printf("%s  %s  %d paths, %d blacklisted  %s\n",
					r.ID[:8], r.CreatedAt.Local().Format("2006-01-02 15:04"),
					r.PathCount, r.BlacklistCount, truncate(r.BlacklistFile, 40))
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to show")
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			run, err := s.FindRun(args[0])
			if errors.Is(err, store.ErrRunNotFound) {
				return fmt.Errorf("run not found: %s", args[0])
			}
			if err != nil {
				return err
			}

			fmt.Printf("ID:         %s\n", run.ID)
			fmt.Printf("Created:    %s\n", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
			fmt.Printf("Categories: %s (%d paths)\n", run.CategoriesFile, run.PathCount)
			fmt.Printf("Blacklist:  %s (%d entries)\n\n", run.BlacklistFile, run.BlacklistCount)

			return report.WriteText(os.Stdout, run.Report, report.Options{ResidualLimit: cfg.Report.ResidualLimit})
		},
	}
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = cfg.Server.Addr
			}

			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			httpServer := &http.Server{
				Addr:         addr,
				Handler:      api.New(s, logger),
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 60 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			go func() {
				<-cmd.Context().Done()
				logger.Info("shutting down...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				httpServer.Shutdown(shutdownCtx)
			}()

			logger.Info("starting server", zap.String("addr", addr))
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "server address (default from config)")
	return cmd
}
