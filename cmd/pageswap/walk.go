package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackielii/pageswap"
	"github.com/jackielii/pageswap/memdom"
	"github.com/jackielii/pageswap/pages"
)

var walkBaseURL string

var walkCmd = &cobra.Command{
	Use:   "walk [step...]",
	Short: "Drive the client router against a running server",
	Long: `Walk loads the shell from a running server into an in-memory browser and
performs each step in order, printing the resulting page state.

A step is a path to navigate to, "back", "forward", or "click:<element-id>".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		base := cfg.Client.BaseURL
		if walkBaseURL != "" {
			base = walkBaseURL
		}
		fetcher, err := pageswap.NewHTTPFetcher(base, &http.Client{Timeout: 10 * time.Second})
		if err != nil {
			return err
		}
		doc := memdom.New()
		hist := memdom.NewHistory("/")
		reg := pageswap.NewRegistry()
		pages.Register(reg, doc, logger)
		rt := pageswap.New(pageswap.DefaultRoutes(), fetcher, doc, hist,
			pageswap.WithLogger(logger),
			pageswap.WithModules(reg),
			pageswap.WithTransitionTimeout(time.Duration(cfg.Client.TransitionTimeout)),
			pageswap.WithTitleFormat(pageswap.SiteTitle(cfg.Site.Name)),
		)
		defer rt.Close()
		return walk(cmd.Context(), cmd.OutOrStdout(), rt, doc, hist, args)
	},
}

func init() {
	walkCmd.Flags().StringVar(&walkBaseURL, "base-url", "", "server to fetch fragments from (overrides client.base_url)")
}

func walk(ctx context.Context, out io.Writer, rt *pageswap.Router, doc *memdom.Document, hist *memdom.History, steps []string) error {
	if err := rt.Initialize(ctx); err != nil {
		return err
	}
	printStep(out, "init", rt, doc, hist)
	for _, step := range steps {
		switch {
		case step == "back":
			if !hist.Back() {
				return fmt.Errorf("step %q: no previous entry", step)
			}
		case step == "forward":
			if !hist.Forward() {
				return fmt.Errorf("step %q: no next entry", step)
			}
		case strings.HasPrefix(step, "click:"):
			id := strings.TrimPrefix(step, "click:")
			if !doc.Click(id) {
				return fmt.Errorf("step %q: no element with id %q", step, id)
			}
		default:
			if err := rt.Navigate(ctx, step); err != nil {
				return fmt.Errorf("step %q: %w", step, err)
			}
		}
		printStep(out, step, rt, doc, hist)
	}
	return nil
}

func printStep(out io.Writer, step string, rt *pageswap.Router, doc *memdom.Document, hist *memdom.History) {
	header, _ := doc.TextByID("page-title")
	module := rt.ActiveModule()
	if module == "" {
		module = "-"
	}
	fmt.Fprintf(out, "%-20s path=%s title=%q header=%q active=%s module=%s\n",
		step, hist.Path(), doc.Title(), header,
		strings.Join(doc.LinksWithClass(pageswap.SlotNav, "active-link"), ","), module)
}
