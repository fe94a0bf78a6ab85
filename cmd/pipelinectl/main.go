// Command pipelinectl queries a running dealflow API from the terminal.
package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xavierca1/dealflow/internal/entity"
	"github.com/xavierca1/dealflow/internal/pipeline"
	"github.com/xavierca1/dealflow/internal/usecase"
)

type app struct {
	configPath string
	apiURL     string
	token      string

	cfg    *cliConfig
	client *apiClient
	out    io.Writer
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:           "pipelinectl",
		Short:         "Inspect the dealflow lead pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.persistSession()
		},
	}

	defaultPath, _ := defaultConfigPath()
	root.PersistentFlags().StringVar(&a.configPath, "config", defaultPath, "config file")
	root.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "dealflow API base URL (overrides config)")
	root.PersistentFlags().StringVar(&a.token, "token", "", "access token (overrides config)")

	root.AddCommand(a.countsCmd(), a.leadsCmd(), a.filtersCmd(), a.remindersCmd(), a.configCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", a.configPath, err)
	}
	if cmd.Flags().Changed("api-url") {
		cfg.APIURL = a.apiURL
	}
	if cmd.Flags().Changed("token") {
		cfg.Token = a.token
	}
	a.cfg = cfg
	a.client = newAPIClient(cfg)
	return nil
}

func (a *app) persistSession() error {
	if a.client == nil || a.client.session == a.cfg.Session {
		return nil
	}
	stored, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	stored.Session = a.client.session
	return saveConfig(a.configPath, stored)
}

func (a *app) countsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "counts",
		Short: "Show lead counts per stage under the current filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp struct {
				Counts pipeline.Counts `json:"counts"`
			}
			if err := a.client.do(cmd.Context(), http.MethodGet, "/pipeline/counts", nil, &resp); err != nil {
				return err
			}
			printCounts(a.out, resp.Counts)
			return nil
		},
	}
}

func (a *app) leadsCmd() *cobra.Command {
	var stage string
	cmd := &cobra.Command{
		Use:   "leads",
		Short: "List filtered leads, optionally for one stage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/pipeline/leads"
			if stage != "" {
				path += "?stage=" + url.QueryEscape(stage)
			}
			var resp struct {
				Leads []entity.Lead `json:"leads"`
			}
			if err := a.client.do(cmd.Context(), http.MethodGet, path, nil, &resp); err != nil {
				return err
			}
			printLeads(a.out, resp.Leads)
			return nil
		},
	}
	cmd.Flags().StringVar(&stage, "stage", "", "universe, qualified, outreach, pitching, mandates or rejected")
	return cmd
}

func (a *app) filtersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filters",
		Short: "Show or change the session filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showFilters(cmd, http.MethodGet, nil)
		},
	}

	set := &cobra.Command{
		Use:   "set",
		Short: "Change the given filters and keep the others",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showFilters(cmd, http.MethodPut, patchFromFlags(cmd))
		},
	}
	set.Flags().String("search", "", "search term")
	set.Flags().String("sector", "", "sector, or all")
	set.Flags().String("sub-sector", "", "sub-sector, or all")
	set.Flags().String("assigned-to", "", "user id, unassigned or all")
	set.Flags().String("location", "", "location, or all")
	set.Flags().String("stage", "", "default stage for leads")

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Clear every filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showFilters(cmd, http.MethodDelete, nil)
		},
	}

	cmd.AddCommand(set, reset)
	return cmd
}

func (a *app) showFilters(cmd *cobra.Command, method string, in any) error {
	var c pipeline.Criteria
	if err := a.client.do(cmd.Context(), method, "/pipeline/filters", in, &c); err != nil {
		return err
	}
	printCriteria(a.out, c)
	return nil
}

// patchFromFlags includes only the flags given on the command line. An
// explicit empty value is sent as is and selects blank attributes; all clears
// an axis.
func patchFromFlags(cmd *cobra.Command) pipeline.Patch {
	var p pipeline.Patch
	pick := func(name string, dst **string) {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetString(name)
			*dst = &v
		}
	}
	pick("search", &p.SearchTerm)
	pick("sector", &p.Sector)
	pick("sub-sector", &p.SubSector)
	pick("assigned-to", &p.AssignedTo)
	pick("location", &p.Location)
	pick("stage", &p.Stage)
	return p
}

func (a *app) remindersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reminders",
		Short: "Show today's open outreach tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var list []usecase.Reminder
			if err := a.client.do(cmd.Context(), http.MethodGet, "/interventions/reminders", nil, &list); err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLEAD\tACTIVITY\tAT")
			for _, r := range list {
				at := ""
				if r.ScheduledAt != nil {
					at = r.ScheduledAt.Local().Format("15:04")
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.ID, r.LeadID, r.ActivityLabel, at)
			}
			return tw.Flush()
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the pipelinectl config file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "save",
		Short: "Write --api-url and --token to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := saveConfig(a.configPath, a.cfg); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "saved %s\n", a.configPath)
			return nil
		},
	})
	return cmd
}

func printCounts(w io.Writer, c pipeline.Counts) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, st := range entity.Stages {
		fmt.Fprintf(tw, "%s\t%d\n", st, c.Get(st))
	}
	tw.Flush()
}

func printLeads(w io.Writer, leads []entity.Lead) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTAGE\tCOMPANY\tSECTOR\tLOCATION")
	for _, l := range leads {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", l.ID, l.Stage, l.Company.Name, l.Company.Sector, l.Company.Location)
	}
	tw.Flush()
	fmt.Fprintf(w, "%d leads\n", len(leads))
}

func printCriteria(w io.Writer, c pipeline.Criteria) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "search\t%q\n", c.SearchTerm)
	fmt.Fprintf(tw, "sector\t%s\n", c.Sector)
	fmt.Fprintf(tw, "sub-sector\t%s\n", c.SubSector)
	fmt.Fprintf(tw, "assigned-to\t%s\n", c.AssignedTo)
	fmt.Fprintf(tw, "location\t%s\n", c.Location)
	fmt.Fprintf(tw, "stage\t%s\n", c.Stage)
	tw.Flush()
}
