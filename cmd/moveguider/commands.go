package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/i474232898/moveguider/internal/checklist"
	"github.com/i474232898/moveguider/internal/planner"
	"github.com/i474232898/moveguider/internal/profile"
	"github.com/i474232898/moveguider/internal/report"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	good    = color.New(color.FgGreen)
	warn    = color.New(color.FgYellow)
	bad     = color.New(color.FgRed)
)

func compareCmd() *cobra.Command {
	var (
		profileName string
		duration    int
		top         int
		output      string
		policy      string
	)

	cmd := &cobra.Command{
		Use:   "compare <city1> <city2>",
		Short: "Compare two cities from the terminal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mp := cfg.MidnightPolicy
			if policy != "" {
				var err error
				if mp, err = planner.ParseMidnightPolicy(policy); err != nil {
					return err
				}
			}

			service, _, err := newService()
			if err != nil {
				return err
			}
			profiles := openProfiles()
			p := profile.LoadOrDefault(profiles, profileName)

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()
			cmp := service.Compare(ctx, args[0], args[1])
			if cmp.Series1 == nil && cmp.Series2 == nil {
				return fmt.Errorf("no weather data: %s", strings.Join(cmp.Errors, "; "))
			}

			now := time.Now().In(cfg.HomeZone)
			r := report.Build(cmp, profileName, p, report.Options{
				Home:    cfg.HomeZone,
				Ref:     planner.RefDateOf(now),
				Policy:  mp,
				Workout: time.Duration(duration) * time.Minute,
				TopN:    top,
				Now:     now,
			})

			if output == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(r)
			}
			printReport(cmd.OutOrStdout(), r)
			return nil
		},
	}

	cmd.Flags().StringVarP(&profileName, "profile", "p", profile.DefaultName, "profile to plan with")
	cmd.Flags().IntVarP(&duration, "duration", "d", 60, "workout length in minutes")
	cmd.Flags().IntVarP(&top, "top", "n", planner.DefaultTopN, "number of ranked workout windows per city")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, json)")
	cmd.Flags().StringVar(&policy, "midnight", "", "override the midnight policy (clamp, span)")
	return cmd
}

func printReport(w io.Writer, r report.Report) {
	heading.Fprintf(w, "Comparison %s (reference date %s, home %s)\n", r.ID, r.ReferenceDate, r.HomeZone)
	for _, e := range r.Errors {
		bad.Fprintf(w, "  ! %s\n", e)
	}
	for _, s := range r.Skipped {
		warn.Fprintf(w, "  skipped %s\n", s)
	}

	heading.Fprintln(w, "\nDaily routine (local time)")
	for _, t := range r.Routine {
		fmt.Fprintf(w, "  %-12s %-10s %s-%s\n", t.Resource, t.Label, t.Start.Format("15:04"), t.End.Format("15:04"))
	}

	for _, c := range r.Cities {
		heading.Fprintf(w, "\n%s (%s, %d hours from %s)\n", c.City, c.TimeZone, c.Hours, strings.Join(c.Providers, ", "))

		var comfort, warning int
		for _, z := range c.Zones {
			if z.Classification == planner.ClassWarning {
				warning++
			} else {
				comfort++
			}
		}
		good.Fprintf(w, "  %d comfortable hours", comfort)
		fmt.Fprint(w, ", ")
		bad.Fprintf(w, "%d heat/UV warnings\n", warning)

		fmt.Fprintln(w, "  Best per day:")
		for _, b := range c.BestPerDay {
			fmt.Fprintf(w, "    %s\n", b.Detail)
		}
		fmt.Fprintln(w, "  Top windows:")
		for i, b := range c.Top {
			fmt.Fprintf(w, "    %d. %s\n", i+1, b.Detail)
		}
		if n := len(c.Hydration); n > 0 {
			fmt.Fprintf(w, "  Water over the next %d hours: %.0f ml\n", n, c.Hydration[n-1].CumulativeML)
		}
	}

	if peak := peakEnergy(r.Energy); peak.Performance > 0 {
		heading.Fprintln(w, "\nEnergy")
		fmt.Fprintf(w, "  Peak %.0f%% around %02d:%02d home time\n", peak.Performance, int(peak.Hour), int((peak.Hour-float64(int(peak.Hour)))*60))
	}
}

func peakEnergy(points []planner.EnergyPoint) planner.EnergyPoint {
	var best planner.EnergyPoint
	for _, p := range points {
		if p.Performance > best.Performance {
			best = p
		}
	}
	return best
}

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage user profiles",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List profile names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles := openProfiles()
			names, err := profiles.Names()
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}

	var output string
	show := &cobra.Command{
		Use:   "show <name>",
		Short: "Print a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles := openProfiles()
			p, err := profiles.Load(args[0])
			if err != nil {
				return err
			}
			return writeProfile(cmd.OutOrStdout(), p, output)
		},
	}
	show.Flags().StringVarP(&output, "output", "o", "yaml", "output format (yaml, json)")

	var file string
	save := &cobra.Command{
		Use:   "save <name>",
		Short: "Create or replace a profile from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readProfile(file)
			if err != nil {
				return err
			}
			profiles := openProfiles()
			if err := profiles.Save(args[0], p); err != nil {
				return err
			}
			good.Fprintf(cmd.OutOrStdout(), "saved profile %q\n", args[0])
			return nil
		},
	}
	save.Flags().StringVarP(&file, "file", "f", "", "profile document")
	_ = save.MarkFlagRequired("file")

	del := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles := openProfiles()
			if err := profiles.Delete(args[0]); err != nil {
				return err
			}
			warn.Fprintf(cmd.OutOrStdout(), "deleted profile %q\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, show, save, del)
	return cmd
}

func writeProfile(w io.Writer, p profile.Profile, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(p)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// readProfile decodes a profile document. JSON is valid YAML, so one decoder
// covers both.
func readProfile(path string) (profile.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return profile.Profile{}, err
	}
	var p profile.Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return profile.Profile{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return p, nil
}

func checklistCmd() *cobra.Command {
	var (
		from, to, mode, month, profileName, out string
	)

	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Write a personalised move checklist",
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" || to == "" {
				return errors.New("--from and --to are required")
			}
			profiles := openProfiles()
			p := profile.LoadOrDefault(profiles, profileName)

			text := checklist.Generate(checklist.Params{
				From:     from,
				To:       to,
				Mode:     checklist.Mode(mode),
				SimMonth: month,
				Profile:  p,
				Now:      time.Now().In(cfg.HomeZone),
			})

			if out == "" {
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			if err := os.WriteFile(out, []byte(text+"\n"), 0o644); err != nil {
				return err
			}
			good.Fprintf(cmd.OutOrStdout(), "checklist written to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "city you are leaving")
	cmd.Flags().StringVar(&to, "to", "", "city you are moving to")
	cmd.Flags().StringVar(&mode, "mode", string(checklist.ModeLive), "planning mode (\"Live Forecast\" or \"Seasonal Simulation\")")
	cmd.Flags().StringVar(&month, "month", "", "month of the move for seasonal mode")
	cmd.Flags().StringVarP(&profileName, "profile", "p", profile.DefaultName, "profile to personalise with")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to a file instead of stdout")
	return cmd
}
