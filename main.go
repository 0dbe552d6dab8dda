package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rafael/talentboard/api"
	"github.com/rafael/talentboard/config"
	"github.com/rafael/talentboard/journal"
	"github.com/rafael/talentboard/pipeline"
	"github.com/rafael/talentboard/tui"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: ~/.config/talentboard/config.toml)")
	jobID := flag.String("job", "", "job ID: open the candidate pipeline for this job")
	jobsBoard := flag.Bool("jobs", false, "open the jobs kanban instead of a candidate pipeline")
	readonly := flag.Bool("readonly", false, "browse without allowing stage changes")
	flag.Parse()

	if *jobID == "" && !*jobsBoard {
		fmt.Fprintln(os.Stderr, "Usage: talentboard -job <id> | talentboard -jobs")
		os.Exit(2)
	}
	if *jobID != "" && *jobsBoard {
		fmt.Fprintln(os.Stderr, "-job and -jobs are mutually exclusive")
		os.Exit(2)
	}

	path := *configPath
	explicit := path != ""
	if !explicit {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		// If using default path and file doesn't exist, use empty config
		if !explicit && errors.Is(err, os.ErrNotExist) {
			cfg = config.Config{}
		} else {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	client := api.NewClient(cfg.ResolvedBaseURL(), cfg.ResolvedToken(), cfg.ResolvedTimeout())

	deps := tui.Deps{Client: client, Readonly: *readonly, ConfigPath: path}
	if *jobsBoard {
		board := api.NewJobBoard(client)
		deps.JobBoard = board
		deps.Engine = pipeline.NewEngine(board, pipeline.JobPipeline, cfg.ResolvedTimeout())
	} else {
		board := api.NewApplicationBoard(client, *jobID, api.Filters{
			City:        cfg.Filters.City,
			MinScore:    cfg.Filters.MinScore,
			HasMustHave: cfg.Filters.HasMustHave,
		}, *readonly)
		deps.AppBoard = board
		deps.Engine = pipeline.NewEngine(board, pipeline.ApplicationPipeline, cfg.ResolvedTimeout())
	}

	if jp := cfg.ResolvedJournalPath(); jp != "" {
		db, err := journal.Open(jp)
		if err != nil {
			// The board works fine without the activity journal.
			fmt.Fprintf(os.Stderr, "Warning: activity journal disabled: %v\n", err)
		} else {
			deps.Journal = db
			defer db.Close()
		}
	}

	app := tui.NewApp(cfg, deps)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
