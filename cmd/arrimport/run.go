package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/vmunix/arrimport/internal/config"
	"github.com/vmunix/arrimport/internal/history"
	"github.com/vmunix/arrimport/internal/importer"
	"github.com/vmunix/arrimport/internal/listfile"
	"github.com/vmunix/arrimport/internal/radarr"
	"github.com/vmunix/arrimport/internal/settings"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Import the movie list",
	Long: `Import the movie list into Radarr.

Each line is looked up, resolved to exactly one result, checked against the
library for duplicates, and added. Progress is saved after every line, so an
interrupted run resumes where it stopped.

Examples:
  arrimport run --file movies.txt
  arrimport run --dry-run
  arrimport run --auto-add --max-add 50`,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("file", "", "Input file (default from config)")
	runCmd.Flags().Bool("dry-run", false, "Simulate only; no movies are added")
	runCmd.Flags().Bool("auto-add", false, "Disable confirm-before-add prompts")
	runCmd.Flags().Bool("yes-all", false, "After the first confirmed add, assume yes for the rest")
	runCmd.Flags().Int("max-add", 0, "Stop after N successful adds (live mode only)")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	inputFile, _ := cmd.Flags().GetString("file")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	autoAdd, _ := cmd.Flags().GetBool("auto-add")
	yesAll, _ := cmd.Flags().GetBool("yes-all")
	maxAdd, _ := cmd.Flags().GetInt("max-add")
	if inputFile == "" {
		inputFile = cfg.Import.InputFile
	}
	if maxAdd == 0 {
		maxAdd = cfg.Import.MaxAdd
	}

	interactive := cfg.Match.Interactive && stdinIsTerminal()
	in := bufio.NewReader(os.Stdin)
	saved := settings.Load(cfg.Files.Settings)

	url, key, err := resolveConnection(cfg, saved, in, interactive)
	if err != nil {
		return err
	}

	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	mode := "live"
	if dryRun {
		mode = "dry-run"
	}
	log.Info("starting import", "mode", mode, "server", url,
		"api_key", settings.MaskKey(key), "input", inputFile)

	client := radarr.NewClient(url, key,
		radarr.WithTimeout(cfg.Server.Timeout.Std()),
		radarr.WithLogger(log))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	status, err := client.SystemStatus(ctx)
	if err != nil {
		return fmt.Errorf("preflight failed: %w", err)
	}
	log.Info("connected", "version", status.Version, "os", status.OSName)

	dest, err := selectDestination(ctx, client, saved, in, interactive, log)
	if err != nil {
		return err
	}

	monitored := cfg.Add.Monitored
	searchOnAdd := cfg.Add.SearchOnAdd
	if interactive {
		monitored = promptYesNo(in, "Set movies as Monitored?", monitored)
		searchOnAdd = promptYesNo(in, "Automatically search when added?", searchOnAdd)
	}
	log.Info("add behavior", "monitored", monitored, "search_on_add", searchOnAdd)

	next := &settings.Settings{
		ServerURL:          url,
		APIKey:             key,
		RootFolder:         dest.root,
		QualityProfileID:   dest.profileID,
		QualityProfileName: dest.profileName,
	}
	if err := next.Save(cfg.Files.Settings); err != nil {
		log.Warn("save settings", "error", err)
	}

	lines, err := listfile.Read(inputFile)
	if err != nil {
		return err
	}
	log.Info("input loaded", "entries", len(lines))

	var prompter importer.Prompter = autoPrompter{}
	if interactive {
		prompter = newTerminalPrompter()
	}

	var recorder importer.Recorder
	var finishRun func(importer.Stats)
	if store, err := history.Open(cfg.Files.History); err != nil {
		log.Warn("open history store", "error", err)
	} else {
		defer func() { _ = store.Close() }()
		runID, err := store.StartRun(ctx, mode, inputFile)
		if err != nil {
			log.Warn("record run start", "error", err)
		} else {
			recorder = store.Recorder(runID)
			finishRun = func(stats importer.Stats) {
				if err := store.FinishRun(ctx, runID, stats); err != nil {
					log.Warn("record run end", "error", err)
				}
			}
		}
	}

	resolver := importer.NewResolver(cfg.Match.StrictYear, interactive, cfg.Match.MaxChoices, prompter, log)
	state := importer.NewStateFile(cfg.Files.State)
	imp := importer.New(client, resolver, prompter, state, recorder, importer.Options{
		DryRun:      dryRun,
		ConfirmEach: cfg.Add.ConfirmEach,
		AutoAdd:     autoAdd,
		YesAll:      yesAll,
		MaxAdd:      maxAdd,
		Delay:       cfg.Import.Delay.Std(),
		Interactive: interactive,
		Add: radarr.AddOptions{
			RootFolder:       dest.root,
			QualityProfileID: dest.profileID,
			Monitored:        monitored,
			SearchOnAdd:      searchOnAdd,
		},
	}, log)

	var report *importer.Report
	if dryRun {
		report = &importer.Report{
			ServerURL:   url,
			RootFolder:  dest.root,
			ProfileID:   dest.profileID,
			Monitored:   monitored,
			SearchOnAdd: searchOnAdd,
		}
	}

	result, runErr := imp.Run(ctx, lines, report)
	if result != nil {
		if finishRun != nil {
			finishRun(result.Stats)
		}
		if dryRun && report != nil {
			if err := report.Write(cfg.Files.Report); err != nil {
				log.Warn("write dry-run report", "error", err)
			} else {
				log.Info("dry-run report written", "path", cfg.Files.Report, "would_add", len(report.Entries()))
			}
		}
		log.Info("summary " + result.Stats.Summary())
		if result.Halted {
			log.Info("halted at add cap; rerun to continue from the next line")
		}
	}

	if runErr != nil {
		if errors.Is(runErr, importer.ErrAborted) {
			return fmt.Errorf("aborted; rerun to resume")
		}
		return runErr
	}
	log.Info("import complete")
	return nil
}

// resolveConnection works out the server URL and API key from the --url
// flag, config, saved settings, and prompts, in that order of precedence.
func resolveConnection(cfg *config.Config, saved *settings.Settings, in *bufio.Reader, interactive bool) (url, key string, err error) {
	url = cfg.Server.URL
	if saved != nil && saved.ServerURL != "" {
		url = saved.ServerURL
	}
	switch {
	case serverURL != "":
		url = strings.TrimSuffix(strings.TrimSpace(serverURL), "/")
	case interactive:
		url = strings.TrimSuffix(promptWithDefault(in, "Radarr URL", url), "/")
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "", "", fmt.Errorf("radarr URL must start with http:// or https://")
	}

	key = cfg.Server.APIKey
	if key == "" && saved != nil && saved.APIKey != "" {
		if !interactive || promptYesNo(in, fmt.Sprintf("Reuse saved API key (%s)?", settings.MaskKey(saved.APIKey)), true) {
			key = saved.APIKey
		}
	}
	if key == "" {
		if !interactive {
			return "", "", fmt.Errorf("no API key: set server.api_key in config or run interactively")
		}
		key = readSecret("Enter Radarr API key (input hidden)")
		if key == "" {
			return "", "", fmt.Errorf("API key cannot be empty")
		}
	}
	return url, key, nil
}

// readSecret reads a line without echo, falling back to plain input when
// stdin is not a real terminal.
func readSecret(label string) string {
	fmt.Printf("%s: ", label)
	if b, err := term.ReadPassword(int(os.Stdin.Fd())); err == nil {
		fmt.Println()
		return strings.TrimSpace(string(b))
	}
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line)
}

type destination struct {
	root        string
	profileID   int64
	profileName string
}

// selectDestination picks the root folder and quality profile: saved values
// if reusable, otherwise fetched from the server and chosen interactively
// (first option when not interactive).
func selectDestination(ctx context.Context, client *radarr.Client, saved *settings.Settings, in *bufio.Reader, interactive bool, log *slog.Logger) (*destination, error) {
	if saved.HasDestination() {
		reuse := true
		if interactive {
			fmt.Printf("\nLast used destination:\n  Root folder     : %s\n  Quality profile : %s (id=%d)\n",
				saved.RootFolder, saved.QualityProfileName, saved.QualityProfileID)
			reuse = promptYesNo(in, "Reuse these settings?", true)
		}
		if reuse {
			log.Info("reusing destination", "root", saved.RootFolder, "profile", saved.QualityProfileName)
			return &destination{
				root:        saved.RootFolder,
				profileID:   saved.QualityProfileID,
				profileName: saved.QualityProfileName,
			}, nil
		}
	}

	var folders []radarr.RootFolder
	var profiles []radarr.QualityProfile
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		folders, err = client.RootFolders(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		profiles, err = client.QualityProfiles(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch destination options: %w", err)
	}
	if len(folders) == 0 {
		return nil, fmt.Errorf("radarr has no root folders configured")
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("radarr has no quality profiles configured")
	}

	sort.Slice(folders, func(i, j int) bool { return folders[i].Path < folders[j].Path })
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })

	folderIdx, profileIdx := 0, 0
	if interactive {
		rows := make([]table.Row, 0, len(folders))
		for i, f := range folders {
			rows = append(rows, table.Row{i, f.Path, formatSize(f.FreeSpace)})
		}
		fmt.Println(renderTable(table.Row{"#", "ROOT FOLDER", "FREE"}, rows, 1, 3))
		folderIdx = promptIndex(in, "root folder", len(folders))

		rows = rows[:0]
		for i, p := range profiles {
			rows = append(rows, table.Row{i, p.Name, p.ID})
		}
		fmt.Println(renderTable(table.Row{"#", "QUALITY PROFILE", "ID"}, rows, 1, 3))
		profileIdx = promptIndex(in, "quality profile", len(profiles))
	}

	dest := &destination{
		root:        folders[folderIdx].Path,
		profileID:   profiles[profileIdx].ID,
		profileName: profiles[profileIdx].Name,
	}
	log.Info("selected destination", "root", dest.root, "profile", dest.profileName, "profile_id", dest.profileID)
	return dest, nil
}

// newLogger builds the run logger: stdout, plus the configured log file in
// append mode.
func newLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	var level slog.Level
	switch cfg.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var w io.Writer = os.Stdout
	closeFn := func() {}
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = io.MultiWriter(os.Stdout, f)
		closeFn = func() { _ = f.Close() }
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
