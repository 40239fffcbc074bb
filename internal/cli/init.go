package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jakoblorz/drupal-init/internal/collector"
	"github.com/jakoblorz/drupal-init/internal/config"
	"github.com/jakoblorz/drupal-init/internal/filesystem"
	"github.com/jakoblorz/drupal-init/internal/git"
	"github.com/jakoblorz/drupal-init/internal/github"
	"github.com/jakoblorz/drupal-init/internal/logging"
	"github.com/jakoblorz/drupal-init/internal/manifest"
	"github.com/jakoblorz/drupal-init/internal/models"
	"github.com/jakoblorz/drupal-init/internal/prompt"
	"github.com/jakoblorz/drupal-init/internal/registry"
	"github.com/jakoblorz/drupal-init/internal/resolver"
	"github.com/jakoblorz/drupal-init/internal/tui"
	"github.com/jakoblorz/drupal-init/internal/workspace"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Option overrides a collaborator of the init command
type Option func(*dependencies)

type dependencies struct {
	prompter    prompt.Prompter
	httpClient  *http.Client
	platform    registry.PlatformDetector
	getenv      func(string) string
	currentUser func() (string, error)
	progress    ProgressFunc
}

// ProgressFunc runs work while reporting title to out
type ProgressFunc func(ctx context.Context, out io.Writer, title string, work func(context.Context) error) error

// WithPrompter replaces the terminal prompter
func WithPrompter(p prompt.Prompter) Option {
	return func(d *dependencies) {
		d.prompter = p
	}
}

// WithHTTPClient replaces the client used for repository requests
func WithHTTPClient(client *http.Client) Option {
	return func(d *dependencies) {
		d.httpClient = client
	}
}

// WithPlatformDetector replaces the local PHP probe
func WithPlatformDetector(detect registry.PlatformDetector) Option {
	return func(d *dependencies) {
		d.platform = detect
	}
}

// WithProgress replaces the spinner shown while metadata loads
func WithProgress(progress ProgressFunc) Option {
	return func(d *dependencies) {
		d.progress = progress
	}
}

// WithUserLookup replaces the environment and OS user lookups used for the
// vendor name default
func WithUserLookup(getenv func(string) string, currentUser func() (string, error)) Option {
	return func(d *dependencies) {
		d.getenv = getenv
		d.currentUser = currentUser
	}
}

// InitCommand handles the init command
type InitCommand struct {
	fs   filesystem.FileSystem
	git  git.GitClient
	gh   github.GitHubClient
	deps dependencies

	flags         collector.Flags
	configFile    string
	workingDir    string
	noInteraction bool
	verbose       bool
}

// NewInitCommand creates a new init command
func NewInitCommand(fs filesystem.FileSystem, gitClient git.GitClient, ghClient github.GitHubClient, options ...Option) *cobra.Command {
	cobraCmd := newInitCobraCommand(fs, gitClient, ghClient, options...)
	cobraCmd.Use = "init"
	return cobraCmd
}

func newInitCobraCommand(fs filesystem.FileSystem, gitClient git.GitClient, ghClient github.GitHubClient, options ...Option) *cobra.Command {
	cmd := &InitCommand{
		fs:  fs,
		git: gitClient,
		gh:  ghClient,
	}
	for _, option := range options {
		option(&cmd.deps)
	}

	cobraCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a Drupal composer.json in the current directory",
		Long: `Creates a composer.json file usable for Drupal projects in the current directory.

Every value can be given as a flag; missing values are asked for interactively.
With --no-interaction the defaults are used without asking.`,
		Example: `  # Interactive setup for Drupal 8 and later
  drupal-init

  # Drupal 7 project served from docroot/
  drupal-init --drupal-7 --web-dir docroot

  # Fully scripted
  drupal-init -n --name acme/site --core "drupal/core:^8.4" --require drupal/token`,
		Args: cobra.NoArgs,
		RunE: cmd.Run,
	}

	f := cobraCmd.Flags()
	f.StringVar(&cmd.flags.Name, "name", "", "Name of the package (vendor/name)")
	f.StringVar(&cmd.flags.Description, "description", "", "Description of the package")
	f.StringVar(&cmd.flags.Author, "author", "", "Author of the package (Name <email>)")
	f.StringVar(&cmd.flags.Type, "type", models.ProjectType, "Type of package (only project is supported)")
	f.StringVar(&cmd.flags.Homepage, "homepage", "", "Homepage of the package")
	f.StringArrayVar(&cmd.flags.Require, "require", nil,
		`Package to require with a version constraint, e.g. foo/bar:1.0.0 or foo/bar=1.0.0 or "foo/bar 1.0.0"`)
	f.StringArrayVar(&cmd.flags.RequireDev, "require-dev", nil,
		"Package to require for development with a version constraint")
	f.StringVarP(&cmd.flags.Core, "core", "c", "",
		`Drupal core or distribution with an optional version constraint, e.g. drupal/core or "drupal/core 8.4.0" (default drupal/core, drupal/drupal with --drupal-7)`)
	f.StringVarP(&cmd.flags.Stability, "stability", "s", "",
		"Minimum stability (stable, RC, beta, alpha or dev)")
	f.StringVarP(&cmd.flags.License, "license", "l", "", "License of the package")
	f.StringArrayVar(&cmd.flags.Repositories, "repository", nil,
		"Add a custom repository, either by URL or as a JSON object")
	f.StringVarP(&cmd.flags.WebDir, "web-dir", "w", "", "Public web directory (default web)")
	f.BoolVar(&cmd.flags.Legacy, "drupal-7", false, "Generate a Drupal 7 project")
	f.BoolVar(&cmd.flags.Legacy, "legacy", false, "Alias of --drupal-7")
	f.BoolVarP(&cmd.noInteraction, "no-interaction", "n", false, "Do not ask any interactive question")
	f.BoolVarP(&cmd.verbose, "verbose", "v", false, "Enable debug logging")
	f.StringVarP(&cmd.workingDir, "working-dir", "d", "", "Use the given directory as working directory")
	f.StringVar(&cmd.configFile, "config", "", fmt.Sprintf("Config file (default %s)", config.ConfigFilePath()))

	return cobraCmd
}

// configFlags maps flags onto config keys so they take precedence over
// the environment and the config file
var configFlags = map[string]string{
	"web-dir":   "defaults.web_dir",
	"stability": "defaults.stability",
	"core":      "defaults.core",
	"license":   "defaults.license",
	"author":    "defaults.author",
}

// Run executes the init command
func (c *InitCommand) Run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	v := viper.New()
	for flag, key := range configFlags {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}

	cfg, err := config.Load(v, c.configFile)
	if err != nil {
		return err
	}

	logger := logging.New(logging.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Output:  cmd.ErrOrStderr(),
		Verbose: c.verbose,
	})

	ws := workspace.New(c.fs)
	if err := ws.DetectAt(c.workingDir); err != nil {
		return fmt.Errorf("failed to detect workspace: %w", err)
	}
	gitClient := c.git.WithDir(ws.RootPath).WithContext(ctx)

	flags := c.resolveFlags(cfg)
	p := c.prompter(cmd)
	out := cmd.OutOrStdout()

	if p.IsInteractive() {
		_, _ = fmt.Fprintln(out, tui.RenderBanner(flags.Legacy))
		_, _ = fmt.Fprintln(out)
	}

	col := collector.New(p, ws, gitClient, logger, c.collectorOptions()...)

	opts, err := col.CollectMetadata(ctx, flags)
	if err != nil {
		return err
	}

	res, err := c.newResolver(cfg, opts, logger)
	if err != nil {
		return err
	}

	if p.IsInteractive() {
		if err := c.prefetch(ctx, cmd, res, opts, flags.Core, logger); err != nil {
			return err
		}
	}

	if err := col.CollectCore(ctx, opts, flags.Core, res); err != nil {
		return err
	}

	core, err := col.ResolveCore(ctx, opts, res)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", opts.Core.Name, err)
	}

	if err := col.CollectRequirements(ctx, opts, flags, res); err != nil {
		return err
	}

	doc := manifest.Build(opts, core)

	existing := c.existingManifest(ws, logger)
	if p.IsInteractive() {
		if err := c.confirm(ctx, out, p, doc, existing); err != nil {
			return err
		}
	} else if existing != "" {
		logger.Warn().Str("dir", ws.RootPath).Str("package", existing).Msg("overwriting existing composer.json")
	}

	path, err := manifest.NewWriter(c.fs).Write(ws.RootPath, doc)
	if err != nil {
		return err
	}
	logger.Info().Str("path", path).Msg("wrote manifest")

	if p.IsInteractive() {
		if err := c.offerVendorIgnore(ctx, p, ws, gitClient, logger); err != nil {
			return err
		}
	}

	summary, err := tui.RenderSummary(summaryData(path, opts, doc))
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, summary)

	return nil
}

// resolveFlags fills unset flags from the configuration
func (c *InitCommand) resolveFlags(cfg *config.Config) collector.Flags {
	flags := c.flags
	flags.WebDir = cfg.Defaults.WebDir
	flags.Stability = cfg.Defaults.Stability
	flags.Core = cfg.Defaults.Core
	flags.License = cfg.Defaults.License
	flags.Author = cfg.Defaults.Author

	if len(cfg.Repositories.Extra) > 0 {
		flags.Repositories = append(append([]string{}, cfg.Repositories.Extra...), c.flags.Repositories...)
	}

	mode := models.ModeModern
	if flags.Legacy {
		mode = models.ModeLegacy
	}
	flags.DrupalRepository = cfg.DrupalRepository(mode)

	return flags
}

func (c *InitCommand) prompter(cmd *cobra.Command) prompt.Prompter {
	if c.noInteraction {
		return prompt.NewNonInteractive()
	}
	if c.deps.prompter != nil {
		return c.deps.prompter
	}

	in, ok := cmd.InOrStdin().(*os.File)
	if !ok || !(isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd())) {
		return prompt.NewNonInteractive()
	}

	return prompt.NewHuhPrompter(in, cmd.OutOrStdout(),
		prompt.WithTheme(tui.NewHuhTheme()),
		prompt.WithAccessible(os.Getenv("ACCESSIBLE") != ""),
	)
}

func (c *InitCommand) collectorOptions() []collector.Option {
	var options []collector.Option
	if c.gh != nil {
		options = append(options, collector.WithGitHubClient(c.gh))
	}
	if c.deps.getenv != nil {
		options = append(options, collector.WithGetenv(c.deps.getenv))
	}
	if c.deps.currentUser != nil {
		options = append(options, collector.WithCurrentUser(c.deps.currentUser))
	}
	return options
}

func (c *InitCommand) newResolver(cfg *config.Config, opts *models.ProjectOptions, logger zerolog.Logger) (*resolver.Resolver, error) {
	fetcherOptions := []registry.FetcherOption{registry.WithLogger(logger)}
	if c.deps.httpClient != nil {
		fetcherOptions = append(fetcherOptions, registry.WithHTTPClient(c.deps.httpClient))
	}
	fetcherOptions = append(fetcherOptions,
		registry.WithTimeout(cfg.HTTP.Timeout),
		registry.WithCacheTTL(cfg.HTTP.CacheTTL),
	)

	repos, err := registry.NewRepositorySet(registry.SetOptions{
		Repositories: opts.Repositories,
		DrupalURL:    opts.DrupalRepository,
		PackagistURL: cfg.Repositories.Packagist,
		Fetcher:      registry.NewFetcher(fetcherOptions...),
		Platform:     c.deps.platform,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up repositories: %w", err)
	}

	return resolver.New(repos, logger), nil
}

// prefetch loads the core package metadata behind a spinner so the core
// questions answer from the cache
func (c *InitCommand) prefetch(ctx context.Context, cmd *cobra.Command, res *resolver.Resolver, opts *models.ProjectOptions, flagCore string, logger zerolog.Logger) error {
	name := opts.Mode.DefaultCorePackage()
	if req, err := models.ParseRequirement(flagCore); err == nil && req.Name != "" {
		name = req.Name
	}

	progress := c.deps.progress
	if progress == nil {
		progress = tui.RunWithSpinner
	}

	err := progress(ctx, cmd.ErrOrStderr(), "Loading "+name+" metadata", func(ctx context.Context) error {
		_, err := res.Recommend(ctx, name, opts.Stability)
		return err
	})
	if errors.Is(err, models.ErrAborted) {
		return err
	}
	if err != nil {
		logger.Debug().Err(err).Str("package", name).Msg("prefetch failed")
	}
	return nil
}

// existingManifest returns the package name of the composer.json about to be
// replaced, or "" when there is none. Unreadable manifests are reported by path.
func (c *InitCommand) existingManifest(ws *workspace.Workspace, logger zerolog.Logger) string {
	if !ws.ManifestExists(manifest.FileName) {
		return ""
	}

	path := filepath.Join(ws.RootPath, manifest.FileName)
	doc, err := manifest.Read(c.fs, path)
	if err != nil || doc.Name == "" {
		logger.Debug().Err(err).Str("path", path).Msg("existing manifest has no readable name")
		return path
	}
	return doc.Name
}

func (c *InitCommand) confirm(ctx context.Context, out io.Writer, p prompt.Prompter, doc *manifest.Document, existing string) error {
	data, err := manifest.Encode(doc)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out)
	_, _ = out.Write(data)
	_, _ = fmt.Fprintln(out)
	if existing != "" {
		_, _ = fmt.Fprintln(out, tui.ErrorStyle.Render(
			fmt.Sprintf("The composer.json of %s already exists and will be overwritten.", existing)))
	}

	ok, err := p.AskConfirmation(ctx, "Do you confirm generation", true)
	if err != nil {
		return err
	}
	if !ok {
		return models.ErrAborted
	}
	return nil
}

// offerVendorIgnore asks to ignore /vendor/ in git checkouts that do not
// ignore it yet
func (c *InitCommand) offerVendorIgnore(ctx context.Context, p prompt.Prompter, ws *workspace.Workspace, gitClient git.GitClient, logger zerolog.Logger) error {
	isRepo, err := gitClient.IsGitRepo()
	if err != nil || !isRepo {
		return nil
	}

	ignored, err := ws.HasVendorIgnore()
	if err != nil {
		logger.Debug().Err(err).Msg("failed to read .gitignore")
		return nil
	}
	if ignored {
		return nil
	}

	add, err := p.AskConfirmation(ctx, "Would you like the vendor directory added to your .gitignore", true)
	if err != nil || !add {
		return err
	}

	if err := ws.AddVendorIgnore(); err != nil {
		return fmt.Errorf("failed to update .gitignore: %w", err)
	}
	return nil
}

func summaryData(path string, opts *models.ProjectOptions, doc *manifest.Document) tui.SummaryData {
	repos := make([]string, 0, len(doc.Repositories))
	for _, r := range doc.Repositories {
		if r.URL != "" {
			repos = append(repos, r.URL)
		} else {
			repos = append(repos, r.Type)
		}
	}

	mode := "Drupal 8+"
	if opts.Mode == models.ModeLegacy {
		mode = "Drupal 7"
	}

	return tui.SummaryData{
		Path:         path,
		Name:         doc.Name,
		Mode:         mode,
		Core:         opts.Core.String(),
		WebDir:       doc.Extra.DrupalComposerHelper.WebPrefix,
		Stability:    doc.MinimumStability,
		Require:      doc.Require,
		RequireDev:   doc.RequireDev,
		Repositories: repos,
	}
}
