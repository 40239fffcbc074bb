package collector

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/drupal-init/internal/git"
	"github.com/jakoblorz/drupal-init/internal/github"
	"github.com/jakoblorz/drupal-init/internal/models"
	"github.com/jakoblorz/drupal-init/internal/prompt"
	"github.com/jakoblorz/drupal-init/internal/workspace"
	"github.com/rs/zerolog"
)

// Flags are the raw command line values. Every value is used as the default
// of the matching question.
type Flags struct {
	Name         string
	Description  string
	Author       string
	Type         string
	Homepage     string
	Core         string
	Stability    string
	License      string
	WebDir       string
	Require      []string
	RequireDev   []string
	Repositories []string
	Legacy       bool

	// DrupalRepository overrides the packages.drupal.org index of the mode
	DrupalRepository string
}

// RequirementResolver checks packages and recommends version constraints
type RequirementResolver interface {
	CheckPackage(ctx context.Context, name string) error
	Recommend(ctx context.Context, name string, stability models.Stability) (models.PackageRequirement, error)
	ResolveRequirements(ctx context.Context, reqs []models.PackageRequirement, stability models.Stability) ([]models.PackageRequirement, error)
}

// Collector gathers ProjectOptions from flags and prompts
type Collector struct {
	prompter  prompt.Prompter
	workspace *workspace.Workspace
	git       git.GitClient
	github    github.GitHubClient
	logger    zerolog.Logger

	getenv      func(string) string
	currentUser func() (string, error)
}

// Option configures a Collector
type Option func(*Collector)

// WithGitHubClient enables the GitHub login as a vendor name source
func WithGitHubClient(client github.GitHubClient) Option {
	return func(c *Collector) {
		c.github = client
	}
}

// WithGetenv replaces the environment lookup
func WithGetenv(getenv func(string) string) Option {
	return func(c *Collector) {
		c.getenv = getenv
	}
}

// WithCurrentUser replaces the OS user lookup
func WithCurrentUser(fn func() (string, error)) Option {
	return func(c *Collector) {
		c.currentUser = fn
	}
}

// New creates a new Collector
func New(p prompt.Prompter, ws *workspace.Workspace, gitClient git.GitClient, logger zerolog.Logger, options ...Option) *Collector {
	c := &Collector{
		prompter:    p,
		workspace:   ws,
		git:         gitClient,
		logger:      logger,
		getenv:      os.Getenv,
		currentUser: osUsername,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// CollectMetadata gathers the project fields that need no repository access:
// name, description, author, stability, license, web dir and repositories.
func (c *Collector) CollectMetadata(ctx context.Context, flags Flags) (*models.ProjectOptions, error) {
	mode := models.ModeModern
	if flags.Legacy {
		mode = models.ModeLegacy
	}
	opts := models.NewProjectOptions(mode)

	if flags.Type != "" && flags.Type != models.ProjectType {
		return nil, fmt.Errorf("%w: unsupported package type %q, only %q can be generated",
			models.ErrInvalidInput, flags.Type, models.ProjectType)
	}
	if flags.DrupalRepository != "" {
		opts.DrupalRepository = flags.DrupalRepository
	}

	repos, err := parseRepositories(flags.Repositories)
	if err != nil {
		return nil, err
	}
	opts.Repositories = repos

	gitConfig, err := c.git.WithContext(ctx).ListConfig()
	if err != nil {
		c.logger.Debug().Err(err).Msg("git configuration unavailable")
		gitConfig = map[string]string{}
	}

	if opts.Name, err = c.askName(ctx, flags.Name, gitConfig); err != nil {
		return nil, err
	}

	if opts.Description, err = c.prompter.Ask(ctx, "Description", flags.Description); err != nil {
		return nil, err
	}

	if opts.Author, err = c.askAuthor(ctx, flags.Author, gitConfig); err != nil {
		return nil, err
	}

	if opts.Stability, err = c.askStability(ctx, flags.Stability); err != nil {
		return nil, err
	}

	if opts.License, err = c.prompter.Ask(ctx, "License", flags.License); err != nil {
		return nil, err
	}

	webDir := flags.WebDir
	if webDir == "" {
		webDir = models.DefaultWebDir
	}
	if webDir, err = c.prompter.AskValidated(ctx, "Public web directory", validateWebDir, webDir); err != nil {
		return nil, err
	}
	opts.WebDir = webDir

	opts.Homepage = strings.TrimSpace(flags.Homepage)

	c.logger.Debug().
		Str("name", opts.Name).
		Str("mode", string(opts.Mode)).
		Str("stability", string(opts.Stability)).
		Str("webDir", opts.WebDir).
		Int("repositories", len(opts.Repositories)).
		Msg("collected project metadata")

	return opts, nil
}

func (c *Collector) askName(ctx context.Context, flagName string, gitConfig map[string]string) (string, error) {
	name := flagName
	if name == "" {
		name = c.defaultName(ctx, gitConfig)
	} else if err := models.ValidatePackageName(name); err != nil {
		return "", err
	}

	return c.prompter.AskValidated(ctx, "Package name (<vendor>/<name>)", validateName, name)
}

// defaultName builds vendor/project from the directory name and the first
// vendor source that yields a value
func (c *Collector) defaultName(ctx context.Context, gitConfig map[string]string) string {
	project := c.workspace.DefaultProjectName()
	if project == "" {
		project = "project"
	}

	vendor := c.vendor(ctx, gitConfig)
	if vendor == "" {
		return project + "/" + project
	}

	name := workspace.PackageName(vendor, project)
	if models.ValidatePackageName(name) != nil {
		return project + "/" + project
	}
	return name
}

func (c *Collector) vendor(ctx context.Context, gitConfig map[string]string) string {
	if v := strings.TrimSpace(gitConfig[git.KeyGitHubUser]); v != "" {
		return v
	}

	if c.github != nil {
		u, err := c.github.AuthenticatedUser(ctx)
		if err != nil {
			c.logger.Debug().Err(err).Msg("GitHub login unavailable")
		} else if u != nil && u.Login != "" {
			return u.Login
		}
	}

	for _, key := range []string{"USERNAME", "USER"} {
		if v := strings.TrimSpace(c.getenv(key)); v != "" {
			return v
		}
	}

	if c.currentUser != nil {
		if v, err := c.currentUser(); err == nil && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}

	return ""
}

func (c *Collector) askAuthor(ctx context.Context, flagAuthor string, gitConfig map[string]string) (*models.Author, error) {
	author := flagAuthor
	if author == "" && gitConfig[git.KeyUserName] != "" && gitConfig[git.KeyUserEmail] != "" {
		author = fmt.Sprintf("%s <%s>", gitConfig[git.KeyUserName], gitConfig[git.KeyUserEmail])
		// Only an explicit --author is fatal when it does not parse.
		if _, err := models.ParseAuthor(author); err != nil {
			c.logger.Debug().Err(err).Msg("ignoring author from git configuration")
			author = ""
		}
	}

	answer, err := c.prompter.AskValidated(ctx, "Author (n to skip)", validateAuthor, author)
	if err != nil {
		return nil, err
	}
	if answer == "" {
		return nil, nil
	}

	return models.ParseAuthor(answer)
}

func (c *Collector) askStability(ctx context.Context, flagStability string) (models.Stability, error) {
	stability := flagStability
	if stability == "" {
		stability = string(models.DefaultStability)
	}

	answer, err := c.prompter.AskValidated(ctx, "Minimum Stability", validateStability, stability)
	if err != nil {
		return "", err
	}
	return models.Stability(answer), nil
}

// CollectCore asks for the core package or distribution and checks that the
// repository set knows it. A constraint given with --core is kept.
func (c *Collector) CollectCore(ctx context.Context, opts *models.ProjectOptions, flagCore string, res RequirementResolver) error {
	core := models.PackageRequirement{Name: opts.Mode.DefaultCorePackage()}
	if strings.TrimSpace(flagCore) != "" {
		parsed, err := models.ParseRequirement(flagCore)
		if err != nil {
			return err
		}
		core = parsed
	}

	name, err := c.prompter.AskValidated(ctx, "Drupal core or distribution", packageValidator(ctx, res), core.Name)
	if err != nil {
		return err
	}

	if name != core.Name {
		core = models.PackageRequirement{Name: name}
	}
	opts.Core = core
	return nil
}

// ResolveCore recommends a constraint for the core package unless one was
// given and lets the operator override it.
func (c *Collector) ResolveCore(ctx context.Context, opts *models.ProjectOptions, res RequirementResolver) (models.PackageRequirement, error) {
	core := opts.Core
	if !core.HasConstraint() {
		recommended, err := res.Recommend(ctx, core.Name, opts.Stability)
		if err != nil {
			return models.PackageRequirement{}, err
		}
		core = recommended
	}

	constraint, err := c.prompter.AskValidated(ctx, "Version for "+core.Name, validateConstraint, core.Constraint)
	if err != nil {
		return models.PackageRequirement{}, err
	}

	core.Constraint = constraint
	opts.Core = core
	return core, nil
}

// CollectRequirements fills Require and RequireDev. Flag values are resolved
// as given; otherwise an interactive operator may enter packages one by one.
func (c *Collector) CollectRequirements(ctx context.Context, opts *models.ProjectOptions, flags Flags, res RequirementResolver) error {
	var err error

	opts.Require, err = c.determineRequirements(ctx, opts, flags.Require, res,
		"Would you like to define your dependencies (require) now?")
	if err != nil {
		return err
	}

	opts.RequireDev, err = c.determineRequirements(ctx, opts, flags.RequireDev, res,
		"Would you like to define your dev dependencies (require-dev) now?")
	if err != nil {
		return err
	}

	return nil
}

func (c *Collector) determineRequirements(ctx context.Context, opts *models.ProjectOptions, entries []string, res RequirementResolver, question string) ([]models.PackageRequirement, error) {
	if len(entries) > 0 {
		reqs, err := models.ParseRequirements(entries)
		if err != nil {
			return nil, err
		}
		return res.ResolveRequirements(ctx, reqs, opts.Stability)
	}

	if !c.prompter.IsInteractive() {
		return nil, nil
	}

	define, err := c.prompter.AskConfirmation(ctx, question, true)
	if err != nil || !define {
		return nil, err
	}

	var reqs []models.PackageRequirement
	for {
		answer, err := c.prompter.AskValidated(ctx, "Search for a package", requirementValidator(ctx, res), "")
		if err != nil {
			return nil, err
		}
		if answer == "" {
			return reqs, nil
		}

		req, err := models.ParseRequirement(answer)
		if err != nil {
			return nil, err
		}

		if !req.HasConstraint() {
			recommended, err := res.Recommend(ctx, req.Name, opts.Stability)
			if err != nil {
				return nil, err
			}

			constraint, err := c.prompter.Ask(ctx,
				"Enter the version constraint to require (or leave blank to use the latest version)",
				recommended.Constraint)
			if err != nil {
				return nil, err
			}
			req.Constraint = constraint
		}

		c.logger.Debug().Str("package", req.Name).Str("constraint", req.Constraint).Msg("added requirement")
		reqs = append(reqs, req)
	}
}

func parseRepositories(entries []string) ([]models.RepositorySpec, error) {
	repos := make([]models.RepositorySpec, 0, len(entries))
	for _, entry := range entries {
		spec, err := models.ParseRepositorySpec(entry)
		if err != nil {
			return nil, err
		}
		repos = append(repos, spec)
	}
	return repos, nil
}

// packageValidator accepts names some repository knows; unknown names are
// invalid input so the operator is asked again
func packageValidator(ctx context.Context, res RequirementResolver) prompt.Validator {
	return func(answer string) (string, error) {
		name := strings.ToLower(strings.TrimSpace(answer))
		if name == "" {
			return "", fmt.Errorf("%w: a package name is required", models.ErrInvalidInput)
		}

		if err := res.CheckPackage(ctx, name); err != nil {
			if errors.Is(err, models.ErrPackageNotFound) {
				return "", fmt.Errorf("%w: %w", models.ErrInvalidInput, err)
			}
			return "", err
		}
		return name, nil
	}
}

func requirementValidator(ctx context.Context, res RequirementResolver) prompt.Validator {
	check := packageValidator(ctx, res)
	return func(answer string) (string, error) {
		if strings.TrimSpace(answer) == "" {
			return "", nil
		}

		req, err := models.ParseRequirement(answer)
		if err != nil {
			return "", err
		}
		if _, err := check(req.Name); err != nil {
			return "", err
		}
		return req.String(), nil
	}
}

func osUsername() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	// Windows reports DOMAIN\user
	return filepath.Base(strings.ReplaceAll(u.Username, `\`, "/")), nil
}
