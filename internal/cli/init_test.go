package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/jakoblorz/drupal-init/internal/config"
	"github.com/jakoblorz/drupal-init/internal/filesystem"
	"github.com/jakoblorz/drupal-init/internal/git"
	"github.com/jakoblorz/drupal-init/internal/github"
	"github.com/jakoblorz/drupal-init/internal/models"
	"github.com/jakoblorz/drupal-init/internal/prompt"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const siteDir = "/srv/MySite"

type cliFixture struct {
	fs        *filesystem.MockFileSystem
	git       *git.MockGitClient
	gh        *github.MockClient
	transport *httpmock.MockTransport
	stdout    bytes.Buffer
	stderr    bytes.Buffer
	progress  []string
}

func metadata(name string, versions ...string) string {
	entries := make([]string, 0, len(versions))
	for _, v := range versions {
		entries = append(entries, fmt.Sprintf(`{"name": %q, "version": %q}`, name, v))
	}
	return fmt.Sprintf(`{"packages": {%q: [%s]}}`, name, strings.Join(entries, ", "))
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	fs := filesystem.NewMockFileSystem()
	fs.SetCurrentDir(siteDir)

	gitClient := git.NewMockGitClient().
		SetConfig(git.KeyGitHubUser, "JaneDoe").
		SetConfig(git.KeyUserName, "Test User").
		SetConfig(git.KeyUserEmail, "testuser@example.com")

	transport := httpmock.NewMockTransport()
	transport.RegisterNoResponder(httpmock.NewStringResponder(http.StatusNotFound, ""))

	for _, index := range []string{"7", "8"} {
		transport.RegisterResponder(http.MethodGet, "https://packages.drupal.org/"+index+"/packages.json",
			httpmock.NewStringResponder(http.StatusOK, `{"metadata-url": "/files/packages/`+index+`/p2/%package%.json"}`))
	}
	transport.RegisterResponder(http.MethodGet, "https://packages.drupal.org/files/packages/8/p2/drupal/core.json",
		httpmock.NewStringResponder(http.StatusOK, metadata("drupal/core", "8.5.0-beta1", "8.4.2", "8.4.0")))
	transport.RegisterResponder(http.MethodGet, "https://packages.drupal.org/files/packages/8/p2/drupal/token.json",
		httpmock.NewStringResponder(http.StatusOK, metadata("drupal/token", "1.1.1", "1.1.0")))
	transport.RegisterResponder(http.MethodGet, "https://packages.drupal.org/files/packages/7/p2/drupal/drupal.json",
		httpmock.NewStringResponder(http.StatusOK, metadata("drupal/drupal", "7.59", "7.58")))
	transport.RegisterResponder(http.MethodGet, "https://repo.packagist.org/packages.json",
		httpmock.NewStringResponder(http.StatusOK, `{}`))
	transport.RegisterResponder(http.MethodGet, "https://repo.packagist.org/p2/drush/drush.json",
		httpmock.NewStringResponder(http.StatusOK, metadata("drush/drush", "9.2.3", "9.2.1", "8.1.16")))

	return &cliFixture{
		fs:        fs,
		git:       gitClient,
		gh:        github.NewMockClient(),
		transport: transport,
	}
}

func (f *cliFixture) run(p prompt.Prompter, args ...string) error {
	options := []Option{
		WithHTTPClient(&http.Client{Transport: f.transport}),
		WithPlatformDetector(func(context.Context) (string, map[string]string) {
			return "7.1.16", map[string]string{"json": "7.1.16", "gd": "7.1.16"}
		}),
		WithUserLookup(
			func(string) string { return "" },
			func() (string, error) { return "", fmt.Errorf("no user") },
		),
		WithProgress(func(ctx context.Context, _ io.Writer, title string, work func(context.Context) error) error {
			f.progress = append(f.progress, title)
			return work(ctx)
		}),
	}
	if p != nil {
		options = append(options, WithPrompter(p))
	}

	cmd := NewRootCommand(f.fs, f.git, f.gh, options...)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(&f.stdout)
	cmd.SetErr(&f.stderr)
	cmd.SetArgs(args)

	return cmd.Execute()
}

func (f *cliFixture) manifest(t *testing.T, dir string) gjson.Result {
	t.Helper()

	data, err := f.fs.ReadFile(dir + "/composer.json")
	require.NoError(t, err)
	require.True(t, gjson.ValidBytes(data))
	return gjson.ParseBytes(data)
}

func scenarioArgs(extra ...string) []string {
	return append([]string{
		"-n",
		"--name", "test/test",
		"--author", "Test User <testuser@example.com>",
		"--description", "Test Description",
		"--stability", "dev",
		"--web-dir", "web",
	}, extra...)
}

func TestInit_ModernScenario(t *testing.T) {
	f := newCLIFixture(t)

	err := f.run(nil, scenarioArgs("--core", "drupal/core ^8.4")...)
	require.NoError(t, err)

	json := f.manifest(t, siteDir)
	assert.Equal(t, "test/test", json.Get("name").String())
	assert.Equal(t, "project", json.Get("type").String())
	assert.Equal(t, "dev", json.Get("minimum-stability").String())
	assert.Equal(t, "https://packages.drupal.org/8", json.Get("repositories.0.url").String())
	assert.Equal(t, "type:drupal-core", json.Get("extra.installer-paths.web/core.0").String())
	assert.False(t, json.Get("extra.preserve-paths").Exists())
	assert.Equal(t, "^8.4", json.Get(`require.drupal/core`).String())
	assert.Equal(t, "^1.0", json.Get(`require.hussainweb/drupal-composer-helper`).String())
	assert.Equal(t, "Test User", json.Get("authors.0.name").String())

	assert.Contains(t, f.stdout.String(), "Wrote "+siteDir+"/composer.json")
	assert.Empty(t, f.progress)
	assert.Equal(t, 0, f.gh.Calls())

	data, err := f.fs.ReadFile(siteDir + "/composer.json")
	require.NoError(t, err)
	snaps.MatchSnapshot(t, string(data))
}

func TestInit_LegacyScenario(t *testing.T) {
	for _, flag := range []string{"--drupal-7", "--legacy"} {
		t.Run(flag, func(t *testing.T) {
			f := newCLIFixture(t)

			err := f.run(nil, scenarioArgs(flag, "--core", "drupal/drupal ~7.0")...)
			require.NoError(t, err)

			json := f.manifest(t, siteDir)
			assert.Equal(t, "https://packages.drupal.org/7", json.Get("repositories.0.url").String())
			assert.Equal(t, "type:drupal-core", json.Get("extra.installer-paths.web/.0").String())
			assert.False(t, json.Get("extra.installer-paths.web/core").Exists())
			assert.Len(t, json.Get("extra.preserve-paths").Array(), 6)
			assert.Equal(t, "~7.0", json.Get(`require.drupal/drupal`).String())
			assert.False(t, json.Get(`require.drupal/core`).Exists())
			assert.Equal(t, "8.*", json.Get(`conflict.drupal/core`).String())
		})
	}
}

func TestInit_InitSubcommand(t *testing.T) {
	f := newCLIFixture(t)

	err := f.run(nil, append([]string{"init"}, scenarioArgs("--core", "drupal/core ^8.4")...)...)
	require.NoError(t, err)
	assert.True(t, f.fs.Exists(siteDir+"/composer.json"))
}

func TestInit_HelpShowsConfigLocation(t *testing.T) {
	f := newCLIFixture(t)

	require.NoError(t, f.run(nil, "--help"))
	assert.Contains(t, f.stdout.String(), "--config")
	assert.Contains(t, f.stdout.String(), config.ConfigFilePath())
	assert.False(t, f.fs.Exists(siteDir+"/composer.json"))
}

func TestInit_RecommendsCoreAndRequirements(t *testing.T) {
	f := newCLIFixture(t)

	err := f.run(nil, "-n", "--stability", "stable",
		"--require", "drupal/token",
		"--require", "php:>=7.0",
		"--require-dev", "drush/drush")
	require.NoError(t, err)

	json := f.manifest(t, siteDir)
	assert.Equal(t, "janedoe/my-site", json.Get("name").String())
	assert.Equal(t, "stable", json.Get("minimum-stability").String())
	assert.Equal(t, "^8.4", json.Get(`require.drupal/core`).String())
	assert.Equal(t, "^1.1", json.Get(`require.drupal/token`).String())
	assert.Equal(t, ">=7.0", json.Get(`require.php`).String())
	assert.Equal(t, "^9.2", json.Get(`require-dev.drush/drush`).String())
	assert.Equal(t, "testuser@example.com", json.Get("authors.0.email").String())

	calls := f.transport.GetCallCountInfo()
	assert.Equal(t, 1, calls["GET https://packages.drupal.org/8/packages.json"])
	assert.Equal(t, 1, calls["GET https://packages.drupal.org/files/packages/8/p2/drupal/core.json"])
}

func TestInit_Interactive(t *testing.T) {
	f := newCLIFixture(t)

	p := prompt.NewScripted(
		"",                 // package name
		"My Drupal site",   // description
		"",                 // author
		"stable",           // minimum stability
		"GPL-2.0-or-later", // license
		"docroot",          // web dir
		"",                 // core package
		"",                 // core version
		"yes",              // define require
		"drupal/tokn",      // unknown package, asked again
		"drupal/token",
		"", // recommended constraint
		"", // done
		"no",
		"", // confirm generation
		"", // add vendor to .gitignore
	)

	err := f.run(p)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Remaining())
	assert.Equal(t, []string{"drupal/tokn"}, p.Rejected())

	assert.Equal(t, []string{
		"Package name (<vendor>/<name>) [janedoe/my-site]: ",
		"Description: ",
		"Author (n to skip) [Test User <testuser@example.com>]: ",
		"Minimum Stability [dev]: ",
		"License: ",
		"Public web directory [web]: ",
		"Drupal core or distribution [drupal/core]: ",
		"Version for drupal/core [^8.4]: ",
		"Would you like to define your dependencies (require) now? [yes]: ",
		"Search for a package: ",
		"Search for a package: ",
		"Enter the version constraint to require (or leave blank to use the latest version) [^1.1]: ",
		"Search for a package: ",
		"Would you like to define your dev dependencies (require-dev) now? [yes]: ",
		"Do you confirm generation [yes]: ",
		"Would you like the vendor directory added to your .gitignore [yes]: ",
	}, p.Questions())

	assert.Equal(t, []string{"Loading drupal/core metadata"}, f.progress)

	json := f.manifest(t, siteDir)
	assert.Equal(t, "janedoe/my-site", json.Get("name").String())
	assert.Equal(t, "My Drupal site", json.Get("description").String())
	assert.Equal(t, "GPL-2.0-or-later", json.Get("license").String())
	assert.Equal(t, "docroot", json.Get("extra.drupal-composer-helper.web-prefix").String())
	assert.Equal(t, "^8.4", json.Get(`require.drupal/core`).String())
	assert.Equal(t, "^1.1", json.Get(`require.drupal/token`).String())

	out := f.stdout.String()
	assert.Contains(t, out, "Welcome to the Drupal composer.json generator")
	assert.Contains(t, out, `"name": "janedoe/my-site"`)

	ignore, err := f.fs.ReadFile(siteDir + "/.gitignore")
	require.NoError(t, err)
	assert.Equal(t, "/vendor/\n", string(ignore))
}

func TestInit_InteractiveSkipsVendorQuestion(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *cliFixture)
	}{
		{
			name: "already ignored",
			setup: func(f *cliFixture) {
				f.fs.AddFile(siteDir+"/.gitignore", []byte("/vendor/\n"))
			},
		},
		{
			name: "not a git repository",
			setup: func(f *cliFixture) {
				f.git.SetIsRepo(false)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCLIFixture(t)
			tt.setup(f)

			p := prompt.NewScripted("", "", "", "", "", "", "", "", "no", "no", "yes")
			require.NoError(t, f.run(p, "--core", "drupal/core ^8.4"))
			assert.Equal(t, 0, p.Remaining())
			assert.NotContains(t, p.Questions(), "Would you like the vendor directory added to your .gitignore [yes]: ")
		})
	}
}

func TestInit_DeclinedGenerationWritesNothing(t *testing.T) {
	f := newCLIFixture(t)
	f.fs.AddFile(siteDir+"/composer.json", []byte(`{"name": "old/site"}`))

	p := prompt.NewScripted("", "", "", "", "", "", "", "", "no", "no", "no")
	err := f.run(p, "--core", "drupal/core ^8.4")
	require.ErrorIs(t, err, models.ErrAborted)

	data, err := f.fs.ReadFile(siteDir + "/composer.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "old/site"}`, string(data))
	assert.Contains(t, f.stdout.String(), "The composer.json of old/site already exists")
	assert.False(t, f.fs.Exists(siteDir+"/.gitignore"))
}

func TestInit_OverwritesExistingManifest(t *testing.T) {
	f := newCLIFixture(t)
	f.fs.AddFile(siteDir+"/composer.json", []byte(`{"name": "old/site"}`))

	require.NoError(t, f.run(nil, scenarioArgs("--core", "drupal/core ^8.4")...))

	assert.Equal(t, "test/test", f.manifest(t, siteDir).Get("name").String())
	assert.Contains(t, f.stderr.String(), "overwriting existing composer.json")
	assert.Contains(t, f.stderr.String(), "old/site")
}

func TestInit_WorkingDir(t *testing.T) {
	f := newCLIFixture(t)
	f.fs.AddDir(siteDir + "/sites/AcmePortal")

	err := f.run(nil, "-n", "-d", "sites/AcmePortal", "--core", "drupal/core ^8.4")
	require.NoError(t, err)

	json := f.manifest(t, siteDir+"/sites/AcmePortal")
	assert.Equal(t, "janedoe/acme-portal", json.Get("name").String())
	assert.False(t, f.fs.Exists(siteDir+"/composer.json"))
	assert.Equal(t, siteDir+"/sites/AcmePortal", f.git.Dir())

	err = f.run(nil, "-n", "-d", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestInit_EnvironmentDefaults(t *testing.T) {
	f := newCLIFixture(t)
	t.Setenv("DRUPAL_INIT_DEFAULTS_WEB_DIR", "docroot")
	t.Setenv("DRUPAL_INIT_DEFAULTS_LICENSE", "MIT")

	require.NoError(t, f.run(nil, "-n", "--core", "drupal/core ^8.4"))
	json := f.manifest(t, siteDir)
	assert.Equal(t, "docroot", json.Get("extra.drupal-composer-helper.web-prefix").String())
	assert.Equal(t, "MIT", json.Get("license").String())

	require.NoError(t, f.run(nil, "-n", "--core", "drupal/core ^8.4", "-w", "public"))
	json = f.manifest(t, siteDir)
	assert.Equal(t, "public", json.Get("extra.drupal-composer-helper.web-prefix").String())
}

func TestInit_CustomRepositories(t *testing.T) {
	f := newCLIFixture(t)
	f.transport.RegisterResponder(http.MethodGet, "https://satis.example.org/packages.json",
		httpmock.NewStringResponder(http.StatusOK, `{}`))
	f.transport.RegisterResponder(http.MethodGet, "https://satis.example.org/p2/acme/theme.json",
		httpmock.NewStringResponder(http.StatusOK, metadata("acme/theme", "2.0.1")))

	err := f.run(nil, "-n", "--core", "drupal/core ^8.4",
		"--repository", "https://satis.example.org",
		"--repository", `{"type": "vcs", "url": "https://github.com/acme/fork"}`,
		"--require", "acme/theme")
	require.NoError(t, err)

	json := f.manifest(t, siteDir)
	repos := json.Get("repositories").Array()
	require.Len(t, repos, 3)
	assert.Equal(t, "https://satis.example.org", repos[0].Get("url").String())
	assert.Equal(t, "vcs", repos[1].Get("type").String())
	assert.Equal(t, "https://packages.drupal.org/8", repos[2].Get("url").String())
	assert.Equal(t, "^2.0", json.Get(`require.acme/theme`).String())
}

func TestInit_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		err  error
	}{
		{
			name: "invalid name",
			args: []string{"-n", "--name", "Invalid Name"},
			err:  models.ErrInvalidInput,
		},
		{
			name: "unsupported type",
			args: []string{"-n", "--type", "library"},
			err:  models.ErrInvalidInput,
		},
		{
			name: "invalid stability",
			args: []string{"-n", "--stability", "nightly"},
			err:  models.ErrInvalidInput,
		},
		{
			name: "unknown core",
			args: []string{"-n", "--core", "acme/missing"},
			err:  models.ErrPackageNotFound,
		},
		{
			name: "no candidate for requirement",
			args: []string{"-n", "--core", "drupal/core ^8.4", "--require", "acme/missing"},
			err:  models.ErrPackageNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCLIFixture(t)

			err := f.run(nil, tt.args...)
			require.ErrorIs(t, err, tt.err)
			assert.False(t, f.fs.Exists(siteDir+"/composer.json"))
		})
	}
}

func TestInit_WriteFailure(t *testing.T) {
	f := newCLIFixture(t)
	f.fs.RenameError = fmt.Errorf("disk full")

	err := f.run(nil, scenarioArgs("--core", "drupal/core ^8.4")...)
	require.ErrorIs(t, err, models.ErrWrite)
	assert.False(t, f.fs.Exists(siteDir+"/composer.json"))
}
