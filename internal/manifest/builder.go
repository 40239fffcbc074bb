package manifest

import (
	"github.com/jakoblorz/drupal-init/internal/models"
)

// CoreInstallerType is the installer type of Drupal core packages
const CoreInstallerType = "type:drupal-core"

// baseline is the fixed dependency set of a mode. The core requirement is
// inserted between before and after.
type baseline struct {
	before     []models.PackageRequirement
	after      []models.PackageRequirement
	requireDev []models.PackageRequirement
	conflict   map[string]string
}

func req(name, constraint string) models.PackageRequirement {
	return models.PackageRequirement{Name: name, Constraint: constraint}
}

var baselines = map[models.Mode]baseline{
	models.ModeModern: {
		before: []models.PackageRequirement{
			req("cweagans/composer-patches", "^1.6.0"),
			req("hussainweb/drupal-composer-helper", "^1.0"),
		},
		after: []models.PackageRequirement{
			req("drupal/console", "^1.0.1"),
			req("drush/drush", "~8.0|^9.0"),
		},
		requireDev: []models.PackageRequirement{
			req("behat/mink", "~1.7"),
			req("behat/mink-goutte-driver", "~1.2"),
			req("jcalderonzumba/mink-phantomjs-driver", "~0.3.1"),
			req("mikey179/vfsstream", "~1.2"),
			req("phpunit/phpunit", ">=4.8.28 <5"),
			req("symfony/css-selector", "~2.8"),
		},
		conflict: map[string]string{"drupal/drupal": "*"},
	},
	models.ModeLegacy: {
		before: []models.PackageRequirement{
			req("php", ">=5.2.5"),
			req("ext-curl", "*"),
			req("ext-gd", "*"),
			req("ext-json", "*"),
			req("ext-openssl", "*"),
			req("ext-pdo", "*"),
			req("ext-xml", "*"),
			req("cweagans/composer-patches", "^1.6.0"),
			req("hussainweb/drupal-composer-helper", "^0.3"),
			req("drupal-composer/preserve-paths", "^0.1"),
		},
		after: []models.PackageRequirement{
			req("drupal/composer_autoloader", "^1.0"),
			req("drush/drush", "~8.0"),
		},
		conflict: map[string]string{"drupal/core": "8.*"},
	},
}

// legacyPreservePaths are kept across core updates, relative to the web dir
var legacyPreservePaths = []string{
	"sites/all/libraries",
	"sites/all/modules/custom",
	"sites/all/modules/features",
	"sites/all/themes/custom",
	"sites/all/translations",
	"sites/default",
}

// BaselineRequire returns the fixed require list of mode with core in place
func BaselineRequire(mode models.Mode, core models.PackageRequirement) []models.PackageRequirement {
	b := baselines[mode]
	out := make([]models.PackageRequirement, 0, len(b.before)+len(b.after)+1)
	out = append(out, b.before...)
	out = append(out, core)
	out = append(out, b.after...)
	return out
}

// BaselineRequireDev returns the fixed require-dev list of mode
func BaselineRequireDev(mode models.Mode) []models.PackageRequirement {
	b := baselines[mode]
	out := make([]models.PackageRequirement, len(b.requireDev))
	copy(out, b.requireDev)
	return out
}

// Build assembles the manifest for opts with the resolved core requirement.
// It has no side effects; equal inputs produce equal documents.
func Build(opts *models.ProjectOptions, core models.PackageRequirement) *Document {
	mode := opts.Mode
	if _, ok := baselines[mode]; !ok {
		mode = models.ModeModern
	}

	webDir := opts.WebDir
	if webDir == "" {
		webDir = models.DefaultWebDir
	}

	stability := opts.Stability
	if stability == "" {
		stability = models.DefaultStability
	}

	doc := &Document{
		Name:             opts.Name,
		Description:      opts.Description,
		Type:             models.ProjectType,
		Homepage:         opts.Homepage,
		License:          opts.License,
		MinimumStability: string(stability),
		PreferStable:     true,
		Repositories:     buildRepositories(opts, mode),
		Require:          mergeRequirements(BaselineRequire(mode, core), opts.Require),
		RequireDev:       mergeRequirements(BaselineRequireDev(mode), opts.RequireDev),
		Conflict:         copyMap(baselines[mode].conflict),
		Extra:            buildExtra(mode, webDir),
		Config: Config{
			SortPackages:       true,
			OptimizeAutoloader: true,
			APCuAutoloader:     true,
			SecureHTTP:         false,
			DiscardChanges:     true,
		},
	}

	if opts.Author != nil {
		doc.Authors = []models.Author{*opts.Author}
	}

	return doc
}

func buildRepositories(opts *models.ProjectOptions, mode models.Mode) []models.RepositorySpec {
	repos := make([]models.RepositorySpec, 0, len(opts.Repositories)+1)
	repos = append(repos, opts.Repositories...)

	drupalURL := opts.DrupalRepository
	if drupalURL == "" {
		drupalURL = mode.RepositoryURL()
	}
	return append(repos, models.NewComposerRepository(drupalURL))
}

func buildExtra(mode models.Mode, webDir string) Extra {
	extra := Extra{
		DrupalComposerHelper: HelperConfig{WebPrefix: webDir},
		EnablePatching:       true,
		InstallerPaths:       map[string][]string{},
	}

	switch mode {
	case models.ModeLegacy:
		extra.DrupalComposerHelper.SetD7Paths = true
		extra.InstallerPaths[webDir+"/"] = []string{CoreInstallerType}
		extra.PreservePaths = make([]string, 0, len(legacyPreservePaths))
		for _, p := range legacyPreservePaths {
			extra.PreservePaths = append(extra.PreservePaths, webDir+"/"+p)
		}
	default:
		extra.InstallerPaths[webDir+"/core"] = []string{CoreInstallerType}
	}

	return extra
}

// mergeRequirements appends user after baseline; for repeated names the
// later constraint wins
func mergeRequirements(baseline, user []models.PackageRequirement) map[string]string {
	merged := make(map[string]string, len(baseline)+len(user))
	for _, r := range baseline {
		merged[r.Name] = r.Constraint
	}
	for _, r := range user {
		merged[r.Name] = r.Constraint
	}
	return merged
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
