package registry

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// PlatformDetector reports the local PHP version and loaded extensions
type PlatformDetector func(ctx context.Context) (phpVersion string, extensions map[string]string)

// PlatformRepository exposes php and ext-* pseudo packages for the local
// PHP runtime, so platform requirements resolve without a network lookup
type PlatformRepository struct {
	detect     PlatformDetector
	loaded     bool
	phpVersion string
	extensions map[string]string
}

// NewPlatformRepository creates a platform repository; a nil detector probes
// the php binary on PATH
func NewPlatformRepository(detect PlatformDetector) *PlatformRepository {
	if detect == nil {
		detect = detectPHP
	}
	return &PlatformRepository{detect: detect}
}

func (r *PlatformRepository) Name() string {
	return "platform"
}

func (r *PlatformRepository) FindPackage(ctx context.Context, name string) ([]PackageVersion, error) {
	name = strings.ToLower(name)
	if name != "php" && !strings.HasPrefix(name, "ext-") {
		return []PackageVersion{}, nil
	}

	if !r.loaded {
		r.phpVersion, r.extensions = r.detect(ctx)
		r.loaded = true
	}

	if name == "php" {
		if r.phpVersion == "" {
			return []PackageVersion{}, nil
		}
		return []PackageVersion{{Name: name, Version: r.phpVersion}}, nil
	}

	version, ok := r.extensions[strings.TrimPrefix(name, "ext-")]
	if !ok {
		return []PackageVersion{}, nil
	}
	return []PackageVersion{{Name: name, Version: version}}, nil
}

func detectPHP(ctx context.Context) (string, map[string]string) {
	extensions := map[string]string{}
	if _, err := exec.LookPath("php"); err != nil {
		return "", extensions
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, "php", "-r", `echo PHP_VERSION, "\n"; foreach (get_loaded_extensions() as $e) { echo strtolower($e), "=", phpversion($e) ?: "0", "\n"; }`)
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", extensions
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) == 0 {
		return "", extensions
	}

	phpVersion := strings.TrimSpace(lines[0])
	if i := strings.IndexAny(phpVersion, "-+~"); i != -1 {
		phpVersion = phpVersion[:i]
	}

	for _, line := range lines[1:] {
		name, version, found := strings.Cut(strings.TrimSpace(line), "=")
		if !found || name == "" {
			continue
		}
		extensions[strings.ReplaceAll(name, " ", "-")] = version
	}

	return phpVersion, extensions
}
