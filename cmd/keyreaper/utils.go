package keyreaper

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"

	semver3 "github.com/blang/semver"
	semver "github.com/blang/semver/v4"
	"github.com/rhysd/go-github-selfupdate/selfupdate"

	"github.com/keyreaper/keyreaper/internal/config"
	"github.com/keyreaper/keyreaper/internal/update"
)

func selfUpdate() error {
	v := version
	// Use build info if tag overridden at build-time
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(v) == 0 {
				v = s.Value
			}
		}
	}
	// parse semantic version (strip leading v)
	ver, err := semver.ParseTolerant(v)
	if err != nil {
		ver = semver.MustParse("0.0.0")
	}
	// Update from GitHub Releases: keyreaper/keyreaper
	latest, err := selfupdate.UpdateSelf(semver3.MustParse(ver.String()), "keyreaper/keyreaper")
	if err != nil {
		return err
	}
	_ = latest
	return nil
}

// maybePrintUpdateNotice writes a one-line hint to stderr when a newer
// release exists. Skipped for JSON output so machine consumers stay clean.
func maybePrintUpdateNotice() {
	if flagJSON || flagNoUpdateCheck {
		return
	}
	if latest, newer, _ := update.Check(version, false); newer && latest != "" {
		fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'keyreaper --self-update' to upgrade\n", latest)
	}
}

var (
	cfgOnce   sync.Once
	cfgMerged config.FileConfig
)

// fileConfig loads and merges config files once: local shadows global.
func fileConfig() config.FileConfig {
	cfgOnce.Do(func() {
		if g, err := config.LoadGlobal(); err == nil {
			cfgMerged = g
		}
		wd, _ := os.Getwd()
		if l, err := config.LoadLocal(wd); err == nil {
			mergeConfig(&cfgMerged, l)
		}
	})
	return cfgMerged
}

func mergeConfig(dst *config.FileConfig, src config.FileConfig) {
	if src.UserAgent != nil {
		dst.UserAgent = src.UserAgent
	}
	if src.Proxy != nil {
		dst.Proxy = src.Proxy
	}
	if src.NoHashcat != nil {
		dst.NoHashcat = src.NoHashcat
	}
	if src.NoColor != nil {
		dst.NoColor = src.NoColor
	}
	if src.NoCache != nil {
		dst.NoCache = src.NoCache
	}
	if src.VerifyTLS != nil {
		dst.VerifyTLS = src.VerifyTLS
	}
	if len(src.CustomSecrets) > 0 {
		dst.CustomSecrets = src.CustomSecrets
	}
}

func resolvedNoHashcat() bool {
	return pickBool(flagNoHashcat, fileConfig().NoHashcat, nil)
}

func resolvedNoColor() bool {
	return pickBool(flagNoColor, fileConfig().NoColor, nil)
}

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}
