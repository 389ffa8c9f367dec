package ipa

import (
	"archive/zip"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/AppleEcosystem/ipa-metadata/internal/pngfix"
)

// isIconMatch reports whether the archive entry is one of the named icons.
// Names may omit the extension and the @2x/@3x or size suffixes.
func isIconMatch(entry string, names []string) bool {
	base := path.Base(entry)
	for _, name := range names {
		if name == "" {
			continue
		}
		if base == name ||
			strings.HasPrefix(base, name) ||
			strings.HasPrefix(base, strings.TrimSuffix(name, ".png")) {
			return true
		}
	}
	return false
}

// selectIcon picks the largest .png entry matching names. Ties keep the
// first entry in archive order.
func selectIcon(files []*zip.File, names []string) *zip.File {
	var best *zip.File
	for _, f := range files {
		if !strings.HasSuffix(f.Name, ".png") || !isIconMatch(f.Name, names) {
			continue
		}
		if best == nil || f.UncompressedSize64 > best.UncompressedSize64 {
			best = f
		}
	}
	return best
}

// extractIcon writes the normalized app icon to dir/<hash>.png and returns
// the file name. It returns "" when the archive has no matching icon or the
// icon cannot be normalized.
func extractIcon(a *Archive, names []string, dir, hash string, logger log.FieldLogger) (string, error) {
	if len(names) == 0 {
		return "", nil
	}
	f := selectIcon(a.Files(), names)
	if f == nil {
		logger.Debug("no icon entry matched")
		return "", nil
	}
	data, err := a.ReadFile(f)
	if err != nil {
		return "", err
	}

	fields := log.Fields{"icon": f.Name, "size": formatBytes(int64(len(data)))}
	if pi, ok := pngfix.ReadInfo(data); ok {
		fields["width"] = pi.Width
		fields["height"] = pi.Height
		fields["cgbi"] = pi.CgBI
	}
	entryLog := logger.WithFields(fields)

	normalized, err := pngfix.Normalize(data)
	if err != nil {
		entryLog.WithError(err).Warn("skipping icon")
		return "", nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create icon directory")
	}
	name := hash + ".png"
	if err := os.WriteFile(filepath.Join(dir, name), normalized, 0o644); err != nil {
		return "", errors.Wrap(err, "write icon")
	}
	entryLog.WithField("output", name).Debug("icon extracted")
	return name, nil
}
