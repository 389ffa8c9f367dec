package ipa

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// KeyStrategy selects the object key for multi-archive output.
type KeyStrategy string

const (
	KeyNone     KeyStrategy = ""
	KeyFilename KeyStrategy = "filename"
	KeyBundleID KeyStrategy = "bundleid"
)

func ParseKeyStrategy(s string) (KeyStrategy, error) {
	switch k := KeyStrategy(strings.ToLower(s)); k {
	case KeyNone, KeyFilename, KeyBundleID:
		return k, nil
	}
	return KeyNone, errors.Errorf("unknown key strategy %q (want filename or bundleid)", s)
}

func (k KeyStrategy) keyFor(res Result) string {
	switch k {
	case KeyFilename:
		return filepath.Base(res.Path)
	case KeyBundleID:
		return res.Info.AppBundleIdentifier
	}
	return ""
}

type Options struct {
	ExtractIcons bool
	IconDir      string
	KeyBy        KeyStrategy
	// Jobs bounds the number of archives parsed at once by ParseFiles.
	Jobs   int
	Logger log.FieldLogger
	// Progress receives a progress bar in ParseFiles when non-nil.
	Progress io.Writer
	Now      func() time.Time
}

func DefaultOptions() Options {
	return Options{
		ExtractIcons: true,
		IconDir:      "icons",
		Jobs:         runtime.NumCPU(),
		Now:          time.Now,
	}
}

func (o Options) logger() log.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Result pairs a parsed archive with its path.
type Result struct {
	Path string
	Info Info
}

func ParseFile(p string, opts Options) (Info, error) {
	logger := opts.logger().WithField("file", filepath.Base(p))

	a, err := OpenArchive(p)
	if err != nil {
		return Info{}, err
	}
	defer a.Close()

	plistFile, err := a.InfoPlist()
	if err != nil {
		return Info{}, err
	}
	data, err := a.ReadFile(plistFile)
	if err != nil {
		return Info{}, err
	}
	bundle, err := DecodeBundleInfo(data)
	if err != nil {
		return Info{}, err
	}

	iconName := ""
	if opts.ExtractIcons {
		hash, err := fileMD5(p)
		if err != nil {
			return Info{}, err
		}
		iconName, err = extractIcon(a, bundle.IconFiles, opts.IconDir, hash, logger)
		if err != nil {
			return Info{}, err
		}
	}

	logger.WithFields(log.Fields{
		"bundle": bundle.BundleIdentifier,
		"size":   formatBytes(a.Size),
	}).Debug("parsed archive")

	return Info{
		AppName:             bundle.Name,
		AppVersion:          bundle.Version,
		AppBundleIdentifier: bundle.BundleIdentifier,
		AppSize:             uint64(a.Size),
		IconName:            iconName,
		FileName:            a.Name,
		Timestamp:           opts.now().Unix(),
	}, nil
}

// ParseFiles parses archives concurrently. Archives that fail are logged
// and left out; the rest keep the order of paths.
func ParseFiles(paths []string, opts Options) []Result {
	logger := opts.logger()
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(len(paths),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("Parsing"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	slots := make([]*Result, len(paths))
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			info, err := ParseFile(p, opts)
			if bar != nil {
				_ = bar.Add(1)
			}
			if err != nil {
				logger.WithField("file", p).WithError(err).Warn("failed to parse")
				return nil
			}
			slots[i] = &Result{Path: p, Info: info}
			return nil
		})
	}
	_ = g.Wait()
	if bar != nil {
		_ = bar.Finish()
	}

	results := make([]Result, 0, len(paths))
	for _, res := range slots {
		if res != nil {
			results = append(results, *res)
		}
	}
	return results
}

// FindFiles lists the .ipa files directly inside dir, sorted by name. A path
// that is not a directory yields no files.
func FindFiles(dir string) ([]string, error) {
	stat, err := os.Stat(dir)
	if err != nil || !stat.IsDir() {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", dir)
	}
	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".ipa") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
