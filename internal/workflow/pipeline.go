// Package workflow wires scan, resolve, plan and apply into one pipeline.
package workflow

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/plexify/internal/fsys"
	"github.com/vmunix/plexify/internal/media"
	"github.com/vmunix/plexify/internal/metadata"
	"github.com/vmunix/plexify/internal/renamer"
	"github.com/vmunix/plexify/internal/scanner"
)

// WarnLookupFailed is added when no external ID could be resolved.
const WarnLookupFailed = "IMDb ID lookup failed; set one manually with --imdb"

// DefaultConcurrency bounds PreviewAll.
const DefaultConcurrency = 4

var externalIDPattern = regexp.MustCompile(`^tt\d{5,}$`)

// Preview is everything the user reviews before applying: the scanned
// folder, the resolved item and the plan built from it.
type Preview struct {
	Scan     *scanner.Result `json:"scan"`
	Item     media.Item      `json:"item"`
	Plan     renamer.Plan    `json:"plan"`
	Warnings []string        `json:"warnings"`
}

// Pipeline runs the scan, resolve, plan and apply stages.
type Pipeline struct {
	scanner     *scanner.Scanner
	resolver    *metadata.Resolver
	applier     *renamer.Applier
	fs          fsys.FileSystem
	concurrency int
	enrich      bool
	log         *slog.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithConcurrency bounds how many folders PreviewAll handles at once.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithEpisodeTitles toggles fetching canonical episode titles.
func WithEpisodeTitles(enabled bool) Option {
	return func(p *Pipeline) { p.enrich = enabled }
}

// WithFileSystem sets the filesystem used for access checks. It should be
// the one the applier moves files on.
func WithFileSystem(fs fsys.FileSystem) Option {
	return func(p *Pipeline) {
		if fs != nil {
			p.fs = fs
		}
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(log *slog.Logger) Option {
	return func(p *Pipeline) {
		if log != nil {
			p.log = log
		}
	}
}

// New returns a Pipeline. resolver may be nil to skip metadata resolution.
func New(sc *scanner.Scanner, resolver *metadata.Resolver, applier *renamer.Applier, opts ...Option) *Pipeline {
	p := &Pipeline{
		scanner:     sc,
		resolver:    resolver,
		applier:     applier,
		fs:          fsys.New(),
		concurrency: DefaultConcurrency,
		enrich:      true,
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		inflight:    make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Preview scans path and builds its rename plan. Scan errors abort; lookup
// failures become warnings.
func (p *Pipeline) Preview(ctx context.Context, path string) (*Preview, error) {
	res, err := p.scanner.Scan(path)
	if err != nil {
		return nil, err
	}
	return p.build(ctx, res, itemFromScan(res)), nil
}

// PreviewAll previews several folders in parallel. Results keep the order
// of paths; the first scan error cancels the rest.
func (p *Pipeline) PreviewAll(ctx context.Context, paths []string) ([]*Preview, error) {
	previews := make([]*Preview, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			pv, err := p.Preview(gctx, path)
			if err != nil {
				return err
			}
			previews[i] = pv
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return previews, nil
}

// WithManualID rebuilds prev with a user supplied external ID. prev is not
// modified.
func (p *Pipeline) WithManualID(ctx context.Context, prev *Preview, id string) (*Preview, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if !externalIDPattern.MatchString(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidExternalID, id)
	}
	item := itemFromScan(prev.Scan).WithExternalID(id, true)
	return p.build(ctx, prev.Scan, item), nil
}

// Apply executes the preview's plan. Only one apply per source folder may
// run at a time; a second one fails with ErrBusy.
func (p *Pipeline) Apply(prev *Preview) (*renamer.Result, error) {
	key := filepath.Clean(prev.Plan.SourceFolderPath)
	if !p.acquire(key) {
		return nil, fmt.Errorf("%w: %s", ErrBusy, key)
	}
	defer p.release(key)

	// A folder renamed by an earlier apply is checked at its new location.
	check := key
	if _, err := p.fs.Stat(key); fsys.IsNotExist(err) {
		check = prev.Plan.TargetFolderPath()
	}
	if err := CheckAccess(p.fs, check); err != nil {
		return nil, err
	}
	return p.applier.Apply(prev.Plan)
}

func (p *Pipeline) acquire(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, busy := p.inflight[key]; busy {
		return false
	}
	p.inflight[key] = struct{}{}
	return true
}

func (p *Pipeline) release(key string) {
	p.mu.Lock()
	delete(p.inflight, key)
	p.mu.Unlock()
}

// build resolves item, enriches episode titles and renders the plan.
func (p *Pipeline) build(ctx context.Context, res *scanner.Result, item media.Item) *Preview {
	warnings := make([]string, 0, len(res.Warnings)+1)
	warnings = append(warnings, res.Warnings...)

	if p.resolver != nil {
		if r, ok := p.resolver.Resolve(ctx, item); ok {
			item = metadata.ApplyResolution(item, r)
		}
		if p.enrich && item.MediaType == media.TVShow && len(item.Episodes) > 0 {
			item = p.resolver.EnrichEpisodes(ctx, item)
		}
	}
	if !item.HasExternalID() {
		warnings = append(warnings, WarnLookupFailed)
	}

	plan := renamer.BuildPlan(item, res.MediaFiles)
	warnings = append(warnings, plan.Warnings...)

	p.log.Debug("preview built",
		"path", res.FolderPath,
		"type", item.MediaType,
		"external_id", item.ExternalID,
		"target", plan.TargetFolderName,
		"renames", len(plan.FileRenames))

	return &Preview{
		Scan:     res,
		Item:     item,
		Plan:     plan,
		Warnings: dedupe(warnings),
	}
}

// itemFromScan seeds an item from the scan and the folder's own name.
func itemFromScan(res *scanner.Result) media.Item {
	fn := media.ParseFolderName(filepath.Base(res.FolderPath))
	return media.NewItem(res.FolderPath, fn.Title, res.MediaType).
		WithYear(fn.Year).
		WithEdition(fn.Edition).
		WithExternalID(fn.ExternalID, false).
		WithEpisodes(res.Episodes)
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
