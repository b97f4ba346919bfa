// Package tally consolidates the ballots cast across a forum thread into a
// deduplicated, merged, and rendered vote count.
package tally

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
)

// skipMarker flags posts, typically earlier tallies, that are never counted.
const skipMarker = "#####"

// Tallier runs the tally pipeline under one configuration.
// It is not safe for concurrent use; each call owns all of its state.
type Tallier struct {
	cfg    Config
	ex     Extractor
	norm   *normalizer
	logger *slog.Logger
}

// New validates cfg and returns a Tallier for it. A nil logger means
// slog.Default().
func New(cfg Config, logger *slog.Logger) (*Tallier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	marker, err := CompileMarker(cfg.VoteMarker)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tallier{
		cfg:    cfg,
		ex:     Extractor{Marker: marker},
		norm:   newNormalizer(marker),
		logger: logger,
	}, nil
}

// Config returns the tallier's configuration.
func (t *Tallier) Config() Config { return t.cfg }

// Tally counts the votes within posts, ignoring those cast by op, and
// returns the rendered result.
//
// The context is checked between posts and between stages; if its deadline
// passes an error matching ErrTimeout is returned instead of any result.
func (t *Tallier) Tally(ctx context.Context, op string, posts []Post) (string, error) {
	groups, err := t.Groups(ctx, op, posts)
	if err != nil {
		return "", err
	}
	out := render(groups, t.cfg.SortHighest != 0)
	if err := checkpoint(ctx, "render"); err != nil {
		return "", err
	}
	return out, nil
}

// Groups runs every stage except rendering, returning the merged ballot
// groups in output order (before any sort).
func (t *Tallier) Groups(ctx context.Context, op string, posts []Post) ([]*Ballot, error) {
	ballots, err := t.Ballots(ctx, op, posts)
	if err != nil {
		return nil, err
	}

	ballots = dedup(ballots, t.cfg.ReferDir != 0)
	t.logger.DebugContext(ctx, "deduplicated voters", "ballots", len(ballots))
	if err := checkpoint(ctx, "dedup"); err != nil {
		return nil, err
	}

	ballots = decompose(ballots, t.cfg.BreakLevel)
	t.logger.DebugContext(ctx, "decomposed ballots", "level", t.cfg.BreakLevel, "ballots", len(ballots))
	if err := checkpoint(ctx, "decompose"); err != nil {
		return nil, err
	}

	groups := merge(ballots)
	t.logger.DebugContext(ctx, "merged ballots", "groups", len(groups))
	if err := checkpoint(ctx, "merge"); err != nil {
		return nil, err
	}
	return groups, nil
}

// Ballots extracts one ballot per eligible post that contains any vote
// lines, in post order. Posts by op, and posts containing "#####", are not
// eligible.
func (t *Tallier) Ballots(ctx context.Context, op string, posts []Post) ([]*Ballot, error) {
	opKey := t.norm.normalize(op)

	var (
		eligible []int
		keys     = make([]string, len(posts))
	)
	for i, post := range posts {
		if strings.Contains(post.Message, skipMarker) {
			continue
		}
		keys[i] = t.norm.normalize(post.Username)
		if op != "" && keys[i] == opKey {
			continue
		}
		eligible = append(eligible, i)
	}

	found, err := t.extractAll(ctx, posts, eligible)
	if err != nil {
		return nil, err
	}

	var ballots []*Ballot
	for k, i := range eligible {
		ext := found[k]
		if ext == nil {
			continue
		}
		post := posts[i]
		b := &Ballot{
			Markup:     ext.Markup,
			Plain:      ext.Plain,
			Normalized: make([]string, ext.Len()),
			Marks:      ext.Marks,
			Voters:     []Voter{{Name: post.Username, Key: keys[i], PostID: post.PostID}},
		}
		for j, line := range ext.Plain {
			b.Normalized[j] = t.norm.normalize(line)
		}
		ballots = append(ballots, b)
	}
	t.logger.DebugContext(ctx, "extracted ballots",
		"posts", len(posts),
		"eligible", len(eligible),
		"ballots", len(ballots))
	return ballots, nil
}

// extractAll runs the extractor over the indexed posts, in parallel when
// configured with more than one worker; results are ordered as indices, and
// nil for posts that cast no vote.
func (t *Tallier) extractAll(ctx context.Context, posts []Post, indices []int) ([]*Extracted, error) {
	found := make([]*Extracted, len(indices))

	if t.cfg.Workers <= 1 {
		for k, i := range indices {
			if err := checkpoint(ctx, "extraction"); err != nil {
				return nil, err
			}
			found[k] = t.extract(posts[i])
		}
		return found, nil
	}

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(t.cfg.Workers)
	for k, i := range indices {
		eg.Go(func() error {
			if err := checkpoint(egctx, "extraction"); err != nil {
				return err
			}
			found[k] = t.extract(posts[i])
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := checkpoint(ctx, "extraction"); err != nil {
		return nil, err
	}
	return found, nil
}

func (t *Tallier) extract(post Post) *Extracted {
	ext, ok := t.ex.Extract(post.Message)
	if !ok {
		return nil
	}
	return &ext
}

// Run tallies a complete request under its own configuration, applying the
// configured timeout to ctx.
func Run(ctx context.Context, req Request, logger *slog.Logger) (string, error) {
	t, err := New(req.Config, logger)
	if err != nil {
		return "", err
	}
	if d := req.Config.Deadline(); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	return t.Tally(ctx, req.Op, req.Posts)
}
