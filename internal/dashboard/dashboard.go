// Package dashboard derives job recommendations from the stored profile and
// fetches per-job details for display.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-counsellor/internal/store"
	"github.com/jonathan/career-counsellor/internal/types"
)

// Sentinel errors.
var (
	ErrNoProfile  = errors.New("no profile has been submitted")
	ErrEmptyQuery = errors.New("profile has no skills, interests or goals to match on")
)

// DefaultConcurrency bounds parallel job-detail requests.
const DefaultConcurrency = 3

// Backend is the part of the API client used by the dashboard.
type Backend interface {
	RecommendJobs(ctx context.Context, text string, topN int) ([]types.JobMatch, error)
	JobDetails(ctx context.Context, title string) (*types.JobDetails, error)
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithTopN sets how many recommendations to request.
func WithTopN(n int) Option {
	return func(d *Dashboard) {
		if n > 0 {
			d.topN = n
		}
	}
}

// WithConcurrency sets the maximum number of concurrent detail requests.
func WithConcurrency(n int) Option {
	return func(d *Dashboard) {
		if n > 0 {
			d.concurrency = n
		}
	}
}

// Dashboard reads the profile from a store and keeps job matches there.
type Dashboard struct {
	backend     Backend
	store       *store.Store
	topN        int
	concurrency int
}

// New creates a dashboard.
func New(backend Backend, st *store.Store, opts ...Option) *Dashboard {
	d := &Dashboard{
		backend:     backend,
		store:       st,
		topN:        types.DefaultTopN,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// MatchQuery builds the free-text job query for a profile.
// Students contribute technical skills, soft skills, interests and notes;
// professionals contribute rated skills, challenges, goals and target industries.
func MatchQuery(profile types.Profile) string {
	var parts []string
	if s, ok := profile.Student(); ok {
		parts = []string{
			strings.Join(s.TechnicalSkills, ", "),
			strings.Join(s.SoftSkills, ", "),
			strings.Join(s.Interests, ", "),
			s.AdditionalInfo,
		}
	} else if p, ok := profile.Professional(); ok {
		skills := make([]string, 0, len(p.SkillAssessment))
		for skill := range p.SkillAssessment {
			skills = append(skills, skill)
		}
		sort.Strings(skills)
		parts = []string{
			strings.Join(skills, ", "),
			strings.Join(p.CurrentChallenges, ", "),
			p.CareerGoals,
			p.TargetApplications,
		}
	}

	nonEmpty := parts[:0]
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, ", ")
}

// Load returns the stored job matches, requesting them first when the store has none.
func (d *Dashboard) Load(ctx context.Context) ([]types.JobMatch, error) {
	if existing := d.store.JobMatches(); len(existing) > 0 {
		return existing, nil
	}
	return d.Refresh(ctx)
}

// Refresh requests recommendations for the stored profile and replaces the stored matches.
func (d *Dashboard) Refresh(ctx context.Context) ([]types.JobMatch, error) {
	profile := d.store.Profile()
	if profile.IsZero() {
		return nil, ErrNoProfile
	}
	query := MatchQuery(profile)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	ticket := d.store.BeginJobMatches()
	matches, err := d.backend.RecommendJobs(ctx, query, d.topN)
	if err != nil {
		log.Printf("[dashboard] job recommendations failed: %v", err)
		return nil, err
	}
	if !d.store.CommitJobMatches(ticket, matches) {
		log.Printf("[dashboard] discarded superseded job recommendations")
		return d.store.JobMatches(), nil
	}
	return matches, nil
}

// DetailResult is one row of Details. Err is set when that row's request failed.
type DetailResult struct {
	Match   types.JobMatch
	Details *types.JobDetails
	Err     error
}

// Details fetches job details for the first n stored matches (all when n <= 0),
// concurrently, returning rows in match order. A failed row does not fail the call.
func (d *Dashboard) Details(ctx context.Context, n int) ([]DetailResult, error) {
	matches := d.store.JobMatches()
	if n > 0 && n < len(matches) {
		matches = matches[:n]
	}

	results := make([]DetailResult, len(matches))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)

	for i, match := range matches {
		results[i].Match = match
		g.Go(func() error {
			details, err := d.backend.JobDetails(gCtx, match.JobTitle)
			if err != nil {
				log.Printf("[dashboard] details for %q failed: %v", match.JobTitle, err)
				results[i].Err = fmt.Errorf("job details for %q: %w", match.JobTitle, err)
				return nil
			}
			results[i].Details = details
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}
