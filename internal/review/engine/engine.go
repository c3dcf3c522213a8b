// Package engine runs one review generation end to end: fragment rotation,
// prompt assembly, duplicate avoidance with bounded retries, and persistence.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/logger"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review/duplicate"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review/fingerprint"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review/narrative"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review/prompt"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review/rotation"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review/signals"
)

// ErrGeneration wraps every failure of the text generator, including empty
// output.
var ErrGeneration = errors.New("review generation failed")

const SpliceProbability = 0.4

type Request struct {
	Scope      review.Scope
	Rating     int
	Language   string
	Experience string
	Product    string
	Area       string
	ShopName   string
	Tone       string
	Verbosity  int
	Profile    signals.Profile
}

type Debug struct {
	BusinessID      string         `json:"business_id"`
	Industry        string         `json:"industry"`
	Narrative       string         `json:"narrative"`
	ToneUsed        string         `json:"tone_used"`
	VerbosityUsed   string         `json:"verbosity_used"`
	Signals         signals.Ranked `json:"signals"`
	Opening         string         `json:"opening"`
	Ending          string         `json:"ending"`
	Attempts        int            `json:"attempts"`
	DuplicateReason string         `json:"duplicate_reason,omitempty"`
	PrefixRetry     bool           `json:"prefix_retry"`
	ShopSpliced     bool           `json:"shop_spliced"`
}

type Result struct {
	Review string `json:"review"`
	Debug  Debug  `json:"debug"`
}

type Options struct {
	Fragments rotation.Fragments
	Policy    duplicate.Policy
	// OpeningGenerator enables model-written openings; nil keeps openings
	// static.
	OpeningGenerator review.Generator
	Random           review.Random
	PrefixChars      int
}

type Orchestrator struct {
	store      review.Store
	gen        review.Generator
	detector   *duplicate.Detector
	openings   *rotation.Manager
	endings    *rotation.Manager
	narratives *narrative.Selector
	rnd        review.Random
	prefixN    int
	log        *logger.Logger
	tracer     trace.Tracer
}

// New wires an orchestrator. opts.Random must be safe for concurrent use;
// the default is.
func New(store review.Store, gen review.Generator, opts Options, baseLog *logger.Logger) *Orchestrator {
	rnd := opts.Random
	if rnd == nil {
		rnd = review.DefaultRandom
	}
	frags := opts.Fragments
	if len(frags.Openings) == 0 && len(frags.Endings) == 0 && len(frags.Narratives) == 0 {
		frags = rotation.DefaultFragments()
	}
	var source rotation.FragmentSource
	if opts.OpeningGenerator != nil {
		source = rotation.GeneratorSource{Generator: opts.OpeningGenerator}
	}
	prefixN := opts.PrefixChars
	if prefixN <= 0 {
		prefixN = duplicate.DefaultPrefixChars
	}
	log := baseLog.With("service", "ReviewEngine")
	return &Orchestrator{
		store:      store,
		gen:        gen,
		detector:   duplicate.NewDetector(store, opts.Policy),
		openings:   rotation.NewManager(frags.OpeningPool(source), store, rnd, log),
		endings:    rotation.NewManager(frags.EndingPool(), store, rnd, log),
		narratives: narrative.NewSelector(frags.Narratives, narrative.DefaultCap, store),
		rnd:        rnd,
		prefixN:    prefixN,
		log:        log,
		tracer:     otel.Tracer("gmb-lite-system/review/engine"),
	}
}

func (o *Orchestrator) Generate(ctx context.Context, req Request) (res Result, err error) {
	ctx, span := o.tracer.Start(ctx, "review.generate", trace.WithAttributes(
		attribute.Int("review.rating", req.Rating),
		attribute.Int("review.verbosity", req.Verbosity),
		attribute.String("review.industry", req.Scope.Industry),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := req.Scope.Validate(); err != nil {
		return Result{}, err
	}
	scope := req.Scope

	var (
		opening string
		shape   string
		ranked  signals.Ranked
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		opening, err = o.openings.Pick(gctx, scope, rotation.OpeningBucket(req.Rating), req.Rating)
		return err
	})
	g.Go(func() error {
		var err error
		shape, err = o.narratives.Select(gctx, scope)
		return err
	})
	g.Go(func() error {
		ranked = signals.Rank(signals.Input{Product: req.Product, Area: req.Area, Profile: req.Profile}, o.rnd).Capped()
		return nil
	})
	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("resolve fragments: %w", err)
	}

	dbg := Debug{
		BusinessID:    scope.BusinessID,
		Industry:      scope.Industry,
		Narrative:     shape,
		ToneUsed:      toneUsed(req.Tone),
		VerbosityUsed: verbosityUsed(req.Verbosity),
		Signals:       ranked,
		Opening:       opening,
	}

	base := prompt.Build(prompt.Input{
		Rating:     req.Rating,
		Language:   req.Language,
		Experience: req.Experience,
		Tone:       req.Tone,
		Verbosity:  req.Verbosity,
		Opening:    opening,
		Narrative:  shape,
		Signals:    ranked,
	})
	ceiling := prompt.WordCeiling(req.Verbosity)

	raw, err := o.complete(ctx, base)
	if err != nil {
		return Result{}, err
	}
	dbg.Attempts++

	body := Truncate(raw, ceiling)
	if req.ShopName != "" && o.rnd.Float64() < SpliceProbability {
		body, dbg.ShopSpliced = SpliceShop(opening, body, req.ShopName)
	}

	verdict, err := o.detector.Check(ctx, scope, WithOpening(opening, body))
	if err != nil {
		return Result{}, err
	}
	if verdict.Duplicate {
		dbg.DuplicateReason = verdict.Reason
		o.log.Debug("candidate duplicates history; regenerating",
			"business_id", scope.BusinessID, "reason", verdict.Reason, "matched_id", verdict.MatchedID)
		raw, err = o.complete(ctx, base+prompt.RetryStructure)
		if err != nil {
			return Result{}, err
		}
		dbg.Attempts++
		body = Truncate(raw, ceiling)
		dbg.ShopSpliced = false
	}

	ending, err := o.endings.Pick(ctx, scope, rotation.EndingBucket(req.Rating), req.Rating)
	if err != nil {
		return Result{}, err
	}
	dbg.Ending = ending
	final := Compose(opening, body, ending, ceiling)

	history, err := o.store.RecentGeneratedTexts(ctx, scope, o.detector.Policy().Window)
	if err != nil {
		return Result{}, fmt.Errorf("load history: %w", err)
	}
	if row, ok := duplicate.PrefixMatch(history, final, o.prefixN); ok {
		dbg.PrefixRetry = true
		if dbg.DuplicateReason == "" {
			dbg.DuplicateReason = duplicate.ReasonPrefix
		}
		o.log.Debug("final text repeats a history prefix; regenerating",
			"business_id", scope.BusinessID, "matched_id", row.ID)
		raw, err = o.complete(ctx, base+prompt.RetryWording)
		if err != nil {
			return Result{}, err
		}
		dbg.Attempts++
		final = Compose(opening, Truncate(raw, ceiling), ending, ceiling)
	}

	if err := o.store.InsertGeneratedText(ctx, scope, final, fingerprint.Of(final)); err != nil {
		return Result{}, fmt.Errorf("persist review: %w", err)
	}
	if err := o.narratives.Commit(ctx, scope, shape); err != nil {
		return Result{}, err
	}

	span.SetAttributes(
		attribute.Int("review.attempts", dbg.Attempts),
		attribute.String("review.duplicate_reason", dbg.DuplicateReason),
	)
	o.log.Info("review generated",
		"business_id", scope.BusinessID,
		"industry", scope.Industry,
		"attempts", dbg.Attempts,
		"narrative", shape,
		"words", WordCount(final),
	)
	return Result{Review: final, Debug: dbg}, nil
}

func (o *Orchestrator) complete(ctx context.Context, p string) (string, error) {
	out, err := o.gen.Complete(ctx, p)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("%w: empty output", ErrGeneration)
	}
	return out, nil
}

func toneUsed(tone string) string {
	if t := strings.TrimSpace(tone); t != "" {
		return t
	}
	return "rating_based"
}

func verbosityUsed(v int) string {
	if v <= 0 {
		return "default"
	}
	return strconv.Itoa(v)
}
