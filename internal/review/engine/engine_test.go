package engine

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/logger"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review/duplicate"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review/fingerprint"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review/prompt"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review/reviewtest"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review/rotation"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review/signals"
)

var scopeX = review.Scope{BusinessID: "biz-42", Industry: "bakery"}

const longReply = "The bread came out warm and the crust cracked just right when I tore into it at the counter. " +
	"Staff kept the line moving even though the place was packed with families grabbing breakfast before school. " +
	"I tried a cinnamon roll as well and it was soft in the middle with just enough icing on top to feel like a treat. " +
	"Parking was a little tight but that is expected for a corner shop in a busy neighbourhood like this one."

func newOrchestrator(store review.Store, gen review.Generator, rnd review.Random) *Orchestrator {
	return New(store, gen, Options{Random: rnd}, logger.Nop())
}

func TestGenerateFiveStarShortReview(t *testing.T) {
	store := reviewtest.NewStore()
	gen := reviewtest.NewGenerator(longReply)
	o := newOrchestrator(store, gen, &reviewtest.Random{})

	res, err := o.Generate(context.Background(), Request{Scope: scopeX, Rating: 5, Verbosity: 2})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if n := WordCount(res.Review); n > 45 {
		t.Fatalf("review has %d words, want <= 45: %q", n, res.Review)
	}
	if !strings.ContainsAny(res.Review[len(res.Review)-1:], ".!?") {
		t.Fatalf("review lacks terminal punctuation: %q", res.Review)
	}
	if res.Debug.Opening == "" || !strings.HasPrefix(res.Review, res.Debug.Opening+". ") {
		t.Fatalf("review %q does not start with opening %q", res.Review, res.Debug.Opening)
	}
	fives := rotation.DefaultFragments().Endings["5"]
	if !slices.Contains(fives, res.Debug.Ending) || !strings.HasSuffix(res.Review, res.Debug.Ending) {
		t.Fatalf("review %q does not end with a 5-star ending (got %q)", res.Review, res.Debug.Ending)
	}
	if gen.Calls() != 1 || res.Debug.Attempts != 1 {
		t.Fatalf("generator calls=%d attempts=%d, want 1", gen.Calls(), res.Debug.Attempts)
	}

	hist := store.History(scopeX)
	if len(hist) != 1 || hist[0].Text != res.Review || hist[0].Structure != fingerprint.Of(res.Review).Structure {
		t.Fatalf("history not persisted correctly: %+v", hist)
	}
	if n := store.Usage(scopeX, review.PoolNarrative, res.Debug.Narrative); n != 1 {
		t.Fatalf("narrative usage=%d, want 1", n)
	}
	if n := store.Usage(scopeX, review.PoolOpening, res.Debug.Opening); n != 1 {
		t.Fatalf("opening usage=%d, want 1", n)
	}
	if n := store.Usage(scopeX, review.PoolEnding, res.Debug.Ending); n != 1 {
		t.Fatalf("ending usage=%d, want 1", n)
	}
	if res.Debug.ToneUsed != "rating_based" || res.Debug.VerbosityUsed != "2" {
		t.Fatalf("debug=%+v", res.Debug)
	}
}

func TestGenerateRetriesOnceOnStructureMatch(t *testing.T) {
	store := reviewtest.NewStore()
	store.Seed(scopeX, "Nice place. Coffee tasted fresh and warm every single morning.")

	// Neutral opening "I visited this place recently" is S; the first reply
	// is one M sentence, so the candidate fingerprints to S-M.
	first := "Pastries looked great and the queue moved along quickly."
	second := "Honestly a lovely stop. Buttery croissants, friendly faces, and the smell of cardamom buns drifting out the door made me linger longer than planned."
	gen := reviewtest.NewGenerator(first, second)
	o := newOrchestrator(store, gen, &reviewtest.Random{})

	cand := WithOpening(rotation.DefaultFragments().Openings[rotation.BucketNeutral][0], first)
	if got := fingerprint.Of(cand).Structure; got != "S-M" {
		t.Fatalf("test setup: candidate structure=%q, want S-M", got)
	}

	res, err := o.Generate(context.Background(), Request{Scope: scopeX, Rating: 3, Verbosity: 3})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if gen.Calls() != 2 {
		t.Fatalf("generator calls=%d, want 2", gen.Calls())
	}
	if !strings.HasSuffix(gen.Prompts[1], prompt.RetryStructure) {
		t.Fatalf("retry prompt missing directive: %q", gen.Prompts[1])
	}
	if res.Debug.DuplicateReason != duplicate.ReasonStructure || res.Debug.Attempts != 2 {
		t.Fatalf("debug=%+v", res.Debug)
	}
	if !strings.Contains(res.Review, "cardamom") || strings.Contains(res.Review, "Pastries") {
		t.Fatalf("retry text not used: %q", res.Review)
	}
	if !strings.HasPrefix(res.Review, res.Debug.Opening+". ") {
		t.Fatalf("opening not re-applied: %q", res.Review)
	}
}

func TestGenerateAcceptsRetryEvenIfStillDuplicate(t *testing.T) {
	store := reviewtest.NewStore()
	store.Seed(scopeX, "Nice place. Coffee tasted fresh and warm every single morning.")
	same := "Pastries looked great and the queue moved along quickly."
	gen := reviewtest.NewGenerator(same, same)
	o := newOrchestrator(store, gen, &reviewtest.Random{})

	res, err := o.Generate(context.Background(), Request{Scope: scopeX, Rating: 3})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if gen.Calls() != 2 {
		t.Fatalf("generator calls=%d, want 2", gen.Calls())
	}
	if !strings.Contains(res.Review, "Pastries looked great") {
		t.Fatalf("unexpected review %q", res.Review)
	}
}

func TestGeneratePrefixRetry(t *testing.T) {
	store := reviewtest.NewStore()
	gen := reviewtest.NewGenerator(longReply, "Totally different words this time around.")
	o := newOrchestrator(store, gen, &reviewtest.Random{})

	opening := rotation.DefaultFragments().Openings[rotation.BucketPositive][0]
	ending := rotation.DefaultFragments().Endings["5"][0]
	// Shares its first 80 characters with the reply's first sentence but is
	// not close enough to trip the fingerprint rules.
	prior := "The bread came out warm and the crust cracked just right when I tore into it at the counter."
	store.Seed(scopeX, prior)

	res, err := o.Generate(context.Background(), Request{Scope: scopeX, Rating: 5, Verbosity: 5})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !res.Debug.PrefixRetry || res.Debug.DuplicateReason != duplicate.ReasonPrefix {
		t.Fatalf("expected prefix retry only, debug=%+v", res.Debug)
	}
	if gen.Calls() != 2 || !strings.HasSuffix(gen.Prompts[1], prompt.RetryWording) {
		t.Fatalf("calls=%d prompts=%q", gen.Calls(), gen.Prompts)
	}
	want := opening + ". Totally different words this time around. " + ending
	if res.Review != want {
		t.Fatalf("review=%q, want %q", res.Review, want)
	}
}

func TestGenerateGeneratorFailureIsFatal(t *testing.T) {
	boom := errors.New("upstream 500")
	store := reviewtest.NewStore()
	gen := &reviewtest.Generator{Errs: []error{boom}}
	o := newOrchestrator(store, gen, nil)

	_, err := o.Generate(context.Background(), Request{Scope: scopeX, Rating: 4})
	if !errors.Is(err, ErrGeneration) || !errors.Is(err, boom) {
		t.Fatalf("err=%v, want ErrGeneration wrapping cause", err)
	}
	if len(store.History(scopeX)) != 0 {
		t.Fatalf("nothing should be persisted on failure")
	}

	_, err = newOrchestrator(store, reviewtest.NewGenerator("   "), nil).Generate(context.Background(), Request{Scope: scopeX, Rating: 4})
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("empty output err=%v, want ErrGeneration", err)
	}
}

func TestGenerateRetryFailurePropagates(t *testing.T) {
	store := reviewtest.NewStore()
	store.Seed(scopeX, "Nice place. Coffee tasted fresh and warm every single morning.")
	boom := errors.New("timeout")
	gen := &reviewtest.Generator{Replies: []string{"Pastries looked great and the queue moved along quickly."}, Errs: []error{nil, boom}}
	o := newOrchestrator(store, gen, &reviewtest.Random{})

	if _, err := o.Generate(context.Background(), Request{Scope: scopeX, Rating: 3}); !errors.Is(err, boom) {
		t.Fatalf("err=%v, want %v", err, boom)
	}
}

func TestGenerateStoreFailure(t *testing.T) {
	store := reviewtest.NewStore()
	store.Err = errors.New("connection refused")
	o := newOrchestrator(store, reviewtest.NewGenerator(longReply), nil)
	_, err := o.Generate(context.Background(), Request{Scope: scopeX, Rating: 5})
	if !errors.Is(err, store.Err) {
		t.Fatalf("err=%v, want store error", err)
	}
}

func TestGenerateRejectsInvalidScope(t *testing.T) {
	o := newOrchestrator(reviewtest.NewStore(), reviewtest.NewGenerator(longReply), nil)
	if _, err := o.Generate(context.Background(), Request{Scope: review.Scope{BusinessID: "x"}}); !errors.Is(err, review.ErrInvalidScope) {
		t.Fatalf("err=%v, want ErrInvalidScope", err)
	}
}

func TestGenerateShopSplice(t *testing.T) {
	store := reviewtest.NewStore()
	gen := reviewtest.NewGenerator("Bread was warm. The staff were kind. Prices felt fair.")
	o := newOrchestrator(store, gen, &reviewtest.Random{Floats: []float64{0.1}})

	res, err := o.Generate(context.Background(), Request{Scope: scopeX, Rating: 4, ShopName: "Crumb & Co"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !res.Debug.ShopSpliced || !strings.Contains(res.Review, "I recently visited Crumb & Co and ") {
		t.Fatalf("expected splice, got %q (debug %+v)", res.Review, res.Debug)
	}
}

func TestGenerateSpliceLeavesMultiSentenceOpeningAlone(t *testing.T) {
	store := reviewtest.NewStore()
	gen := reviewtest.NewGenerator("The croissants were flaky and warm.")
	openingGen := reviewtest.NewGenerator("Went in on a whim. Glad I did")
	o := New(store, gen, Options{
		Random:           &reviewtest.Random{Floats: []float64{0.1}},
		OpeningGenerator: openingGen,
	}, logger.Nop())

	res, err := o.Generate(context.Background(), Request{Scope: scopeX, Rating: 5, Verbosity: 3, ShopName: "Corner Cafe"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !res.Debug.ShopSpliced {
		t.Fatalf("expected splice, debug %+v", res.Debug)
	}
	if n := strings.Count(res.Review, "Went in on a whim"); n != 1 {
		t.Fatalf("opening appears %d times in %q", n, res.Review)
	}
	want := "Went in on a whim. Glad I did. I recently visited Corner Cafe and the croissants were flaky and warm. "
	if !strings.HasPrefix(res.Review, want) {
		t.Fatalf("review=%q, want prefix %q", res.Review, want)
	}
	if !strings.HasSuffix(res.Review, res.Debug.Ending) {
		t.Fatalf("ending %q missing from %q", res.Debug.Ending, res.Review)
	}
}

func TestGenerateUsesDynamicOpening(t *testing.T) {
	store := reviewtest.NewStore()
	gen := reviewtest.NewGenerator(longReply)
	openingGen := reviewtest.NewGenerator("\"Dropped by on my way to work.\"")
	o := New(store, gen, Options{Random: &reviewtest.Random{}, OpeningGenerator: openingGen}, logger.Nop())

	res, err := o.Generate(context.Background(), Request{Scope: scopeX, Rating: 4, Verbosity: 3})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Debug.Opening != "Dropped by on my way to work" || !strings.HasPrefix(res.Review, "Dropped by on my way to work. ") {
		t.Fatalf("dynamic opening not used: %q", res.Review)
	}
	if openingGen.Calls() != 1 || gen.Calls() != 1 {
		t.Fatalf("calls: opening=%d body=%d", openingGen.Calls(), gen.Calls())
	}
}

func TestGeneratePromptCarriesSignalsAndNarrative(t *testing.T) {
	store := reviewtest.NewStore()
	gen := reviewtest.NewGenerator(longReply)
	o := newOrchestrator(store, gen, &reviewtest.Random{})

	res, err := o.Generate(context.Background(), Request{
		Scope:   scopeX,
		Rating:  4,
		Product: "fast delivery",
		Area:    "downtown",
		Tone:    "cheerful",
		Profile: signals.Profile{Contexts: []string{"cozy ambience", "fast and reliable delivery"}},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	p := gen.Prompts[0]
	for _, want := range []string{"fast and reliable delivery", "Tone: cheerful", "Narrative style:\n" + res.Debug.Narrative} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q:\n%s", want, p)
		}
	}
	if strings.Contains(p, "cozy ambience") {
		t.Fatalf("zero-score context leaked into prompt")
	}
	if res.Debug.ToneUsed != "cheerful" || res.Debug.VerbosityUsed != "default" {
		t.Fatalf("debug=%+v", res.Debug)
	}
}

func TestGenerateRotatesNarratives(t *testing.T) {
	store := reviewtest.NewStore()
	frags := rotation.DefaultFragments()
	o := newOrchestrator(store, reviewtest.NewGenerator(longReply), &reviewtest.Random{})

	seen := map[string]int{}
	for i := 0; i < len(frags.Narratives)*3; i++ {
		res, err := o.Generate(context.Background(), Request{Scope: scopeX, Rating: 5, Verbosity: 1})
		if err != nil {
			t.Fatalf("Generate #%d: %v", i, err)
		}
		seen[res.Debug.Narrative]++
	}
	for _, shape := range frags.Narratives {
		if seen[shape] != 3 {
			t.Fatalf("narrative %q used %d times, want 3 (%v)", shape, seen[shape], seen)
		}
	}
}
