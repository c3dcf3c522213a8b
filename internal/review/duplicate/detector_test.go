package duplicate

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/review/fingerprint"
)

type fakeHistory struct {
	rows      []review.GeneratedText
	err       error
	lastLimit int
	lastScope review.Scope
}

func (f *fakeHistory) InsertGeneratedText(ctx context.Context, scope review.Scope, text string, fp review.Fingerprint) error {
	f.rows = append([]review.GeneratedText{{Scope: scope, Text: text, Structure: fp.Structure}}, f.rows...)
	return nil
}

func (f *fakeHistory) RecentGeneratedTexts(ctx context.Context, scope review.Scope, limit int) ([]review.GeneratedText, error) {
	f.lastLimit = limit
	f.lastScope = scope
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

var scope = review.Scope{BusinessID: "biz-1", Industry: "cafe"}

func TestSameStructureIsDuplicateRegardlessOfWording(t *testing.T) {
	// Both texts are M-S-L with no shared vocabulary.
	old := "Our waiter brought cold lemonade before we even asked. Lovely surprise. Afterwards my cousin ordered pancakes stacked high with berries plus whipped cream on top today."
	cand := "Parking outside was simple thanks to wide open spaces nearby. Quick checkout. The bakery counter displayed fresh croissants beside chocolate tarts glazed under soft lights all day."
	if got, want := fingerprint.Of(old).Structure, "M-S-L"; got != want {
		t.Fatalf("old structure=%q, want %q", got, want)
	}
	if got, want := fingerprint.Of(cand).Structure, "M-S-L"; got != want {
		t.Fatalf("candidate structure=%q, want %q", got, want)
	}

	store := &fakeHistory{rows: []review.GeneratedText{{ID: "row-1", Text: old}}}
	d := NewDetector(store, Policy{})
	v, err := d.Check(context.Background(), scope, cand)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !v.Duplicate || v.Reason != ReasonStructure || v.MatchedID != "row-1" {
		t.Fatalf("verdict=%+v, want structure match on row-1", v)
	}
}

func TestDisjointVocabularyNeverFlagged(t *testing.T) {
	history := []review.GeneratedText{
		{ID: "a", Text: "Quiet corner booth near the window felt calm tonight honestly."},
		{ID: "b", Text: "Parking outside was simple. Wide open spaces nearby made arriving easy for everyone."},
	}
	cand := "Bright colours everywhere!"
	if v := Compare(fingerprint.Of(cand), history, Policy{}); v.Duplicate {
		t.Fatalf("disjoint text flagged: %+v", v)
	}
}

func TestEmptyHistoryAndEmptyText(t *testing.T) {
	ctx := context.Background()

	d := NewDetector(&fakeHistory{}, Policy{})
	dup, err := d.IsDuplicate(ctx, scope, "I visited this place recently. Really happy with the experience.")
	if err != nil || dup {
		t.Fatalf("empty history: dup=%v err=%v", dup, err)
	}

	store := &fakeHistory{rows: []review.GeneratedText{{ID: "x", Text: ""}, {ID: "y", Text: "  ...  "}}}
	d = NewDetector(store, Policy{})
	for _, text := range []string{"", "   ", "?!."} {
		dup, err := d.IsDuplicate(ctx, scope, text)
		if err != nil || dup {
			t.Fatalf("IsDuplicate(%q): dup=%v err=%v", text, dup, err)
		}
	}
}

func TestRulesInOrder(t *testing.T) {
	cases := []struct {
		name   string
		old    string
		cand   string
		reason string
	}{
		{
			name:   "opening",
			old:    "During my recent visit here. I ordered tea.",
			cand:   "During my recent visit here. Everything arrived quickly and the food tasted fresh.",
			reason: ReasonOpening,
		},
		{
			name:   "ending",
			old:    "Lunch went fine. Overall it was totally worth it.",
			cand:   "Tables were spotless and plenty of seating was available inside. Overall it was totally worth it!",
			reason: ReasonEnding,
		},
		{
			name:   "text_similarity",
			old:    "Coffee tasted fresh. Bread was warm.",
			cand:   "Fresh coffee and warm bread greeted us at the door this morning.",
			reason: ReasonText,
		},
		{
			name:   "meaning_similarity",
			old:    "Happy staff. Helpful team on every visit we made.",
			cand:   "Impressed by the support from the service desk during our long visit today.",
			reason: ReasonMeaning,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := Compare(fingerprint.Of(tc.cand), []review.GeneratedText{{ID: "h", Text: tc.old}}, Policy{})
			if !v.Duplicate || v.Reason != tc.reason {
				t.Fatalf("verdict=%+v, want reason %q", v, tc.reason)
			}
		})
	}
}

func TestStoredStructureWinsOverRecomputed(t *testing.T) {
	history := []review.GeneratedText{{ID: "s", Text: "Zebra yonder.", Structure: "M-M"}}
	cand := "Apples bananas cherries dates elderberries figs grapes. Kiwis lemons mangoes nectarines oranges papayas quinces."
	v := Compare(fingerprint.Of(cand), history, Policy{})
	if !v.Duplicate || v.Reason != ReasonStructure {
		t.Fatalf("verdict=%+v, want stored structure match", v)
	}
}

func TestThresholdsAreStrict(t *testing.T) {
	cand := review.Fingerprint{
		Structure: "S",
		Words:     map[string]struct{}{"a": {}, "b": {}, "c": {}, "d": {}},
		Meaning:   map[string]int{review.BucketEmotion: 5},
	}
	old := review.Fingerprint{
		Structure: "M",
		Words:     map[string]struct{}{"a": {}, "b": {}, "x": {}},
		Meaning:   map[string]int{review.BucketEmotion: 3},
	}
	// Jaccard 2/4 = 0.5, meaning 3/5 = 0.6.
	if _, ok := match(cand, old, Policy{TextThreshold: 0.5, MeaningThreshold: 0.6}); ok {
		t.Fatalf("scores equal to thresholds must not match")
	}
	if v, ok := match(cand, old, Policy{TextThreshold: 0.49, MeaningThreshold: 0.6}); !ok || v.Reason != ReasonText {
		t.Fatalf("expected text match above threshold, got %+v ok=%v", v, ok)
	}
	if v, ok := match(cand, old, Policy{TextThreshold: 0.9, MeaningThreshold: 0.59}); !ok || v.Reason != ReasonMeaning {
		t.Fatalf("expected meaning match above threshold, got %+v ok=%v", v, ok)
	}
}

func TestJaccardIsAsymmetric(t *testing.T) {
	small := map[string]struct{}{"fast": {}, "delivery": {}}
	big := map[string]struct{}{"fast": {}, "delivery": {}, "friendly": {}, "staff": {}}
	if got := Jaccard(small, big); got != 1 {
		t.Fatalf("Jaccard(small, big)=%v, want 1", got)
	}
	if got := Jaccard(big, small); got != 0.5 {
		t.Fatalf("Jaccard(big, small)=%v, want 0.5", got)
	}
	if got := Jaccard(nil, big); got != 0 {
		t.Fatalf("Jaccard(nil, big)=%v, want 0", got)
	}
}

func TestMeaningOverlap(t *testing.T) {
	got := MeaningOverlap(
		map[string]int{review.BucketEmotion: 2, review.BucketService: 1, review.BucketExperience: 0},
		map[string]int{review.BucketEmotion: 1, review.BucketService: 3},
	)
	if math.Abs(got-2.0/3.0) > 1e-9 {
		t.Fatalf("MeaningOverlap=%v, want 2/3", got)
	}
	if got := MeaningOverlap(map[string]int{review.BucketEmotion: 0}, map[string]int{review.BucketEmotion: 4}); got != 0 {
		t.Fatalf("zero candidate overlap=%v, want 0", got)
	}
}

func TestCheckUsesWindowAndScope(t *testing.T) {
	store := &fakeHistory{}
	d := NewDetector(store, Policy{Window: 45})
	if _, err := d.Check(context.Background(), scope, "Hello there."); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if store.lastLimit != 45 || store.lastScope != scope {
		t.Fatalf("history read with limit=%d scope=%v", store.lastLimit, store.lastScope)
	}

	d = NewDetector(store, Policy{})
	if d.Policy().Window != DefaultWindow || d.Policy().TextThreshold != DefaultTextThreshold {
		t.Fatalf("defaults not applied: %+v", d.Policy())
	}
}

func TestCheckPropagatesStoreError(t *testing.T) {
	boom := errors.New("db down")
	d := NewDetector(&fakeHistory{err: boom}, Policy{})
	if _, err := d.Check(context.Background(), scope, "Hello."); !errors.Is(err, boom) {
		t.Fatalf("err=%v, want wrapped %v", err, boom)
	}
}

func TestPrefixMatch(t *testing.T) {
	long := "I stopped by this place not long ago and the staff greeted me right away with a smile at the door."
	history := []review.GeneratedText{
		{ID: "blank", Text: "   "},
		{ID: "long", Text: long},
	}

	row, ok := PrefixMatch(history, "Intro. "+long[:80]+" and more words.", 80)
	if !ok || row.ID != "long" {
		t.Fatalf("expected prefix match on long row, got %+v ok=%v", row, ok)
	}
	if _, ok := PrefixMatch(history, long[:79]+"!", 80); ok {
		t.Fatalf("partial prefix must not match")
	}
	if _, ok := PrefixMatch(history, "Something else entirely.", 0); ok {
		t.Fatalf("unexpected match")
	}

	short := []review.GeneratedText{{ID: "short", Text: "Café was great."}}
	if _, ok := PrefixMatch(short, "Honestly the café was great. Café was great.", 80); !ok {
		t.Fatalf("short history text should match when fully contained")
	}
}

func TestLeadingRunes(t *testing.T) {
	if got := leadingRunes("café au lait", 4); got != "café" {
		t.Fatalf("leadingRunes=%q", got)
	}
	if got := leadingRunes("abc", 10); got != "abc" {
		t.Fatalf("leadingRunes=%q", got)
	}
}
