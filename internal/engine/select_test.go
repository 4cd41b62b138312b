package engine

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/linuxgeek/simulado/internal/model"
)

func testPool() []model.Question {
	return []model.Question{
		mcq("m1", 0), mcq("m2", 1), mcq("m3", 2),
		textq("t1", "a"), textq("t2", "b"),
	}
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func TestSelectQuestionsAll(t *testing.T) {
	pool := testPool()
	got := SelectQuestions(pool, SessionConfig{Mode: ModeMixed, Quantity: QuantityAll()}, testRNG())

	if len(got) != len(pool) {
		t.Fatalf("len = %d, want %d", len(got), len(pool))
	}
	seen := map[string]bool{}
	for _, q := range got {
		if seen[q.ID] {
			t.Fatalf("question %s drawn twice", q.ID)
		}
		seen[q.ID] = true
	}
	for _, q := range pool {
		if !seen[q.ID] {
			t.Fatalf("question %s missing from selection", q.ID)
		}
	}
}

func TestSelectQuestionsModeFilter(t *testing.T) {
	tests := []struct {
		name    string
		mode    Mode
		wantLen int
		wantTyp model.QuestionType
	}{
		{"multiple only", ModeMultiple, 3, model.QuestionTypeMultiple},
		{"text only", ModeText, 2, model.QuestionTypeText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectQuestions(testPool(), SessionConfig{Mode: tt.mode, Quantity: QuantityAll()}, testRNG())
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(got), tt.wantLen)
			}
			for _, q := range got {
				if q.Type != tt.wantTyp {
					t.Fatalf("question %s has type %q", q.ID, q.Type)
				}
			}
		})
	}
}

func TestSelectQuestionsEmptyModeMeansMixed(t *testing.T) {
	got := SelectQuestions(testPool(), SessionConfig{Quantity: QuantityAll()}, testRNG())
	if len(got) != len(testPool()) {
		t.Fatalf("len = %d, want %d", len(got), len(testPool()))
	}
}

func TestSelectQuestionsQuantityClamp(t *testing.T) {
	tests := []struct {
		name    string
		qty     Quantity
		wantLen int
	}{
		{"fewer than pool", QuantityOf(2), 2},
		{"more than pool", QuantityOf(50), 5},
		{"zero clamps to one", QuantityOf(0), 1},
		{"negative clamps to one", QuantityOf(-3), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectQuestions(testPool(), SessionConfig{Mode: ModeMixed, Quantity: tt.qty}, testRNG())
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestSelectQuestionsEmptyFilteredPool(t *testing.T) {
	pool := []model.Question{mcq("m1", 0)}
	if got := SelectQuestions(pool, SessionConfig{Mode: ModeText, Quantity: QuantityAll()}, testRNG()); got != nil {
		t.Fatalf("got %d questions from an empty filtered pool", len(got))
	}
	if got := SelectQuestions(nil, SessionConfig{Mode: ModeMixed, Quantity: QuantityAll()}, testRNG()); got != nil {
		t.Fatalf("got %d questions from a nil pool", len(got))
	}
}

func TestSelectQuestionsDoesNotMutatePool(t *testing.T) {
	pool := testPool()
	ids := make([]string, len(pool))
	for i, q := range pool {
		ids[i] = q.ID
	}

	SelectQuestions(pool, SessionConfig{Mode: ModeMixed, Quantity: QuantityAll()}, testRNG())

	for i, q := range pool {
		if q.ID != ids[i] {
			t.Fatalf("pool order changed at %d: %s -> %s", i, ids[i], q.ID)
		}
	}
}

func TestSelectQuestionsShuffles(t *testing.T) {
	pool := make([]model.Question, 30)
	for i := range pool {
		pool[i] = mcq("q"+strconv.Itoa(i), 0)
	}

	// With 30 questions the odds of an identity shuffle are negligible;
	// a fixed seed keeps this deterministic anyway.
	got := SelectQuestions(pool, SessionConfig{Mode: ModeMixed, Quantity: QuantityAll()}, testRNG())
	same := true
	for i := range got {
		if got[i].ID != pool[i].ID {
			same = false
			break
		}
	}
	if same {
		t.Fatal("selection preserved pool order exactly")
	}
}

func TestSelectQuestionsFirstPositionUniform(t *testing.T) {
	const (
		poolSize = 5
		trials   = 5000
	)
	pool := make([]model.Question, poolSize)
	for i := range pool {
		pool[i] = mcq("q"+strconv.Itoa(i), 0)
	}

	rng := testRNG()
	counts := map[string]int{}
	for i := 0; i < trials; i++ {
		got := SelectQuestions(pool, SessionConfig{Mode: ModeMixed, Quantity: QuantityAll()}, rng)
		counts[got[0].ID]++
	}

	// Expected 1000 per question; a 30% band is far looser than the
	// binomial spread at this trial count.
	expected := trials / poolSize
	for id, n := range counts {
		if n < expected*7/10 || n > expected*13/10 {
			t.Fatalf("question %s led %d of %d trials, outside uniform band", id, n, trials)
		}
	}
	if len(counts) != poolSize {
		t.Fatalf("only %d of %d questions ever led", len(counts), poolSize)
	}
}
