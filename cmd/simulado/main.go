package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/linuxgeek/simulado/internal/config"
	"github.com/linuxgeek/simulado/internal/engine"
	"github.com/linuxgeek/simulado/internal/localstore"
	"github.com/linuxgeek/simulado/internal/logger"
	"github.com/linuxgeek/simulado/internal/model"
	"github.com/linuxgeek/simulado/internal/progress"
	"github.com/linuxgeek/simulado/internal/qbank"
)

func main() {
	var (
		slug     string
		examCode string
		mode     string
		quantity int
		minutes  int
		list     bool
		history  bool
	)
	flag.StringVar(&slug, "simulado", "", "Simulado slug (e.g. lpic1)")
	flag.StringVar(&examCode, "exam", model.ExamCodeMixed, "Exam subset code, or 'mixed' for the whole bank")
	flag.StringVar(&mode, "mode", string(engine.ModeMixed), "Question type filter: multiple, text or mixed")
	flag.IntVar(&quantity, "n", 0, "Number of questions (0 = all)")
	flag.IntVar(&minutes, "time", 0, "Time limit in minutes (0 = untimed)")
	flag.BoolVar(&list, "list", false, "List available simulados and exit")
	flag.BoolVar(&history, "history", false, "Show session history and exit")
	flag.Parse()

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	client := qbank.NewClient(cfg.CatalogBaseURL, log)

	// ─── Open Local Store ──────────────────────────────────────────────
	store, err := localstore.OpenSQLite(ctx, cfg.LocalStorePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.LocalStorePath).Msg("Failed to open local store")
	}
	defer store.Close()

	remote := progress.NewRemoteClient(cfg.ProgressBaseURL, cfg.AccessToken, log)
	bridge := progress.NewBridge(progress.NewLocalList(store), remote, log)

	switch {
	case list:
		if err := printSimulados(ctx, client); err != nil {
			log.Fatal().Err(err).Msg("Failed to list simulados")
		}
		return
	case history:
		if err := printHistory(ctx, bridge); err != nil {
			log.Fatal().Err(err).Msg("Failed to load history")
		}
		return
	}

	if slug == "" {
		fmt.Println("Error: -simulado is required (use -list to see what is available)")
		flag.Usage()
		os.Exit(1)
	}

	// ─── Validate Configuration Against Exam Options ──────────────────
	opts, err := client.ExamOptions(ctx, slug)
	if err != nil {
		log.Fatal().Err(err).Str("simulado", slug).Msg("Failed to load exam options")
	}
	if err := checkConfig(opts, examCode, mode); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	// ─── Fetch Question Pool ───────────────────────────────────────────
	pool, err := client.Questions(ctx, slug, examCode)
	if err != nil {
		log.Fatal().Err(err).Str("simulado", slug).Msg("Failed to load questions")
	}

	sessionCfg := engine.SessionConfig{
		Simulado:      slug,
		SimuladoLabel: slug,
		ExamCode:      examCode,
		Mode:          engine.Mode(mode),
		Quantity:      engine.QuantityAll(),
		TimeLimit:     time.Duration(minutes) * time.Minute,
	}
	if quantity > 0 {
		sessionCfg.Quantity = engine.QuantityOf(quantity)
	}

	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(os.Getpid())))
	selected := engine.SelectQuestions(pool, sessionCfg, rng)

	session, err := engine.NewSession(sessionCfg, selected)
	if err != nil {
		fmt.Println("Error: no questions match this configuration")
		os.Exit(1)
	}

	// ─── Run the Exam ──────────────────────────────────────────────────
	rec := runExam(session)

	printReport(rec)

	// ─── Persist ───────────────────────────────────────────────────────
	bridge.Persist(ctx, rec)
	bridge.Wait()
}

// checkConfig rejects combinations the bank cannot serve before any
// question is fetched.
func checkConfig(opts *model.ExamOptions, examCode, mode string) error {
	switch engine.Mode(mode) {
	case engine.ModeMixed:
	case engine.ModeMultiple:
		if !opts.HasType(model.QuestionTypeMultiple) {
			return fmt.Errorf("this simulado has no multiple-choice questions")
		}
	case engine.ModeText:
		if !opts.HasType(model.QuestionTypeText) {
			return fmt.Errorf("this simulado has no text questions")
		}
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}

	if examCode == "" || examCode == model.ExamCodeMixed {
		return nil
	}
	for _, e := range opts.Exams {
		if e.Code == examCode {
			return nil
		}
	}
	return fmt.Errorf("unknown exam %q", examCode)
}

// runExam drives the interactive question loop and always returns the
// finalized record, whether the user finished, quit, or ran out of time.
func runExam(session *engine.Session) model.SessionRecord {
	cfg := session.Config()

	fmt.Printf("=== %s", cfg.Simulado)
	if cfg.ExamCode != "" && cfg.ExamCode != model.ExamCodeMixed {
		fmt.Printf(" / exam %s", cfg.ExamCode)
	}
	fmt.Printf(" - %d questions", session.Len())
	if cfg.TimeLimit > 0 {
		fmt.Printf(", %s limit", cfg.TimeLimit)
	}
	fmt.Println(" ===")
	fmt.Println("Answer with the option number, or type the answer for text questions.")
	fmt.Println("Press Enter to skip a question, 'q' to finish early.")
	fmt.Println()

	// Stdin is read on its own goroutine so the timer can cut the exam
	// short while a prompt is pending.
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	expired := make(chan struct{})
	if cfg.TimeLimit > 0 {
		timerCtx, timerCancel := context.WithCancel(context.Background())
		defer timerCancel()

		var warned bool
		timer := engine.NewTimer(cfg.TimeLimit)
		go timer.Run(timerCtx, session.StartedAt(), func(t engine.Tick) {
			if t.Warning && !warned {
				warned = true
				fmt.Printf("\n*** %s remaining ***\n", t.Remaining.Round(time.Second))
			}
		}, func() {
			close(expired)
		})
	}

loop:
	for i := 0; i < session.Len(); i++ {
		q, err := session.Question(i)
		if err != nil {
			break
		}
		askQuestion(i, session.Len(), q)

		select {
		case line, ok := <-lines:
			if !ok || strings.TrimSpace(line) == "q" {
				break loop
			}
			answerQuestion(session, i, q, line)
		case <-expired:
			fmt.Println("\n*** Time is up ***")
			break loop
		}
	}

	return session.Finalize()
}

func askQuestion(i, total int, q model.Question) {
	fmt.Printf("[%d/%d] %s\n", i+1, total, q.Prompt)
	if q.Type == model.QuestionTypeMultiple {
		for j, opt := range q.Options {
			fmt.Printf("  %d) %s\n", j+1, opt)
		}
	}
	fmt.Print("> ")
}

func answerQuestion(session *engine.Session, i int, q model.Question, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		fmt.Println("(skipped)")
		fmt.Println()
		return
	}

	var (
		status engine.Status
		err    error
	)
	if q.Type == model.QuestionTypeMultiple {
		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < 1 || n > len(q.Options) {
			fmt.Println("(invalid option, skipped)")
			fmt.Println()
			return
		}
		status, err = session.SelectOption(i, n-1)
	} else {
		status, err = session.SubmitText(i, line)
	}
	if err != nil {
		fmt.Println("(not accepted:", err, ")")
		fmt.Println()
		return
	}

	if status == engine.StatusCorrect {
		fmt.Println("Correct!")
	} else {
		fmt.Println("Incorrect.")
		if q.Hint != "" {
			fmt.Println("Hint:", q.Hint)
		}
	}
	fmt.Println()
}

func printReport(rec model.SessionRecord) {
	fmt.Println()
	fmt.Println("=== Result ===")
	fmt.Printf("Score:    %d%%\n", rec.Score)
	fmt.Printf("Correct:  %d / %d\n", rec.Correct, rec.Total)
	fmt.Printf("Wrong:    %d\n", rec.Wrong)
	fmt.Printf("Duration: %ds\n", rec.Duration)
	if rec.Passed {
		fmt.Println("Status:   PASSED")
	} else {
		fmt.Println("Status:   FAILED")
	}
}

func printSimulados(ctx context.Context, client *qbank.Client) error {
	sims, err := client.Simulados(ctx)
	if err != nil {
		return err
	}
	if len(sims) == 0 {
		fmt.Println("No simulados available.")
		return nil
	}
	for _, s := range sims {
		premium := ""
		if s.IsPremium {
			premium = " (premium)"
		}
		fmt.Printf("%-16s %s%s\n", s.Slug, s.Title, premium)
	}
	return nil
}

func printHistory(ctx context.Context, bridge *progress.Bridge) error {
	records, err := bridge.Load(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}
	for _, r := range records {
		outcome := "failed"
		if r.Passed {
			outcome = "passed"
		}
		fmt.Printf("%s  %-16s %-8s %3d%%  %d/%d  %s\n",
			r.Date, r.Simulado, r.Exam, r.Score, r.Correct, r.Total, outcome)
	}
	return nil
}
