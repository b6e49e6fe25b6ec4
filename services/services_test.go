package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/wangyukai585/BioAlgoDB/database/dbtest"
	"github.com/wangyukai585/BioAlgoDB/metrics"
	"github.com/wangyukai585/BioAlgoDB/models"
	"github.com/wangyukai585/BioAlgoDB/services"
	"github.com/wangyukai585/BioAlgoDB/utils/patch"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"gorm.io/gorm"
)

type recorder struct {
	mu      sync.Mutex
	changes []services.Change
}

func (r *recorder) Publish(c services.Change) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, c)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func uintPtr(u uint) *uint    { return &u }

type fixture struct {
	db      *gorm.DB
	svc     *services.Services
	events  *recorder
	problem models.Problem
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	events := &recorder{}
	f := &fixture{
		db:     db,
		events: events,
		svc: services.New(db, services.Options{
			Publisher: events,
			Logger:    dbtest.Logger(),
			JWTSecret: []byte("test-secret"),
		}),
		problem: models.Problem{Name: "Sequence alignment"},
	}
	if err := db.Create(&f.problem).Error; err != nil {
		t.Fatal(err)
	}
	return f
}

func (f *fixture) algorithm(t *testing.T, name string) *models.Algorithm {
	t.Helper()
	a, err := f.svc.Algorithms.Create(context.Background(), services.AlgorithmInput{Name: name, ProblemID: f.problem.ID})
	if err != nil {
		t.Fatalf("create algorithm %q: %v", name, err)
	}
	return a
}

func TestCreateDuplicateNamesConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alg := f.algorithm(t, "BLAST-like")

	tests := []struct {
		name   string
		create func() error
	}{
		{"algorithm", func() error {
			_, err := f.svc.Algorithms.Create(ctx, services.AlgorithmInput{Name: "BLAST-like", ProblemID: f.problem.ID})
			return err
		}},
		{"tool", func() error {
			in := services.ToolInput{Name: "blastn", AlgorithmID: alg.ID}
			if _, err := f.svc.Tools.Create(ctx, in); err != nil {
				return err
			}
			_, err := f.svc.Tools.Create(ctx, in)
			return err
		}},
		{"lab", func() error {
			in := services.LabInput{Name: "NCBI"}
			if _, err := f.svc.Labs.Create(ctx, in); err != nil {
				return err
			}
			_, err := f.svc.Labs.Create(ctx, in)
			return err
		}},
		{"paper doi", func() error {
			in := services.PaperInput{Title: "BLAST", DOI: strPtr("10.1016/S0022-2836(05)80360-2")}
			if _, err := f.svc.Papers.Create(ctx, in); err != nil {
				return err
			}
			in.Title = "BLAST again"
			_, err := f.svc.Papers.Create(ctx, in)
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.create(); !errors.Is(err, services.ErrConflict) {
				t.Fatalf("err = %v, want ErrConflict", err)
			}
		})
	}
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alg := f.algorithm(t, "y")

	tests := []struct {
		name   string
		create func() error
	}{
		{"algorithm without name", func() error {
			_, err := f.svc.Algorithms.Create(ctx, services.AlgorithmInput{ProblemID: f.problem.ID})
			return err
		}},
		{"algorithm without problem", func() error {
			_, err := f.svc.Algorithms.Create(ctx, services.AlgorithmInput{Name: "x"})
			return err
		}},
		{"algorithm with unknown problem", func() error {
			_, err := f.svc.Algorithms.Create(ctx, services.AlgorithmInput{Name: "x", ProblemID: 404})
			return err
		}},
		{"tool with unknown lab", func() error {
			_, err := f.svc.Tools.Create(ctx, services.ToolInput{Name: "x", AlgorithmID: alg.ID, LabID: uintPtr(404)})
			return err
		}},
		{"lab without name", func() error {
			_, err := f.svc.Labs.Create(ctx, services.LabInput{Name: "  "})
			return err
		}},
		{"paper with unknown algorithm", func() error {
			_, err := f.svc.Papers.Create(ctx, services.PaperInput{Title: "x", AlgorithmIDs: []uint{404}})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.create(); !errors.Is(err, services.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreateReturnsProjectedRecord(t *testing.T) {
	f := newFixture(t)
	alg := f.algorithm(t, "BLAST-like")

	if alg.ID == 0 || alg.Problem == nil || alg.Problem.Name != "Sequence alignment" {
		t.Fatalf("created algorithm not reloaded with problem: %+v", alg)
	}
	want := services.Change{Entity: "algorithm", Action: services.ActionCreated, ID: alg.ID}
	if len(f.events.changes) != 1 || f.events.changes[0] != want {
		t.Fatalf("changes = %+v, want [%+v]", f.events.changes, want)
	}
}

func TestUpdateLeavesOmittedFieldsUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alg, err := f.svc.Algorithms.Create(ctx, services.AlgorithmInput{
		Name:        "Needleman-Wunsch",
		ProblemID:   f.problem.ID,
		Description: strPtr("global alignment"),
		Year:        intPtr(1970),
	})
	if err != nil {
		t.Fatal(err)
	}

	var in services.AlgorithmPatch
	if err := json.Unmarshal([]byte(`{"year":1971}`), &in); err != nil {
		t.Fatal(err)
	}
	updated, err := f.svc.Algorithms.Update(ctx, alg.ID, in)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "Needleman-Wunsch" || updated.Description == nil || *updated.Description != "global alignment" {
		t.Fatalf("omitted fields changed: %+v", updated)
	}
	if updated.Year == nil || *updated.Year != 1971 {
		t.Fatalf("year = %v, want 1971", updated.Year)
	}

	// empty body is a no-op
	same, err := f.svc.Algorithms.Update(ctx, alg.ID, services.AlgorithmPatch{})
	if err != nil {
		t.Fatal(err)
	}
	if same.Name != updated.Name || *same.Year != 1971 {
		t.Fatalf("empty update changed record: %+v", same)
	}

	// explicit null clears a nullable field
	if err := json.Unmarshal([]byte(`{"description":null}`), &in); err != nil {
		t.Fatal(err)
	}
	cleared, err := f.svc.Algorithms.Update(ctx, alg.ID, in)
	if err != nil {
		t.Fatal(err)
	}
	if cleared.Description != nil {
		t.Fatalf("description = %q, want nil", *cleared.Description)
	}
}

func TestUpdateNameUniqueness(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.algorithm(t, "Smith-Waterman")
	f.algorithm(t, "Gotoh")

	// renaming to its own name is fine
	if _, err := f.svc.Algorithms.Update(ctx, first.ID, services.AlgorithmPatch{Name: patch.Of("Smith-Waterman")}); err != nil {
		t.Fatalf("self rename: %v", err)
	}
	_, err := f.svc.Algorithms.Update(ctx, first.ID, services.AlgorithmPatch{Name: patch.Of("Gotoh")})
	if !errors.Is(err, services.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	_, err = f.svc.Algorithms.Update(ctx, first.ID, services.AlgorithmPatch{Name: patch.Of("")})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	_, err = f.svc.Algorithms.Update(ctx, 999, services.AlgorithmPatch{Name: patch.Of("x")})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteAlgorithmWithToolsFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alg := f.algorithm(t, "Burrows-Wheeler alignment")
	if _, err := f.svc.Tools.Create(ctx, services.ToolInput{Name: "BWA", AlgorithmID: alg.ID}); err != nil {
		t.Fatal(err)
	}
	paper, err := f.svc.Papers.Create(ctx, services.PaperInput{Title: "Fast and accurate short read alignment", AlgorithmIDs: []uint{alg.ID}})
	if err != nil {
		t.Fatal(err)
	}

	err = f.svc.Algorithms.Delete(ctx, alg.ID)
	if err == nil {
		t.Fatal("expected delete to fail while tools reference the algorithm")
	}
	for _, sentinel := range []error{services.ErrNotFound, services.ErrConflict, services.ErrValidation} {
		if errors.Is(err, sentinel) {
			t.Fatalf("delete failure must surface as a server error, got %v", err)
		}
	}

	// the rollback keeps the paper link
	reloaded, err := f.svc.Papers.Get(ctx, paper.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(reloaded.Algorithms) != 1 {
		t.Fatalf("paper algorithms = %d, want 1", len(reloaded.Algorithms))
	}
	if _, err := f.svc.Algorithms.Get(ctx, alg.ID); err != nil {
		t.Fatalf("algorithm must still exist: %v", err)
	}
}

func TestDeleteAlgorithmWithoutTools(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alg := f.algorithm(t, "Viterbi")
	paper, err := f.svc.Papers.Create(ctx, services.PaperInput{Title: "Error bounds", AlgorithmIDs: []uint{alg.ID}})
	if err != nil {
		t.Fatal(err)
	}

	if err := f.svc.Algorithms.Delete(ctx, alg.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.svc.Algorithms.Get(ctx, alg.ID); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	reloaded, err := f.svc.Papers.Get(ctx, paper.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(reloaded.Algorithms) != 0 {
		t.Fatalf("paper still links deleted algorithm")
	}
	if err := f.svc.Algorithms.Delete(ctx, alg.ID); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestDeleteLabClearsToolReference(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alg := f.algorithm(t, "Seed-and-extend")
	lab, err := f.svc.Labs.Create(ctx, services.LabInput{Name: "NCBI", Country: strPtr("US")})
	if err != nil {
		t.Fatal(err)
	}
	tool, err := f.svc.Tools.Create(ctx, services.ToolInput{Name: "BLAST+", AlgorithmID: alg.ID, LabID: &lab.ID})
	if err != nil {
		t.Fatal(err)
	}
	if tool.Lab == nil || tool.Lab.Name != "NCBI" {
		t.Fatalf("tool lab = %+v", tool.Lab)
	}

	if err := f.svc.Labs.Delete(ctx, lab.ID); err != nil {
		t.Fatalf("delete lab: %v", err)
	}
	reloaded, err := f.svc.Tools.Get(ctx, tool.ID)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.LabID != nil || reloaded.Lab != nil {
		t.Fatalf("tool still references deleted lab: %+v", reloaded)
	}
}

func TestListFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := models.Problem{Name: "Genome assembly"}
	f.db.Create(&other)

	f.algorithm(t, "BLAST-like")
	f.algorithm(t, "Aho-Corasick")
	if _, err := f.svc.Algorithms.Create(ctx, services.AlgorithmInput{
		Name: "Overlap-layout-consensus", ProblemID: other.ID, Description: strPtr("uses BLAST hits"),
	}); err != nil {
		t.Fatal(err)
	}

	all, err := f.svc.Algorithms.List(ctx, services.AlgorithmFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].Name != "Aho-Corasick" || all[2].Name != "Overlap-layout-consensus" {
		t.Fatalf("unexpected order: %v", names(all))
	}

	blast, _ := f.svc.Algorithms.List(ctx, services.AlgorithmFilter{Keyword: "BLAST"})
	if len(blast) != 2 {
		t.Fatalf("keyword BLAST matched %v", names(blast))
	}
	lower, _ := f.svc.Algorithms.List(ctx, services.AlgorithmFilter{Keyword: "blast"})
	if len(lower) != 0 {
		t.Fatalf("keyword match must be case-sensitive, got %v", names(lower))
	}
	byProblem, _ := f.svc.Algorithms.List(ctx, services.AlgorithmFilter{Keyword: "BLAST", ProblemID: &f.problem.ID})
	if len(byProblem) != 1 || byProblem[0].Name != "BLAST-like" {
		t.Fatalf("problem filter matched %v", names(byProblem))
	}
}

func names(algorithms []models.Algorithm) []string {
	out := make([]string, len(algorithms))
	for i, a := range algorithms {
		out[i] = a.Name
	}
	return out
}

func TestPaperLinks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a1 := f.algorithm(t, "A1")
	a2 := f.algorithm(t, "A2")
	tool, err := f.svc.Tools.Create(ctx, services.ToolInput{Name: "T1", AlgorithmID: a1.ID})
	if err != nil {
		t.Fatal(err)
	}

	paper, err := f.svc.Papers.Create(ctx, services.PaperInput{
		Title:        "Paper",
		Journal:      strPtr("Bioinformatics"),
		AlgorithmIDs: []uint{a1.ID, a1.ID},
		ToolIDs:      []uint{tool.ID},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(paper.Algorithms) != 1 || len(paper.Tools) != 1 {
		t.Fatalf("links = %d/%d, want 1/1", len(paper.Algorithms), len(paper.Tools))
	}

	var in services.PaperPatch
	json.Unmarshal([]byte(`{"algorithm_ids":[`+itoa(a2.ID)+`]}`), &in)
	updated, err := f.svc.Papers.Update(ctx, paper.ID, in)
	if err != nil {
		t.Fatal(err)
	}
	if len(updated.Algorithms) != 1 || updated.Algorithms[0].ID != a2.ID {
		t.Fatalf("algorithm links not replaced: %+v", updated.Algorithms)
	}
	if len(updated.Tools) != 1 || *updated.Journal != "Bioinformatics" {
		t.Fatalf("omitted fields changed: %+v", updated)
	}

	byTool, err := f.svc.Papers.List(ctx, services.PaperFilter{ToolID: &tool.ID})
	if err != nil || len(byTool) != 1 {
		t.Fatalf("tool filter = %d, %v", len(byTool), err)
	}
	byAlg, _ := f.svc.Papers.List(ctx, services.PaperFilter{AlgorithmID: &a1.ID})
	if len(byAlg) != 0 {
		t.Fatalf("algorithm filter still matches unlinked paper")
	}
	byJournal, _ := f.svc.Papers.List(ctx, services.PaperFilter{Keyword: "Bioinf"})
	if len(byJournal) != 1 {
		t.Fatalf("journal keyword matched %d papers", len(byJournal))
	}

	if err := f.svc.Papers.Delete(ctx, paper.ID); err != nil {
		t.Fatal(err)
	}
	var links int64
	f.db.Table("algorithm_paper").Count(&links)
	if links != 0 {
		t.Fatalf("algorithm_paper rows = %d after delete", links)
	}
}

func itoa(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func TestStatsIncludesEmptyProblems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	empty := models.Problem{Name: "Assembly"}
	f.db.Create(&empty)
	f.algorithm(t, "A")
	f.algorithm(t, "B")

	stats, err := f.svc.Stats.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.AlgorithmCount != 2 || stats.ToolCount != 0 || stats.PaperCount != 0 {
		t.Fatalf("counts = %+v", stats)
	}
	want := []services.ProblemAlgorithmCount{
		{ProblemID: empty.ID, ProblemName: "Assembly", AlgorithmCount: 0},
		{ProblemID: f.problem.ID, ProblemName: "Sequence alignment", AlgorithmCount: 2},
	}
	if len(stats.AlgorithmByProblem) != len(want) {
		t.Fatalf("breakdown = %+v", stats.AlgorithmByProblem)
	}
	for i := range want {
		if stats.AlgorithmByProblem[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, stats.AlgorithmByProblem[i], want[i])
		}
	}
	if got := testutil.ToFloat64(metrics.CatalogRecords.WithLabelValues("algorithm")); got != 2 {
		t.Errorf("catalog_records{entity=algorithm} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.CatalogRecords.WithLabelValues("paper")); got != 0 {
		t.Errorf("catalog_records{entity=paper} = %v, want 0", got)
	}
}

func TestProblems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.algorithm(t, "Z-algorithm")
	f.algorithm(t, "KMP")

	problems, err := f.svc.Problems.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(problems) != 1 || len(problems[0].Algorithms) != 2 || problems[0].Algorithms[0].Name != "KMP" {
		t.Fatalf("problems = %+v", problems)
	}
	if _, err := f.svc.Problems.Get(ctx, 404); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func (r *recorder) count(action string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.changes {
		if c.Action == action {
			n++
		}
	}
	return n
}

func TestEmptyUpdatePublishesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alg := f.algorithm(t, "Smith-Waterman")
	tool, err := f.svc.Tools.Create(ctx, services.ToolInput{Name: "SSEARCH", AlgorithmID: alg.ID})
	if err != nil {
		t.Fatal(err)
	}
	lab, err := f.svc.Labs.Create(ctx, services.LabInput{Name: "Pearson Lab"})
	if err != nil {
		t.Fatal(err)
	}
	paper, err := f.svc.Papers.Create(ctx, services.PaperInput{Title: "Rapid and sensitive protein similarity searches"})
	if err != nil {
		t.Fatal(err)
	}

	noops := map[string]func() error{
		"algorithm": func() error { _, err := f.svc.Algorithms.Update(ctx, alg.ID, services.AlgorithmPatch{}); return err },
		"tool":      func() error { _, err := f.svc.Tools.Update(ctx, tool.ID, services.ToolPatch{}); return err },
		"lab":       func() error { _, err := f.svc.Labs.Update(ctx, lab.ID, services.LabPatch{}); return err },
		"paper":     func() error { _, err := f.svc.Papers.Update(ctx, paper.ID, services.PaperPatch{}); return err },
	}
	for name, update := range noops {
		if err := update(); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
	if n := f.events.count(services.ActionUpdated); n != 0 {
		t.Fatalf("empty updates published %d events", n)
	}

	var in services.PaperPatch
	if err := json.Unmarshal([]byte(`{"tool_ids":[`+itoa(tool.ID)+`]}`), &in); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Papers.Update(ctx, paper.ID, in); err != nil {
		t.Fatal(err)
	}
	if n := f.events.count(services.ActionUpdated); n != 1 {
		t.Fatalf("link replacement published %d events, want 1", n)
	}
}
