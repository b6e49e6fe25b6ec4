package views

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/wangyukai585/BioAlgoDB/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func decode(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return out
}

func TestAlgorithmProjectionStopsAtOneLevel(t *testing.T) {
	alg := models.Algorithm{
		ID:        7,
		ProblemID: 1,
		Name:      "Smith-Waterman",
		Year:      intPtr(1981),
		Problem:   &models.Problem{ID: 1, Name: "Sequence alignment"},
		Tools:     []models.Tool{{ID: 3, Name: "SSEARCH", Version: strPtr("36")}},
		Papers: []models.Paper{{
			ID:    9,
			Title: "Identification of common molecular subsequences",
			Year:  intPtr(1981),
			DOI:   strPtr("10.1016/0022-2836(81)90087-5"),
			// cyclic back-reference must not leak into the projection
			Algorithms: []models.Algorithm{{ID: 7, Name: "Smith-Waterman"}},
			Tools:      []models.Tool{{ID: 3, Name: "SSEARCH"}},
		}},
	}

	got := decode(t, Algorithm(&alg))

	papers, ok := got["papers"].([]interface{})
	if !ok || len(papers) != 1 {
		t.Fatalf("papers = %v", got["papers"])
	}
	paper := papers[0].(map[string]interface{})
	for _, key := range []string{"algorithms", "tools", "journal", "authors"} {
		if _, exists := paper[key]; exists {
			t.Errorf("nested paper exposes %q", key)
		}
	}
	for _, key := range []string{"id", "title", "year", "doi"} {
		if _, exists := paper[key]; !exists {
			t.Errorf("nested paper misses %q", key)
		}
	}

	problem := got["problem"].(map[string]interface{})
	if problem["name"] != "Sequence alignment" {
		t.Errorf("problem.name = %v", problem["name"])
	}
	if _, exists := problem["algorithms"]; exists {
		t.Error("nested problem exposes algorithms")
	}

	tools := got["tools"].([]interface{})
	tool := tools[0].(map[string]interface{})
	if len(tool) != 3 {
		t.Errorf("nested tool fields = %v, want id/name/version", tool)
	}
}

func TestToolProjection(t *testing.T) {
	tests := []struct {
		name    string
		tool    models.Tool
		wantLab bool
	}{
		{
			name: "with lab",
			tool: models.Tool{
				ID: 1, AlgorithmID: 2, LabID: func() *uint { v := uint(4); return &v }(), Name: "BWA",
				Algorithm: &models.Algorithm{ID: 2, Name: "BWT alignment", Problem: &models.Problem{ID: 1}},
				Lab:       &models.Lab{ID: 4, Name: "Sanger", Tools: []models.Tool{{ID: 1}}},
			},
			wantLab: true,
		},
		{
			name: "without lab",
			tool: models.Tool{ID: 1, AlgorithmID: 2, Name: "BWA", Algorithm: &models.Algorithm{ID: 2, Name: "BWT alignment"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decode(t, Tool(&tt.tool))

			if tt.wantLab {
				lab := got["lab"].(map[string]interface{})
				if _, exists := lab["tools"]; exists {
					t.Error("nested lab exposes tools")
				}
			} else if got["lab"] != nil {
				t.Errorf("lab = %v, want null", got["lab"])
			}

			alg := got["algorithm"].(map[string]interface{})
			if _, exists := alg["problem"]; exists {
				t.Error("nested algorithm exposes problem")
			}
			if papers, ok := got["papers"].([]interface{}); !ok || len(papers) != 0 {
				t.Errorf("papers = %v, want []", got["papers"])
			}
		})
	}
}

func TestEmptyRelationsEncodeAsArrays(t *testing.T) {
	raw, err := json.Marshal(Lab(&models.Lab{ID: 1, Name: "EMBL-EBI"}))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"tools":[]`) {
		t.Fatalf("expected empty tools array, got %s", raw)
	}

	raw, err = json.Marshal(Problems(nil))
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "[]" {
		t.Fatalf("Problems(nil) = %s, want []", raw)
	}
}

func TestUserProjectionOmitsPasswordHash(t *testing.T) {
	u := models.User{
		ID:           1,
		Username:     "admin",
		Email:        "admin@bioalgodb.local",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         models.RoleAdmin,
		CreatedAt:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	for _, v := range []interface{}{User(&u), u} {
		raw, err := json.Marshal(v)
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(string(raw), "password") || strings.Contains(string(raw), "$2a$") {
			t.Fatalf("credential leaked: %s", raw)
		}
	}

	got := decode(t, User(&u))
	if got["role"] != "admin" || got["created_at"] != "2024-01-02T03:04:05Z" {
		t.Fatalf("unexpected user view %v", got)
	}
}

func TestPaperProjection(t *testing.T) {
	p := models.Paper{
		ID:         2,
		Title:      "Basic local alignment search tool",
		Journal:    strPtr("J Mol Biol"),
		Algorithms: []models.Algorithm{{ID: 5, Name: "BLAST", Papers: []models.Paper{{ID: 2}}}},
		Tools:      []models.Tool{{ID: 6, Name: "NCBI BLAST+", Version: strPtr("2.15"), Papers: []models.Paper{{ID: 2}}}},
	}

	got := decode(t, Paper(&p))
	alg := got["algorithms"].([]interface{})[0].(map[string]interface{})
	if len(alg) != 2 {
		t.Errorf("nested algorithm fields = %v, want id/name", alg)
	}
	tool := got["tools"].([]interface{})[0].(map[string]interface{})
	if _, exists := tool["papers"]; exists {
		t.Error("nested tool exposes papers")
	}
	if got["journal"] != "J Mol Biol" {
		t.Errorf("journal = %v", got["journal"])
	}
}
