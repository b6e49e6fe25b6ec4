package database_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/wangyukai585/BioAlgoDB/database"
	"github.com/wangyukai585/BioAlgoDB/database/dbtest"
	"github.com/wangyukai585/BioAlgoDB/models"
	"github.com/wangyukai585/BioAlgoDB/utils"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

func strPtr(s string) *string { return &s }

func TestConnectRejectsUnknownScheme(t *testing.T) {
	_, err := database.Connect("mysql://root@localhost/bioalgodb", dbtest.Logger())
	if !errors.Is(err, database.ErrUnsupportedDSN) {
		t.Fatalf("expected ErrUnsupportedDSN, got %v", err)
	}
}

func TestConstraintsAreTranslated(t *testing.T) {
	db := dbtest.Open(t)

	problem := models.Problem{Name: "Sequence alignment"}
	if err := db.Create(&problem).Error; err != nil {
		t.Fatal(err)
	}

	dup := models.Problem{Name: "Sequence alignment"}
	if err := db.Create(&dup).Error; !database.IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}

	orphan := models.Algorithm{Name: "Orphan", ProblemID: 999}
	if err := db.Omit("Problem").Create(&orphan).Error; !database.IsForeignKeyViolation(err) {
		t.Fatalf("expected foreign key violation, got %v", err)
	}
}

func TestForeignKeyViolationCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"sqlite insert", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, true},
		{"sqlite restrict delete", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintTrigger}, true},
		{"wrapped sqlite", fmt.Errorf("delete: %w", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintTrigger}), true},
		{"sqlite unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, false},
		{"postgres", &pgconn.PgError{Code: "23503"}, true},
		{"other", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := database.IsForeignKeyViolation(tt.err); got != tt.want {
				t.Fatalf("IsForeignKeyViolation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestReferentialActions(t *testing.T) {
	db := dbtest.Open(t)

	problem := models.Problem{Name: "Read mapping"}
	db.Create(&problem)
	algorithm := models.Algorithm{Name: "FM-index search", ProblemID: problem.ID}
	db.Create(&algorithm)
	lab := models.Lab{Name: "Li Lab"}
	db.Create(&lab)
	tool := models.Tool{Name: "BWA", AlgorithmID: algorithm.ID, LabID: &lab.ID}
	db.Create(&tool)

	if err := db.Delete(&models.Algorithm{}, algorithm.ID).Error; !database.IsForeignKeyViolation(err) {
		t.Fatalf("deleting a referenced algorithm: got %v, want foreign key violation", err)
	}
	if err := db.Delete(&models.Problem{}, problem.ID).Error; !database.IsForeignKeyViolation(err) {
		t.Fatalf("deleting a referenced problem: got %v, want foreign key violation", err)
	}

	if err := db.Delete(&models.Lab{}, lab.ID).Error; err != nil {
		t.Fatalf("delete lab: %v", err)
	}
	var reloaded models.Tool
	if err := db.First(&reloaded, tool.ID).Error; err != nil {
		t.Fatal(err)
	}
	if reloaded.LabID != nil {
		t.Fatalf("LabID = %v, want nil after lab delete", *reloaded.LabID)
	}
}

func TestContainsIsCaseSensitive(t *testing.T) {
	db := dbtest.Open(t)

	problem := models.Problem{Name: "Homology search"}
	db.Create(&problem)
	for _, a := range []models.Algorithm{
		{Name: "BLAST-like", ProblemID: problem.ID},
		{Name: "blastn heuristics", ProblemID: problem.ID},
		{Name: "HMMER", ProblemID: problem.ID, Description: strPtr("profile HMM, faster than BLAST")},
	} {
		a := a
		if err := db.Create(&a).Error; err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		keyword string
		want    int
	}{
		{"BLAST", 2},
		{"blast", 1},
		{"HMM", 1},
		{"", 3},
		{"%", 0},
	}
	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			var got []models.Algorithm
			q := database.Contains(db.Model(&models.Algorithm{}), tt.keyword, "name", "description")
			if err := q.Find(&got).Error; err != nil {
				t.Fatal(err)
			}
			if len(got) != tt.want {
				t.Fatalf("Contains(%q) returned %d rows, want %d", tt.keyword, len(got), tt.want)
			}
		})
	}
}

const seedYAML = `
problems:
  - name: Sequence alignment
    description: Aligning biological sequences
  - name: Genome assembly
algorithms:
  - name: Smith-Waterman
    problem: Sequence alignment
    year: 1981
  - name: de Bruijn graph assembly
    problem: Genome assembly
labs:
  - name: EMBL-EBI
    country: UK
tools:
  - name: SSEARCH
    algorithm: Smith-Waterman
    lab: EMBL-EBI
    version: "36.3"
papers:
  - title: Identification of common molecular subsequences
    year: 1981
    doi: 10.1016/0022-2836(81)90087-5
    algorithms: [Smith-Waterman]
    tools: [SSEARCH]
users:
  - username: curator
    email: curator@bioalgodb.local
    role: admin
    password: s3cret
  - username: legacy
    email: legacy@bioalgodb.local
    password_hash: pbkdf2:sha256:1000$NaClNaClNaClNaC$3ea1594d9dcc0b3ff8575fa891f0cdc0dd9e2455b01584983288b28b942d5a16
`

func TestPopulateWithSeed(t *testing.T) {
	db := dbtest.Open(t)
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(seedYAML), 0o600); err != nil {
		t.Fatal(err)
	}
	admin := database.AdminAccount{Username: "admin", Email: "admin@bioalgodb.local", Password: "admin"}

	// applying twice must not duplicate anything
	for i := 0; i < 2; i++ {
		if err := database.Populate(db, admin, path, dbtest.Logger()); err != nil {
			t.Fatalf("populate #%d: %v", i+1, err)
		}
	}

	counts := map[string]struct {
		model interface{}
		want  int64
	}{
		"problems":   {&models.Problem{}, 2},
		"algorithms": {&models.Algorithm{}, 2},
		"labs":       {&models.Lab{}, 1},
		"tools":      {&models.Tool{}, 1},
		"papers":     {&models.Paper{}, 1},
		"users":      {&models.User{}, 3},
	}
	for name, c := range counts {
		var got int64
		db.Model(c.model).Count(&got)
		if got != c.want {
			t.Errorf("%s = %d, want %d", name, got, c.want)
		}
	}

	var paper models.Paper
	if err := db.Preload("Algorithms").Preload("Tools").First(&paper).Error; err != nil {
		t.Fatal(err)
	}
	if len(paper.Algorithms) != 1 || len(paper.Tools) != 1 {
		t.Fatalf("paper links = %d algorithms, %d tools", len(paper.Algorithms), len(paper.Tools))
	}

	var admins []models.User
	db.Where("role = ?", models.RoleAdmin).Order("username").Find(&admins)
	if len(admins) != 2 || admins[0].Username != "admin" || admins[1].Username != "curator" {
		t.Fatalf("admins = %+v", admins)
	}

	var legacy models.User
	db.Where("username = ?", "legacy").First(&legacy)
	ok, isLegacy, err := utils.CheckPassword(legacy.PasswordHash, "correct horse")
	if err != nil || !ok || !isLegacy {
		t.Fatalf("legacy hash check = %v, %v, %v", ok, isLegacy, err)
	}
}

func TestPopulateSkipsAdminWhenUsersExist(t *testing.T) {
	db := dbtest.Open(t)
	db.Create(&models.User{Username: "someone", Email: "someone@example.org", PasswordHash: "x", Role: models.RoleUser})

	err := database.Populate(db, database.AdminAccount{Username: "admin", Email: "a@b.c", Password: "admin"}, "", dbtest.Logger())
	if err != nil {
		t.Fatal(err)
	}
	var count int64
	db.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count != 0 {
		t.Fatal("default admin must only be created on an empty user table")
	}
}

func TestApplySeedUnknownReference(t *testing.T) {
	db := dbtest.Open(t)
	seed := &database.Seed{}
	seed.Algorithms = append(seed.Algorithms, struct {
		Name        string  `yaml:"name"`
		Problem     string  `yaml:"problem"`
		Description *string `yaml:"description"`
		Year        *int    `yaml:"year"`
	}{Name: "Lost", Problem: "Nowhere"})

	if err := database.ApplySeed(db, seed); err == nil {
		t.Fatal("expected error for unknown problem")
	}
	var count int64
	db.Model(&models.Algorithm{}).Count(&count)
	if count != 0 {
		t.Fatalf("algorithms = %d, want 0 after rollback", count)
	}
}
