package services

import (
	"context"
	"fmt"

	"github.com/wangyukai585/BioAlgoDB/models"

	"github.com/xuri/excelize/v2"
)

// ExportService renders the catalog as a spreadsheet
type ExportService struct {
	store
}

// Sheet names in workbook order
const (
	SheetProblems   = "Problems"
	SheetAlgorithms = "Algorithms"
	SheetTools      = "Tools"
	SheetLabs       = "Labs"
	SheetPapers     = "Papers"
)

// Workbook builds one sheet per entity with a header row and one row per record.
// The caller owns the returned file and must close it.
func (s *ExportService) Workbook(ctx context.Context) (*excelize.File, error) {
	db, cancel := s.session(ctx)
	defer cancel()

	var (
		problems   []models.Problem
		algorithms []models.Algorithm
		tools      []models.Tool
		labs       []models.Lab
		papers     []models.Paper
	)
	if err := db.Order("name ASC").Find(&problems).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("Problem").Order("name ASC").Find(&algorithms).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("Algorithm").Preload("Lab").Order("name ASC").Find(&tools).Error; err != nil {
		return nil, err
	}
	if err := db.Order("name ASC").Find(&labs).Error; err != nil {
		return nil, err
	}
	if err := db.Order("title ASC").Find(&papers).Error; err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheets := []struct {
		name   string
		header []interface{}
		rows   [][]interface{}
	}{
		{SheetProblems, []interface{}{"ID", "Name", "Description"}, problemRows(problems)},
		{SheetAlgorithms, []interface{}{"ID", "Name", "Problem", "Year", "Description"}, algorithmRows(algorithms)},
		{SheetTools, []interface{}{"ID", "Name", "Version", "Algorithm", "Lab", "License", "Website", "Description"}, toolRows(tools)},
		{SheetLabs, []interface{}{"ID", "Name", "Institution", "Country", "Website", "Description"}, labRows(labs)},
		{SheetPapers, []interface{}{"ID", "Title", "Year", "DOI", "Journal", "Authors"}, paperRows(papers)},
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				f.Close()
				return nil, err
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			f.Close()
			return nil, err
		}

		if err := writeRows(f, sheet.name, sheet.header, sheet.rows); err != nil {
			f.Close()
			return nil, fmt.Errorf("write sheet %s: %w", sheet.name, err)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeRows(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func problemRows(problems []models.Problem) [][]interface{} {
	rows := make([][]interface{}, len(problems))
	for i, p := range problems {
		rows[i] = []interface{}{p.ID, p.Name, str(p.Description)}
	}
	return rows
}

func algorithmRows(algorithms []models.Algorithm) [][]interface{} {
	rows := make([][]interface{}, len(algorithms))
	for i, a := range algorithms {
		problem := ""
		if a.Problem != nil {
			problem = a.Problem.Name
		}
		rows[i] = []interface{}{a.ID, a.Name, problem, num(a.Year), str(a.Description)}
	}
	return rows
}

func toolRows(tools []models.Tool) [][]interface{} {
	rows := make([][]interface{}, len(tools))
	for i, t := range tools {
		algorithm, lab := "", ""
		if t.Algorithm != nil {
			algorithm = t.Algorithm.Name
		}
		if t.Lab != nil {
			lab = t.Lab.Name
		}
		rows[i] = []interface{}{t.ID, t.Name, str(t.Version), algorithm, lab, str(t.License), str(t.Website), str(t.Description)}
	}
	return rows
}

func labRows(labs []models.Lab) [][]interface{} {
	rows := make([][]interface{}, len(labs))
	for i, l := range labs {
		rows[i] = []interface{}{l.ID, l.Name, str(l.Institution), str(l.Country), str(l.Website), str(l.Description)}
	}
	return rows
}

func paperRows(papers []models.Paper) [][]interface{} {
	rows := make([][]interface{}, len(papers))
	for i, p := range papers {
		rows[i] = []interface{}{p.ID, p.Title, num(p.Year), str(p.DOI), str(p.Journal), str(p.Authors)}
	}
	return rows
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// num leaves missing numbers as empty cells
func num(n *int) interface{} {
	if n == nil {
		return ""
	}
	return *n
}
