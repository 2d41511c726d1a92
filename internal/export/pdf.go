// Package export renders fitness plans into downloadable PDF documents.
package export

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"pulsemind/fitness-coach/internal/domain"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// FileName derives the download name for a plan's PDF.
func FileName(planName string) string {
	return whitespaceRE.ReplaceAllString(planName, "_") + "_Fitness_Plan.pdf"
}

// Theme colors shared across the document.
var (
	primaryColor = [3]int{41, 98, 255}
	accentColor  = [3]int{16, 185, 129}
	darkText     = [3]int{31, 41, 55}
	lightText    = [3]int{75, 85, 99}
	accentGray   = [3]int{229, 231, 235}
)

type planDocument struct {
	pdf  *fpdf.Fpdf
	y    float64
	plan *domain.Plan
}

// RenderPlanPDF lays out the workout and diet plan as an A4 document
// and returns the encoded bytes.
func RenderPlanPDF(plan *domain.Plan, userName string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetDrawColor(accentGray[0], accentGray[1], accentGray[2])
		pdf.SetLineWidth(0.5)
		pdf.Line(20, 285, 190, 285)
		pdf.SetTextColor(lightText[0], lightText[1], lightText[2])
		pdf.SetFont("Helvetica", "I", 8)
		centerText(pdf, 290, "Generated by PulseMind AI")
		footer := fmt.Sprintf("Page %d of {nb}", pdf.PageNo())
		pdf.Text(190-pdf.GetStringWidth(footer), 290, footer)
	})
	pdf.AddPage()

	d := &planDocument{pdf: pdf, plan: plan}
	d.title(userName)
	d.workoutSection()
	d.dietSection()

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render plan pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (d *planDocument) title(userName string) {
	pdf := d.pdf

	pdf.SetFillColor(primaryColor[0], primaryColor[1], primaryColor[2])
	pdf.Rect(0, 0, 210, 35, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 24)
	centerText(pdf, 15, "FITNESS PLAN")
	pdf.SetFont("Helvetica", "", 14)
	centerText(pdf, 25, d.plan.Name)

	d.y = 45
	pdf.SetTextColor(darkText[0], darkText[1], darkText[2])
	pdf.SetFont("Helvetica", "", 10)
	if userName != "" {
		pdf.Text(20, d.y, "Generated for: "+userName)
	}
	pdf.Text(150, d.y, "Generated: "+time.Now().UTC().Format("2006-01-02"))

	if d.plan.IsActive {
		pdf.SetFillColor(accentColor[0], accentColor[1], accentColor[2])
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 8)
		pdf.Rect(20, d.y+3, 22, 5, "F")
		active := "ACTIVE"
		pdf.Text(31-pdf.GetStringWidth(active)/2, d.y+6.5, active)
	}

	d.y += 15
	pdf.SetDrawColor(accentGray[0], accentGray[1], accentGray[2])
	pdf.SetLineWidth(0.5)
	pdf.Line(20, d.y, 190, d.y)
	d.y += 10
}

func (d *planDocument) sectionHeader(label string) {
	pdf := d.pdf
	pdf.SetFillColor(primaryColor[0], primaryColor[1], primaryColor[2])
	pdf.Rect(20, d.y-5, 170, 10, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(25, d.y+2, label)
	d.y += 12
}

func (d *planDocument) workoutSection() {
	pdf := d.pdf
	d.sectionHeader("WORKOUT PLAN")

	pdf.SetTextColor(darkText[0], darkText[1], darkText[2])
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(20, d.y, "Weekly Schedule:")
	d.y += 5

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(lightText[0], lightText[1], lightText[2])
	schedule := ""
	for i, day := range d.plan.WorkoutPlan.Schedule {
		if i > 0 {
			schedule += " / "
		}
		schedule += day
	}
	pdf.Text(20, d.y, schedule)
	d.y += 10

	for _, exerciseDay := range d.plan.WorkoutPlan.Exercises {
		if d.y > 250 {
			pdf.AddPage()
			d.y = 20
		}

		pdf.SetFillColor(accentGray[0], accentGray[1], accentGray[2])
		pdf.Rect(20, d.y-5, 170, 8, "F")
		pdf.SetTextColor(darkText[0], darkText[1], darkText[2])
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Text(25, d.y, fmt.Sprintf("%s (%d exercises)", exerciseDay.Day, len(exerciseDay.Routines)))
		d.y += 8

		d.routineTable(exerciseDay.Routines)
		d.y += 8
	}
}

var routineColumns = []struct {
	label string
	width float64
}{
	{"Exercise", 45},
	{"Sets", 20},
	{"Reps", 20},
	{"Description", 85},
}

func (d *planDocument) routineTable(routines []domain.Routine) {
	pdf := d.pdf
	const rowHeight = 6.0

	pdf.SetFillColor(primaryColor[0], primaryColor[1], primaryColor[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 9)
	x := 20.0
	for _, col := range routineColumns {
		pdf.Rect(x, d.y, col.width, rowHeight, "F")
		pdf.Text(x+2, d.y+4, col.label)
		x += col.width
	}
	d.y += rowHeight

	pdf.SetTextColor(darkText[0], darkText[1], darkText[2])
	pdf.SetFont("Helvetica", "", 8)
	for i, routine := range routines {
		if d.y > 270 {
			pdf.AddPage()
			d.y = 20
		}
		if i%2 == 1 {
			pdf.SetFillColor(249, 250, 251)
			pdf.Rect(20, d.y, 170, rowHeight, "F")
		}
		cells := []string{
			routine.Name,
			optionalInt(routine.Sets),
			optionalInt(routine.Reps),
			orDash(routine.Description),
		}
		x = 20.0
		for j, col := range routineColumns {
			pdf.Text(x+2, d.y+4, cells[j])
			x += col.width
		}
		d.y += rowHeight
	}
}

func (d *planDocument) dietSection() {
	pdf := d.pdf

	if d.y > 220 {
		pdf.AddPage()
		d.y = 20
	}
	d.y += 5
	d.sectionHeader("DIET PLAN")

	pdf.SetDrawColor(primaryColor[0], primaryColor[1], primaryColor[2])
	pdf.SetLineWidth(1)
	pdf.SetFillColor(239, 246, 255)
	pdf.Rect(20, d.y, 170, 12, "FD")

	pdf.SetTextColor(darkText[0], darkText[1], darkText[2])
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(25, d.y+5, "Daily Calorie Target:")

	pdf.SetTextColor(primaryColor[0], primaryColor[1], primaryColor[2])
	pdf.SetFont("Helvetica", "B", 16)
	calories := fmt.Sprintf("%d KCAL", d.plan.DietPlan.DailyCalories)
	pdf.Text(160-pdf.GetStringWidth(calories), d.y+8, calories)
	d.y += 18

	for _, meal := range d.plan.DietPlan.Meals {
		if d.y > 240 {
			pdf.AddPage()
			d.y = 20
		}

		pdf.SetFillColor(accentGray[0], accentGray[1], accentGray[2])
		pdf.Rect(20, d.y-5, 170, 8, "F")
		pdf.SetTextColor(darkText[0], darkText[1], darkText[2])
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Text(25, d.y, fmt.Sprintf("%s (%d items)", meal.Name, len(meal.Foods)))
		d.y += 8

		pdf.SetFont("Helvetica", "", 9)
		for _, food := range meal.Foods {
			if d.y > 280 {
				pdf.AddPage()
				d.y = 20
			}
			pdf.SetTextColor(primaryColor[0], primaryColor[1], primaryColor[2])
			pdf.Text(25, d.y, "-")
			pdf.SetTextColor(lightText[0], lightText[1], lightText[2])
			lines := pdf.SplitText(food, 160)
			for _, line := range lines {
				pdf.Text(32, d.y, line)
				d.y += 5
			}
		}
		d.y += 5
	}
}

func centerText(pdf *fpdf.Fpdf, y float64, s string) {
	pdf.Text((210-pdf.GetStringWidth(s))/2, y, s)
}

func optionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
