package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"tripplanner/planner"
)

// PDFFilename is the download name for a PDF export.
func PDFFilename(plan *planner.TripPlan) string {
	return plan.Destination + "-trip-plan.pdf"
}

// GeneratePlanPDF renders plan as an A4 document and returns the raw bytes.
func GeneratePlanPDF(plan *planner.TripPlan) ([]byte, error) {
	if plan == nil {
		return nil, fmt.Errorf("PDF: nil plan")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 25)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-18)
		pdf.SetDrawColor(200, 200, 200)
		pdf.SetLineWidth(0.3)
		pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 8,
			tr(fmt.Sprintf("Generated by Trip Planner · Estimates only, not a booking · Page %d", pdf.PageNo())),
			"", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(37, 99, 235)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(170, 10, tr("Your Trip to "+plan.Destination), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Personalized Travel Plan", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	// ── Section Helpers ──────────────────────────────────────
	sectionHeader := func(title string) {
		pdf.SetFillColor(37, 99, 235)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+tr(title), "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, tr(value), "", 1, "L", false, 0, "")
	}

	paragraph := func(text string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(40, 40, 40)
		pdf.MultiCell(170, 5, tr(text), "", "L", false)
	}

	// ── Trip Overview ─────────────────────────────────────────
	sectionHeader("Trip Overview")
	row("Destination", plan.Destination)
	row("Duration", plan.Duration)
	row("Dates", plan.Dates)
	row("Travelers", plan.Travelers)
	row("Budget", plan.Budget)
	row("Travel Style", plan.TravelStyle)
	row("Generated", time.Now().UTC().Format("02 Jan 2006, 15:04 UTC"))

	pdf.SetFillColor(212, 168, 67)
	pdf.SetTextColor(13, 24, 37)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(55, 9, "TOTAL ESTIMATE", "", 0, "L", true, 0, "")
	pdf.CellFormat(115, 9, plan.TotalEstimatedCost, "", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	// ── Daily Itinerary ───────────────────────────────────────
	for _, day := range plan.Itinerary {
		sectionHeader(fmt.Sprintf("%s · %s", day.Title, day.Theme))
		for _, a := range day.Activities {
			booking := ""
			if a.BookingRequired {
				booking = " · booking required"
			}
			row(a.Time, a.Title)
			paragraph(fmt.Sprintf("%s (%s, %s, %s%s)", a.Description, a.Type, a.Duration, a.EstimatedCost, booking))
			pdf.Ln(1)
		}
		row("Estimated cost", day.EstimatedCost)
		row("Walking", day.WalkingDistance)
		row("Highlights", strings.Join(day.Highlights, ", "))
		pdf.Ln(4)
	}

	// ── Hotels ────────────────────────────────────────────────
	sectionHeader("Recommended Hotels")
	for _, h := range plan.Hotels {
		row(h.Name, fmt.Sprintf("%s/night · %.1f / 5.0 (%d reviews) · %s", h.PricePerNight, h.Rating, h.ReviewCount, h.Location))
		paragraph(h.Description + " Amenities: " + strings.Join(h.Amenities, ", ") + ".")
		pdf.Ln(1)
	}
	pdf.Ln(3)

	// ── Dining ────────────────────────────────────────────────
	sectionHeader("Where to Eat")
	for _, r := range plan.Restaurants {
		row(r.Name, fmt.Sprintf("%s · %s · %.1f / 5.0 · %s", r.Cuisine, r.PriceRange, r.Rating, r.Location))
		paragraph("Specialties: " + strings.Join(r.Specialties, ", ") + ".")
		pdf.Ln(1)
	}
	pdf.Ln(3)

	// ── Getting Around ────────────────────────────────────────
	sectionHeader("Getting Around")
	for _, t := range plan.Transportation {
		row(t.Type, t.Cost+" · "+t.Description)
	}
	pdf.Ln(4)

	// ── Weather ───────────────────────────────────────────────
	sectionHeader("Weather")
	row("Temperature", plan.Weather.Temperature)
	row("Conditions", plan.Weather.Conditions)
	row("UV", plan.Weather.UVIndex)
	paragraph(plan.Weather.Recommendation)
	pdf.Ln(4)

	// ── Tips & Packing ────────────────────────────────────────
	sectionHeader("Local Tips")
	for _, tip := range plan.LocalTips {
		paragraph("- " + tip)
	}
	pdf.Ln(4)

	sectionHeader("Packing List")
	for _, item := range plan.PackingList {
		paragraph("[ ] " + item)
	}

	// ── Write to buffer ───────────────────────────────────────
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}
