package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/maarriet/costa-rica-tourism-system/internal/clock"
	"github.com/maarriet/costa-rica-tourism-system/internal/database"
	"github.com/maarriet/costa-rica-tourism-system/internal/models"
)

// ReportService exports reservation data as CSV and PDF documents.
type ReportService struct {
	reservationRepo *database.ReservationRepository
	placeRepo       *database.PlaceRepository
	clock           clock.Clock
}

// NewReportService creates a new ReportService
func NewReportService(reservationRepo *database.ReservationRepository, placeRepo *database.PlaceRepository, clk clock.Clock) *ReportService {
	return &ReportService{
		reservationRepo: reservationRepo,
		placeRepo:       placeRepo,
		clock:           clk,
	}
}

var reportHeader = []string{
	"Code", "Place", "Client", "Email", "Start Date", "End Date",
	"Party Size", "Total Amount", "Status",
}

// ReservationsCSV renders the reservations matching the filter as CSV.
func (s *ReportService) ReservationsCSV(filter database.ReservationFilter) ([]byte, error) {
	reservations, err := s.reservationRepo.GetAll(filter)
	if err != nil {
		return nil, err
	}

	placeNames, err := s.placeNames(reservations)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(reportHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for i := range reservations {
		r := &reservations[i]
		endDate := ""
		if r.EndDate != nil {
			endDate = r.EndDate.Format("2006-01-02")
		}
		record := []string{
			r.ReservationCode,
			placeNames[r.PlaceID],
			r.ClientName,
			r.ClientEmail,
			r.StartDate.Format("2006-01-02"),
			endDate,
			strconv.Itoa(r.PartySize),
			fmt.Sprintf("%.2f", r.TotalAmount),
			string(r.Status),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ReservationsPDF renders the reservations matching the filter as a
// landscape A4 table.
func (s *ReportService) ReservationsPDF(filter database.ReservationFilter) ([]byte, error) {
	reservations, err := s.reservationRepo.GetAll(filter)
	if err != nil {
		return nil, err
	}

	placeNames, err := s.placeNames(reservations)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, "Reservation Report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, "Generated "+s.clock.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	widths := []float64{35, 50, 40, 50, 24, 24, 16, 22, 24}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range reportHeader {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	var total float64
	for i := range reservations {
		r := &reservations[i]
		endDate := ""
		if r.EndDate != nil {
			endDate = r.EndDate.Format("2006-01-02")
		}
		cells := []string{
			r.ReservationCode,
			placeNames[r.PlaceID],
			r.ClientName,
			r.ClientEmail,
			r.StartDate.Format("2006-01-02"),
			endDate,
			strconv.Itoa(r.PartySize),
			fmt.Sprintf("%.2f", r.TotalAmount),
			string(r.Status),
		}
		for j, c := range cells {
			pdf.CellFormat(widths[j], 6, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		total += r.TotalAmount
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Reservations: %d    Total amount: %.2f", len(reservations), total))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// placeNames resolves the distinct place ids in the list to names so the
// report shows names instead of uuids.
func (s *ReportService) placeNames(reservations []models.Reservation) (map[string]string, error) {
	names := make(map[string]string)
	for i := range reservations {
		id := reservations[i].PlaceID
		if _, ok := names[id]; ok {
			continue
		}
		place, err := s.placeRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		names[id] = place.Name
	}
	return names, nil
}
