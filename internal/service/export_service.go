package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/course-match-api/internal/models"
	appErrors "github.com/noah-isme/course-match-api/pkg/errors"
	"github.com/noah-isme/course-match-api/pkg/export"
)

// ExportFormat enumerates supported export encodings.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

type matchViewReader interface {
	GetMatches(ctx context.Context) ([]models.Match, error)
}

// ExportFile carries rendered bytes plus serving metadata.
type ExportFile struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ExportService renders the current match assignments as CSV or PDF.
type ExportService struct {
	matches   matchViewReader
	courses   courseReader
	lecturers lecturerReader
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	logger    *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(matches matchViewReader, courses courseReader, lecturers lecturerReader, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		matches:   matches,
		courses:   courses,
		lecturers: lecturers,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		logger:    logger,
	}
}

var matchExportHeaders = []string{
	"Course Code", "Course Title", "Specialization", "Lecturer", "Experience", "Auto Matched", "Active", "Updated At",
}

// ExportMatches renders the deduplicated match view in the requested format.
func (s *ExportService) ExportMatches(ctx context.Context, format ExportFormat) (*ExportFile, error) {
	matches, err := s.matches.GetMatches(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]string, 0, len(matches))
	for _, match := range matches {
		row := map[string]string{
			"Auto Matched": strconv.FormatBool(match.IsAutoMatched),
			"Active":       strconv.FormatBool(match.IsActive),
			"Updated At":   match.UpdatedAt.Format(time.RFC3339),
		}
		if course, err := s.courses.FindByID(ctx, match.CourseID); err == nil {
			row["Course Code"] = course.Code
			row["Course Title"] = course.Title
			row["Specialization"] = course.Specialization
		}
		if lecturer, err := s.lecturers.FindByID(ctx, match.LecturerID); err == nil {
			row["Lecturer"] = lecturer.Name
			row["Experience"] = strconv.Itoa(lecturer.Experience)
		}
		rows = append(rows, row)
	}

	dataset := export.Dataset{Headers: matchExportHeaders, Rows: rows}
	stamp := time.Now().UTC().Format("20060102")

	switch format {
	case FormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportFile{
			FileName:    fmt.Sprintf("matches_%s.csv", stamp),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	case FormatPDF:
		content, err := s.pdf.Render(dataset, "Course Lecturer Assignments")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportFile{
			FileName:    fmt.Sprintf("matches_%s.pdf", stamp),
			ContentType: "application/pdf",
			Content:     content,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}
