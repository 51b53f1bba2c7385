// Package report pulls coordinates and a description out of uploaded PDF incident reports.
package report

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var (
	ErrNothingExtracted = errors.New("could not extract coordinates or description from the PDF")
	ErrNotPDF           = errors.New("file must be a PDF")
)

var pdfMagic = []byte("%PDF-")

type Service interface {
	ExtractReport(ctx context.Context, pdfPath string) (*Report, error)
}

type reportService struct {
	extractor TextExtractor
	logger    *logrus.Logger
}

func NewService(extractor TextExtractor, logger *logrus.Logger) Service {
	return &reportService{extractor: extractor, logger: logger}
}

// ExtractReport читает PDF по пути и разбирает его текст.
// Файл не удаляется: за временные файлы отвечает вызывающий.
func (s *reportService) ExtractReport(ctx context.Context, pdfPath string) (*Report, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "report",
		"method":  "ExtractReport",
		"path":    pdfPath,
	})

	if err := checkPDFHeader(pdfPath); err != nil {
		log.WithError(err).Warn("Rejected upload")
		return nil, err
	}

	text, err := s.extractor.ExtractText(ctx, pdfPath)
	if err != nil {
		log.WithError(err).Error("Failed to extract text from PDF")
		return nil, fmt.Errorf("report: could not extract text: %w", err)
	}
	log.WithField("chars", len(text)).Info("Extracted text from PDF")

	r := Parse(text)
	if r.Empty() {
		log.Warn("No data extracted from PDF")
		return nil, ErrNothingExtracted
	}

	log.WithFields(logrus.Fields{
		"has_coordinates":    r.Coordinates.Latitude != "",
		"description_length": len(r.Description),
	}).Info("Report parsed")
	return r, nil
}

func checkPDFHeader(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("report: open upload: %w", err)
	}
	defer f.Close()

	header := make([]byte, len(pdfMagic))
	if _, err := io.ReadFull(f, header); err != nil || !bytes.Equal(header, pdfMagic) {
		return ErrNotPDF
	}
	return nil
}
