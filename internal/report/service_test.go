package report

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExtractor struct {
	text  string
	err   error
	calls int
}

func (s *stubExtractor) ExtractText(context.Context, string) (string, error) {
	s.calls++
	return s.text, s.err
}

func newTestService(t *testing.T, extractor TextExtractor) Service {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return NewService(extractor, logger)
}

func writeUpload(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.pdf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestExtractReport_Success(t *testing.T) {
	extractor := &stubExtractor{text: sfReport}
	svc := newTestService(t, extractor)

	r, err := svc.ExtractReport(context.Background(), writeUpload(t, "%PDF-1.7\n..."))

	require.NoError(t, err)
	assert.Equal(t, "37.78091651016261", r.Coordinates.Latitude)
	assert.NotEmpty(t, r.Description)
	assert.Equal(t, 1, extractor.calls)
}

func TestExtractReport_NotPDF(t *testing.T) {
	extractor := &stubExtractor{text: sfReport}
	svc := newTestService(t, extractor)

	_, err := svc.ExtractReport(context.Background(), writeUpload(t, "PK\x03\x04 zip archive"))

	assert.ErrorIs(t, err, ErrNotPDF)
	assert.Zero(t, extractor.calls)
}

func TestExtractReport_NothingExtracted(t *testing.T) {
	svc := newTestService(t, &stubExtractor{text: "Hello world"})

	r, err := svc.ExtractReport(context.Background(), writeUpload(t, "%PDF-1.4"))

	assert.ErrorIs(t, err, ErrNothingExtracted)
	assert.Nil(t, r)
}

func TestExtractReport_ExtractorFailure(t *testing.T) {
	cause := errors.New("exit status 1")
	svc := newTestService(t, &stubExtractor{err: cause})

	_, err := svc.ExtractReport(context.Background(), writeUpload(t, "%PDF-1.4"))

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNothingExtracted)
}

func TestPdfToText_MissingBinary(t *testing.T) {
	p := NewPdfToText(filepath.Join(t.TempDir(), "no-such-pdftotext"))

	_, err := p.ExtractText(context.Background(), writeUpload(t, "%PDF-1.4"))

	assert.Error(t, err)
}
