// Package classifier predicts a crime category from a free-text description.
package classifier

//go:generate mockgen -source=predictor.go -destination=mocks/mock_predictor.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	ErrModelUnavailable = errors.New("model could not be loaded")
	ErrEmptyText        = errors.New("description is empty")
)

type Prediction struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

type Predictor interface {
	Predict(ctx context.Context, text string) (Prediction, error)
}

// NewPredictor загружает модель один раз при старте.
// При ошибке загрузки возвращается предиктор, который всегда отвечает ErrModelUnavailable,
// и сама ошибка загрузки для логирования.
func NewPredictor(path string, logger *logrus.Logger) (Predictor, error) {
	log := logger.WithField("model_path", path)

	model, format, err := LoadModel(path)
	if err != nil {
		log.WithError(err).Error("Failed to load classifier model")
		return &unavailablePredictor{reason: err.Error()}, err
	}

	log.WithFields(logrus.Fields{
		"format":     format,
		"classes":    len(model.Classes),
		"vocabulary": len(model.FeatureLogProb),
	}).Info("Classifier model loaded")
	return NewModelPredictor(model, logger), nil
}

type modelPredictor struct {
	model  *Model
	logger *logrus.Logger
}

func NewModelPredictor(model *Model, logger *logrus.Logger) Predictor {
	return &modelPredictor{model: model, logger: logger}
}

func (p *modelPredictor) Predict(_ context.Context, text string) (Prediction, error) {
	if strings.TrimSpace(text) == "" {
		return Prediction{}, ErrEmptyText
	}
	category, confidence := p.model.Predict(text)
	p.logger.WithFields(logrus.Fields{
		"category":   category,
		"confidence": confidence,
	}).Debug("Prediction made")
	return Prediction{Category: category, Confidence: confidence}, nil
}

type unavailablePredictor struct {
	reason string
}

func (p *unavailablePredictor) Predict(context.Context, string) (Prediction, error) {
	return Prediction{}, fmt.Errorf("%w: %s", ErrModelUnavailable, p.reason)
}
