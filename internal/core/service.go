package core

import (
	"context"

	"go.uber.org/zap"
)

// AnalysisService orchestrates spam analysis across the remote classifier
// and the local heuristic
type AnalysisService struct {
	scorer *LocalScorer
	remote RemoteClassifier
	ledger HistoryRecorder
	logger *zap.Logger
}

// NewAnalysisService creates a new analysis service. The remote classifier
// may be nil, in which case remote-mode requests use the local heuristic.
func NewAnalysisService(
	scorer *LocalScorer,
	remote RemoteClassifier,
	ledger HistoryRecorder,
	logger *zap.Logger,
) *AnalysisService {
	return &AnalysisService{
		scorer: scorer,
		remote: remote,
		ledger: ledger,
		logger: logger,
	}
}

// Analyze classifies text and records the verdict in the history ledger.
// It always completes with a valid verdict: a remote-path failure is
// converted into a local-heuristic result at default sensitivity, never
// surfaced to the caller.
func (s *AnalysisService) Analyze(ctx context.Context, text string, useRemote bool, sensitivity int) *Verdict {
	verdict := s.classify(ctx, text, useRemote, sensitivity)
	s.ledger.Record(NewHistoryEntry(verdict, text))
	return verdict
}

func (s *AnalysisService) classify(ctx context.Context, text string, useRemote bool, sensitivity int) *Verdict {
	if useRemote && s.remote != nil {
		verdict, err := s.remote.Classify(ctx, text)
		if err == nil {
			return verdict
		}
		s.logger.Warn("Remote classification failed, falling back to local heuristic",
			zap.String("kind", string(ClassificationKind(err))),
			zap.Error(err))
		return s.scorer.Score(text, DefaultSensitivity)
	}
	return s.scorer.Score(text, sensitivity)
}

// Scorer exposes the local heuristic for stats endpoints
func (s *AnalysisService) Scorer() *LocalScorer {
	return s.scorer
}
