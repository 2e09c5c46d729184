package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubClassifier struct {
	verdict *Verdict
	err     error
	calls   int
}

func (s *stubClassifier) Classify(ctx context.Context, text string) (*Verdict, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.verdict, nil
}

type recordingLedger struct {
	entries []HistoryEntry
}

func (r *recordingLedger) Record(entry HistoryEntry) {
	r.entries = append(r.entries, entry)
}

func newTestService(remote RemoteClassifier, ledger HistoryRecorder) *AnalysisService {
	return NewAnalysisService(NewLocalScorer(DefaultLexicon()), remote, ledger, zap.NewNop())
}

func TestAnalyzeLocalPath(t *testing.T) {
	ledger := &recordingLedger{}
	remote := &stubClassifier{err: errors.New("should not be called")}
	svc := newTestService(remote, ledger)

	v := svc.Analyze(context.Background(), "free prize inside", false, 80)

	require.NotNil(t, v)
	assert.Equal(t, SourceLocal, v.Source)
	assert.True(t, v.IsSpam)
	assert.Zero(t, remote.calls)
	require.Len(t, ledger.entries, 1)
	assert.Equal(t, "free prize inside", ledger.entries[0].Text)
}

func TestAnalyzeRemotePath(t *testing.T) {
	want := &Verdict{
		IsSpam:     true,
		Confidence: 92,
		Signals:    []string{"lottery"},
		Source:     "http",
		AnalyzedAt: time.Now(),
	}
	ledger := &recordingLedger{}
	remote := &stubClassifier{verdict: want}
	svc := newTestService(remote, ledger)

	v := svc.Analyze(context.Background(), "lottery winnings await", true, 50)

	assert.Equal(t, want, v)
	assert.Equal(t, 1, remote.calls)
	require.Len(t, ledger.entries, 1)
	assert.Equal(t, 92, ledger.entries[0].Confidence)
}

func TestAnalyzeFallsBackOnRemoteFailure(t *testing.T) {
	text := "You are a WINNER! Claim your FREE prize now!"
	ledger := &recordingLedger{}
	remote := &stubClassifier{err: NewTransportError(errors.New("connection refused"))}
	svc := newTestService(remote, ledger)

	v := svc.Analyze(context.Background(), text, true, 95)

	// Fallback mirrors the local heuristic at default sensitivity,
	// ignoring the caller's sensitivity
	want := NewLocalScorer(DefaultLexicon()).Score(text, DefaultSensitivity)
	require.NotNil(t, v)
	assert.Equal(t, SourceLocal, v.Source)
	assert.Equal(t, want.IsSpam, v.IsSpam)
	assert.Equal(t, want.Confidence, v.Confidence)
	assert.Equal(t, want.Signals, v.Signals)
	require.Len(t, ledger.entries, 1)
}

func TestAnalyzeFallsBackOnMalformedResponse(t *testing.T) {
	ledger := &recordingLedger{}
	remote := &stubClassifier{err: NewMalformedError(errors.New("unexpected payload"))}
	svc := newTestService(remote, ledger)

	v := svc.Analyze(context.Background(), "hello", true, 50)

	require.NotNil(t, v)
	assert.Equal(t, SourceLocal, v.Source)
	assert.False(t, v.IsSpam)
}

func TestAnalyzeRemoteModeWithoutClassifier(t *testing.T) {
	ledger := &recordingLedger{}
	svc := newTestService(nil, ledger)

	v := svc.Analyze(context.Background(), "free stuff", true, 50)

	require.NotNil(t, v)
	assert.Equal(t, SourceLocal, v.Source)
}

func TestAnalyzeRecordsEachCallOnce(t *testing.T) {
	ledger := &recordingLedger{}
	svc := newTestService(nil, ledger)

	for i := 0; i < 5; i++ {
		svc.Analyze(context.Background(), "msg", false, 50)
	}
	assert.Len(t, ledger.entries, 5)
}

func TestClassificationErrorKinds(t *testing.T) {
	transport := NewTransportError(errors.New("dial tcp: refused"))
	malformed := NewMalformedError(errors.New("bad json"))

	assert.Equal(t, TransportFailure, ClassificationKind(transport))
	assert.Equal(t, MalformedResponse, ClassificationKind(malformed))
	assert.Equal(t, ErrorKind(""), ClassificationKind(errors.New("plain")))
	assert.ErrorContains(t, transport, "transport_failure")
}
