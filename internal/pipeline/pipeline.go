package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/leonardotrapani/hyprcolor/internal/config"
	"github.com/leonardotrapani/hyprcolor/internal/recording"
	"github.com/leonardotrapani/hyprcolor/internal/transcriber"
)

type Status string
type Action string

const (
	Idle         Status = "idle"
	Recording    Status = "recording"
	Transcribing Status = "transcribing"
	Resolving    Status = "resolving"
)

const (
	// Finish ends recording and moves on to transcription.
	Finish Action = "finish"
)

// Result is what one session heard and what it resolved to.
type Result struct {
	// Session is the short id the session logged under.
	Session    string
	Transcript string
	Hex        string
	Found      bool
	At         time.Time
}

type Recorder interface {
	Start(ctx context.Context) (<-chan recording.AudioFrame, <-chan error, error)
	Stop()
	Wait()
}

type Resolver interface {
	Resolve(utterance string) (string, bool)
}

// Deps are the collaborators of one session.
type Deps struct {
	Gate        recording.Gate
	Recorder    Recorder
	Transcriber transcriber.Transcriber
	Resolver    Resolver
}

type Config struct {
	RecordingTimeout     time.Duration
	TranscriptionTimeout time.Duration
}

// Pipeline runs a single capture session. Exactly one Result or one error is
// delivered unless the session is stopped first.
type Pipeline interface {
	Run(ctx context.Context)
	Stop()
	Status() Status
	GetActionCh() chan<- Action
	GetErrorCh() <-chan error
	GetResultCh() <-chan Result
	Done() <-chan struct{}
}

type pipeline struct {
	id     string
	config Config
	deps   Deps

	mu     sync.RWMutex
	status Status

	actionCh chan Action
	errorCh  chan error
	resultCh chan Result
	done     chan struct{}

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

func New(config Config, deps Deps) Pipeline {
	if deps.Gate == nil {
		deps.Gate = recording.AllowAll{}
	}
	return &pipeline{
		id:       uuid.New().String()[:8],
		config:   config,
		deps:     deps,
		status:   Idle,
		actionCh: make(chan Action, 1),
		errorCh:  make(chan error, 1),
		resultCh: make(chan Result, 1),
		done:     make(chan struct{}),
	}
}

// NewFromConfig wires the PipeWire recorder, the configured transcription
// provider and colour table.
func NewFromConfig(cfg *config.Config) (Pipeline, error) {
	t, err := transcriber.NewTranscriber(cfg.ToTranscriberConfig())
	if err != nil {
		return nil, fmt.Errorf("create transcriber: %w", err)
	}
	table, err := cfg.ColorTable()
	if err != nil {
		return nil, err
	}

	return New(Config{
		RecordingTimeout:     cfg.Recording.Timeout,
		TranscriptionTimeout: cfg.Transcription.Timeout,
	}, Deps{
		Gate:        recording.PipeWireGate{},
		Recorder:    recording.NewRecorder(cfg.ToRecordingConfig()),
		Transcriber: t,
		Resolver:    table,
	}), nil
}

func (p *pipeline) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

func (p *pipeline) setStatus(s Status) {
	p.mu.Lock()
	p.status = s
	p.mu.Unlock()
}

func (p *pipeline) GetActionCh() chan<- Action { return p.actionCh }
func (p *pipeline) GetErrorCh() <-chan error   { return p.errorCh }
func (p *pipeline) GetResultCh() <-chan Result { return p.resultCh }
func (p *pipeline) Done() <-chan struct{}      { return p.done }

// Stop cancels the session at whatever stage it is in and waits for it.
func (p *pipeline) Stop() {
	p.mu.RLock()
	cancel := p.cancel
	p.mu.RUnlock()
	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}

func (p *pipeline) Run(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	p.cancel = cancel
	p.status = Recording
	p.mu.Unlock()

	p.wg.Add(1)
	go p.run(runCtx)
}

func (p *pipeline) run(ctx context.Context) {
	defer func() {
		p.setStatus(Idle)
		close(p.done)
		p.wg.Done()
	}()

	zap.S().Infof("Pipeline %s: checking microphone", p.id)
	if err := p.deps.Gate.CheckMicrophone(ctx); err != nil {
		p.fail(ctx, err)
		return
	}

	zap.S().Infof("Pipeline %s: starting recording", p.id)
	recCtx, stopRec := context.WithTimeout(ctx, p.recordingTimeout())
	defer stopRec()

	frameCh, recErrCh, err := p.deps.Recorder.Start(recCtx)
	if err != nil {
		p.fail(ctx, fmt.Errorf("start recording: %w", err))
		return
	}
	if _, err := p.deps.Transcriber.Start(ctx, frameCh); err != nil {
		p.stopRecorder()
		p.fail(ctx, fmt.Errorf("start transcriber: %w", err))
		return
	}

	if !p.awaitFinish(ctx, recErrCh) {
		return
	}

	p.setStatus(Transcribing)
	zap.S().Infof("Pipeline: transcribing")
	tctx, cancel := context.WithTimeout(ctx, p.transcriptionTimeout())
	defer cancel()

	if err := p.deps.Transcriber.Stop(tctx); err != nil {
		if ctx.Err() != nil {
			zap.S().Infof("Pipeline: cancelled during transcription")
			return
		}
		p.fail(ctx, err)
		return
	}

	text, err := p.deps.Transcriber.GetFinalTranscription()
	if err == nil && transcriber.IsBlank(text) {
		err = ErrEmptyTranscript
	}
	if err != nil {
		p.fail(ctx, err)
		return
	}

	p.setStatus(Resolving)
	hex, found := p.deps.Resolver.Resolve(text)
	zap.S().Infof("Pipeline %s: %q resolved to %q (found=%t)", p.id, text, hex, found)

	select {
	case p.resultCh <- Result{Session: p.id, Transcript: text, Hex: hex, Found: found, At: time.Now()}:
	case <-ctx.Done():
	}
}

// awaitFinish blocks until recording should end. It returns false when the
// session ended without anything to transcribe.
func (p *pipeline) awaitFinish(ctx context.Context, recErrCh <-chan error) bool {
	for {
		select {
		case action := <-p.actionCh:
			zap.S().Infof("Pipeline: received action: %s", action)
			if action == Finish {
				p.stopRecorder()
				return true
			}

		case err, ok := <-recErrCh:
			if !ok {
				// capture ended on its own: timeout or end of stream
				zap.S().Infof("Pipeline: recording ended")
				p.stopRecorder()
				return true
			}
			if err != nil {
				p.stopRecorder()
				p.fail(ctx, fmt.Errorf("recording: %w", err))
				return false
			}

		case <-ctx.Done():
			zap.S().Infof("Pipeline: cancelled during recording")
			p.stopRecorder()
			return false
		}
	}
}

func (p *pipeline) stopRecorder() {
	p.deps.Recorder.Stop()
	p.deps.Recorder.Wait()
}

func (p *pipeline) fail(ctx context.Context, err error) {
	if ctx.Err() != nil {
		return
	}
	perr := classify(err)
	zap.S().Errorf("Pipeline %s: %v", p.id, perr)
	select {
	case p.errorCh <- perr:
	default:
	}
}

func (p *pipeline) recordingTimeout() time.Duration {
	if p.config.RecordingTimeout > 0 {
		return p.config.RecordingTimeout
	}
	return recording.DefaultConfig().Timeout
}

func (p *pipeline) transcriptionTimeout() time.Duration {
	if p.config.TranscriptionTimeout > 0 {
		return p.config.TranscriptionTimeout
	}
	return 30 * time.Second
}
