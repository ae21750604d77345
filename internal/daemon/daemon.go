package daemon

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/leonardotrapani/hyprcolor/internal/bus"
	"github.com/leonardotrapani/hyprcolor/internal/clipboard"
	"github.com/leonardotrapani/hyprcolor/internal/config"
	"github.com/leonardotrapani/hyprcolor/internal/notify"
	"github.com/leonardotrapani/hyprcolor/internal/pipeline"
	"github.com/leonardotrapani/hyprcolor/internal/present"
)

// PipelineFactory builds the pipeline for one session from the current config.
type PipelineFactory func(*config.Config) (pipeline.Pipeline, error)

// session is one pipeline run; cancelled sessions are never presented.
type session struct {
	p         pipeline.Pipeline
	cancelled atomic.Bool
}

type Daemon struct {
	mu        sync.Mutex
	configMgr *config.Manager
	getConfig func() *config.Config

	newPipeline PipelineFactory
	notifier    notify.Notifier
	presenter   *present.Presenter

	current *session
	last    *pipeline.Result

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(configMgr *config.Manager) *Daemon {
	cfg := configMgr.GetConfig()
	d := newDaemon(configMgr.GetConfig, pipeline.NewFromConfig, cfg.Notifier(), clipboard.New(cfg.ToClipboardConfig()))
	d.configMgr = configMgr
	configMgr.OnReload(d.applyConfig)
	return d
}

func newDaemon(getConfig func() *config.Config, factory PipelineFactory, n notify.Notifier, c present.Copier) *Daemon {
	if n == nil {
		n = notify.Nop{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Daemon{
		getConfig:   getConfig,
		newPipeline: factory,
		notifier:    n,
		presenter:   present.New(n, c),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// applyConfig swaps the notifier and clipboard after a config reload. The
// running session keeps its pipeline; the next toggle picks up the rest.
func (d *Daemon) applyConfig(cfg *config.Config) {
	n := cfg.Notifier()
	d.mu.Lock()
	d.notifier = n
	d.presenter = present.New(n, clipboard.New(cfg.ToClipboardConfig()))
	d.mu.Unlock()
	go n.Send(notify.MsgConfigReloaded, "")
}

func (d *Daemon) Status() pipeline.Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.statusLocked()
}

func (d *Daemon) statusLocked() pipeline.Status {
	if d.current == nil {
		return pipeline.Idle
	}
	return d.current.p.Status()
}

func (d *Daemon) Run() error {
	if err := bus.CheckExistingDaemon(); err != nil {
		return err
	}

	ln, err := bus.Listen()
	if err != nil {
		return err
	}
	defer ln.Close()

	if err := bus.CreatePidFile(); err != nil {
		return fmt.Errorf("failed to create PID file: %w", err)
	}
	defer bus.RemovePidFile()

	if d.configMgr != nil {
		if err := d.configMgr.StartWatching(d.ctx); err != nil {
			zap.S().Warnf("Config watching disabled: %v", err)
		}
		defer d.configMgr.Stop()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			zap.S().Infof("Received signal %v, shutting down gracefully", sig)
			d.cancel()
		case <-d.ctx.Done():
		}
	}()

	// Close the listener when context is done
	go func() {
		<-d.ctx.Done()
		ln.Close()
	}()

	defer d.shutdown()

	zap.S().Infof("Daemon started, listening on socket")

	for {
		c, err := ln.Accept()
		if err != nil {
			if d.ctx.Err() != nil {
				zap.S().Infof("Shutdown requested")
				return nil
			}
			zap.S().Errorf("Accept error: %v", err)
			return fmt.Errorf("accept failed: %w", err)
		}
		go d.handle(c)
	}
}

func (d *Daemon) shutdown() {
	d.cancel()
	d.mu.Lock()
	s := d.current
	d.mu.Unlock()
	if s != nil {
		s.cancelled.Store(true)
		s.p.Stop()
	}
	d.wg.Wait()
}

func (d *Daemon) handle(c net.Conn) {
	defer c.Close()

	line, err := bufio.NewReader(c).ReadString('\n')
	if err != nil {
		zap.S().Warnf("Client read error: %v", err)
		fmt.Fprint(c, errResponse("read_error", err.Error()))
		return
	}
	if len(line) == 0 {
		fmt.Fprint(c, "ERR empty\n")
		return
	}
	cmd := line[0]

	switch cmd {
	case bus.CmdToggle:
		fmt.Fprint(c, d.toggle())
	case bus.CmdCancel:
		fmt.Fprint(c, d.cancelSession())
	case bus.CmdStatus:
		fmt.Fprint(c, bus.Response{Kind: "STATUS", Fields: map[string]string{"status": string(d.Status())}}.Format())
	case bus.CmdLast:
		fmt.Fprint(c, d.lastResponse())
	case bus.CmdVersion:
		fmt.Fprintf(c, "STATUS proto=%s\n", bus.ProtoVer)
	case bus.CmdQuit:
		fmt.Fprint(c, "OK quitting\n")
		d.cancel()
	default:
		zap.S().Warnf("Unknown command: %c", cmd)
		fmt.Fprintf(c, "ERR unknown=%q\n", cmd)
	}
}

func statusResponse(s pipeline.Status) string {
	return bus.Response{Kind: "OK", Fields: map[string]string{"status": string(s)}}.Format()
}

func errResponse(code, msg string) string {
	return bus.Response{Kind: "ERR", Fields: map[string]string{"code": code, "msg": msg}}.Format()
}

// toggle starts a session when idle and finishes recording when one is
// recording. A session that is already transcribing is left alone.
func (d *Daemon) toggle() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.statusLocked() {
	case pipeline.Idle:
		p, err := d.newPipeline(d.getConfig())
		if err != nil {
			zap.S().Errorf("Failed to create pipeline: %v", err)
			go d.notifier.Send(notify.MsgRecognitionError, err.Error())
			return errResponse("pipeline", err.Error())
		}

		s := &session{p: p}
		d.current = s
		p.Run(d.ctx)
		d.wg.Add(1)
		go d.watch(s)
		go d.notifier.Send(notify.MsgRecordingStarted, "")
		return statusResponse(pipeline.Recording)

	case pipeline.Recording:
		select {
		case d.current.p.GetActionCh() <- pipeline.Finish:
		default:
		}
		go d.notifier.Send(notify.MsgTranscribing, "")
		return statusResponse(pipeline.Transcribing)

	default:
		return statusResponse(d.statusLocked())
	}
}

func (d *Daemon) cancelSession() string {
	d.mu.Lock()
	s := d.current
	d.current = nil
	d.mu.Unlock()

	if s == nil {
		return statusResponse(pipeline.Idle)
	}

	s.cancelled.Store(true)
	s.p.Stop()
	go d.notifier.Send(notify.MsgOperationCancelled, "")
	return "OK cancelled\n"
}

// watch presents the outcome of s once its pipeline finishes.
func (d *Daemon) watch(s *session) {
	defer d.wg.Done()

	var (
		res    *pipeline.Result
		runErr error
	)
	select {
	case r := <-s.p.GetResultCh():
		res = &r
	case runErr = <-s.p.GetErrorCh():
	case <-s.p.Done():
		// the outcome is sent before Done closes
		select {
		case r := <-s.p.GetResultCh():
			res = &r
		case runErr = <-s.p.GetErrorCh():
		default:
		}
	}

	d.mu.Lock()
	if d.current == s {
		d.current = nil
	}
	if res != nil && !s.cancelled.Load() {
		d.last = res
	}
	presenter := d.presenter
	d.mu.Unlock()

	if s.cancelled.Load() {
		return
	}
	switch {
	case res != nil:
		presenter.Result(d.ctx, *res)
	case runErr != nil:
		presenter.Error(runErr)
	}
}

func (d *Daemon) lastResponse() string {
	d.mu.Lock()
	last := d.last
	d.mu.Unlock()

	if last == nil {
		return errResponse("no_result", "no colour resolved yet")
	}
	return bus.Response{Kind: "LAST", Fields: map[string]string{
		"found":      strconv.FormatBool(last.Found),
		"hex":        last.Hex,
		"transcript": last.Transcript,
		"at":         last.At.Format(time.RFC3339),
		"session":    last.Session,
	}}.Format()
}
