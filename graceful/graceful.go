package graceful

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

// Shutdownable can be closed gracefully
type Shutdownable interface {
	Shutdown(context.Context) error
}

// ShutdownFunc adapts a plain function to Shutdownable.
type ShutdownFunc func(context.Context) error

// Shutdown calls f(ctx).
func (f ShutdownFunc) Shutdown(ctx context.Context) error {
	return f(ctx)
}

type target struct {
	name    string
	shut    Shutdownable
	timeout time.Duration
}

// Closer handles shutdown of servers and exporters
type Closer struct {
	targets      []target
	targetsMutex sync.Mutex

	doneBool int32
}

// Register inserts a subject to shutdown gracefully. Registering after Close
// has started is a no-op.
func (cc *Closer) Register(name string, shut Shutdownable, timeout time.Duration) {
	if atomic.LoadInt32(&cc.doneBool) != 0 {
		return
	}

	cc.targetsMutex.Lock()
	cc.targets = append(cc.targets, target{
		name:    name,
		shut:    shut,
		timeout: timeout,
	})
	cc.targetsMutex.Unlock()
}

// Close shuts down all registered targets in parallel, each bounded by its
// own timeout, and waits for them. Only the first call has any effect.
func (cc *Closer) Close(log logrus.FieldLogger) {
	if atomic.SwapInt32(&cc.doneBool, 1) == 1 {
		return
	}

	cc.targetsMutex.Lock()
	targets := cc.targets
	cc.targetsMutex.Unlock()

	log.Debugf("Initiating shutdown of %d targets", len(targets))
	wg := sync.WaitGroup{}
	for _, targ := range targets {
		wg.Add(1)
		go func(targ target, log logrus.FieldLogger) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), targ.timeout)
			defer cancel()
			log.Debug("Triggering shutdown")
			if err := targ.shut.Shutdown(ctx); err != nil {
				log.WithError(err).Error("Graceful shutdown failed")
			}
			log.Debug("Shutdown finished")
		}(targ, log.WithField("target", targ.name))
	}
	log.Debugln("Waiting for targets to finish shutdown")
	wg.Wait()
}

// WaitForShutdown blocks until the system signals termination or done has a value
func WaitForShutdown(log logrus.FieldLogger, done <-chan struct{}) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)
	select {
	case sig := <-signals:
		log.Infof("Triggering shutdown from signal %s", sig)
	case <-done:
		log.Infof("Shutting down...")
	}
}

// ShutdownContext returns a context that is cancelled on termination
func ShutdownContext(ctx context.Context, log logrus.FieldLogger) (context.Context, func()) {
	done := make(chan struct{})
	var once sync.Once
	shut := func() {
		once.Do(func() { close(done) })
	}

	ctx, cancel := context.WithCancel(ctx)
	go func() {
		defer cancel()
		WaitForShutdown(log, done)
	}()

	return ctx, shut
}
