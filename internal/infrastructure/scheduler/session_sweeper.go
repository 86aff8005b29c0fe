// Package scheduler ejecuta tareas periódicas en segundo plano.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/staffhub-api/pkg/logger"
)

// Sweeper lo cumple auth.SessionManager.
type Sweeper interface {
	Sweep(ctx context.Context) (int64, error)
}

// SessionSweeper borra las sesiones expiradas según una expresión cron.
// La purga perezosa en cada lookup sigue siendo la que garantiza la validez; esto solo limpia la tabla.
type SessionSweeper struct {
	cron    *cron.Cron
	sweeper Sweeper
	log     *logger.Logger
	timeout time.Duration
}

// NewSessionSweeper valida la expresión (formato estándar de 5 campos o descriptores @every/@hourly).
func NewSessionSweeper(spec string, sweeper Sweeper, log *logger.Logger) (*SessionSweeper, error) {
	if log == nil {
		log = logger.Nop()
	}
	s := &SessionSweeper{
		cron:    cron.New(),
		sweeper: sweeper,
		log:     log.Component("session-sweeper"),
		timeout: 30 * time.Second,
	}
	if _, err := s.cron.AddFunc(spec, s.RunOnce); err != nil {
		return nil, fmt.Errorf("scheduler: expresión cron inválida %q: %w", spec, err)
	}
	return s, nil
}

// RunOnce ejecuta un barrido con timeout propio.
func (s *SessionSweeper) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.sweeper.Sweep(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("barrido de sesiones falló")
		return
	}
	if n > 0 {
		s.log.Info().Int64("deleted", n).Msg("sesiones expiradas eliminadas")
	}
}

// Start arranca el planificador en su propia goroutine.
func (s *SessionSweeper) Start() { s.cron.Start() }

// Stop detiene el planificador y espera a que termine el barrido en curso.
func (s *SessionSweeper) Stop() {
	<-s.cron.Stop().Done()
}
