package policy

import "time"

// Lockout máquina de estados Unlocked -> Locked(hasta) -> Unlocked del login.
// La transición de vuelta a Unlocked es perezosa: se evalúa en el siguiente intento.
type Lockout struct {
	MaxAttempts int
	Duration    time.Duration
}

// DefaultLockout 5 intentos, 15 minutos.
func DefaultLockout() Lockout {
	return Lockout{MaxAttempts: 5, Duration: 15 * time.Minute}
}

// IsLocked informa si el bloqueo sigue activo en now.
func (l Lockout) IsLocked(lockedUntil *time.Time, now time.Time) bool {
	return lockedUntil != nil && lockedUntil.After(now)
}

// Expired informa si hubo un bloqueo que ya venció; el contador se reinicia en ese caso.
func (l Lockout) Expired(lockedUntil *time.Time, now time.Time) bool {
	return lockedUntil != nil && !lockedUntil.After(now)
}

// LockUntil instante de fin de un bloqueo iniciado en now.
func (l Lockout) LockUntil(now time.Time) time.Time {
	return now.Add(l.Duration)
}

// NextFailure calcula el estado tras un fallo de contraseña. Es la referencia que los
// stores reproducen de forma atómica.
func (l Lockout) NextFailure(attempts int, lockedUntil *time.Time, now time.Time) (int, *time.Time) {
	if l.Expired(lockedUntil, now) {
		attempts = 0
		lockedUntil = nil
	}
	attempts++
	if attempts >= l.MaxAttempts {
		until := l.LockUntil(now)
		return attempts, &until
	}
	return attempts, lockedUntil
}
