// Package logger expone un envoltorio fino sobre zerolog para inyectar el
// logger por constructor en vez de depender del global.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones del logger.
type Config struct {
	Env   string // development escribe consola legible; cualquier otro, JSON
	Level string // debug, info, warn, error
}

// Logger envoltorio sobre zerolog.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger según el entorno. El global de zerolog se redirige
// al mismo destino para las librerías que loguean por su cuenta.
func New(cfg Config) *Logger {
	var out io.Writer = os.Stdout
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zl := zerolog.New(out).Level(level).With().Timestamp().Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With agrega campos fijos y devuelve el contexto para armar un sublogger.
func (l *Logger) With() zerolog.Context { return l.zl.With() }

// Zerolog expone el logger interno para integraciones que piden la API directa.
func (l *Logger) Zerolog() zerolog.Logger { return l.zl }
