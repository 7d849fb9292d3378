package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/Alturino/restaurant/internal/config"
	"github.com/Alturino/restaurant/internal/constants"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

func level(app config.Application, cfg config.Log) zerolog.Level {
	if app.Env == "development" {
		return zerolog.TraceLevel
	}
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// New builds a logger writing to out and, when cfg.Path is set, to a
// rotating file.
func New(out io.Writer, app config.Application, cfg config.Log) zerolog.Logger {
	zerolog.DurationFieldUnit = time.Microsecond
	zerolog.ErrorFieldName = "error"
	zerolog.ErrorStackFieldName = "stack-trace"
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.LevelFieldName = "level"
	zerolog.MessageFieldName = "message"
	zerolog.TimestampFieldName = "timestamp"

	output := out
	if cfg.Path != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    10,
			MaxBackups: 3,
			Compress:   true,
		}
		output = zerolog.MultiLevelWriter(out, fileWriter)
	}

	return zerolog.New(output).
		Level(level(app, cfg)).
		Hook(AttachTraceIdFromContext()).
		With().
		Timestamp().
		Caller().
		Stack().
		Int("pid", os.Getpid()).
		Logger()
}

// Get initializes the process logger once. The CLI writes logs to stderr so
// command output on stdout stays clean.
func Get(app config.Application, cfg config.Log) zerolog.Logger {
	once.Do(func() {
		logger = New(os.Stderr, app, cfg)
		logger.Debug().
			Str(constants.KEY_TAG, "log Get").
			Str(constants.KEY_PROCESS, "init logger").
			Msg("finish initiating logging")
	})
	return logger
}
