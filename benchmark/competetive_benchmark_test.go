package benchmark

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/tracelog/core"
	"github.com/philipp01105/tracelog/formatter"
	"github.com/philipp01105/tracelog/logger"
	"github.com/philipp01105/tracelog/sink"
)

// ---------------------------------------------------------------------------
// Helpers – identical sink for every framework (io.Discard)
// ---------------------------------------------------------------------------

// newTracelogLogger returns a tracelog logger that writes JSON to w.
func newTracelogLogger(b *testing.B, w io.Writer, level core.Level) *logger.Logger {
	b.Helper()
	factory := sink.FactoryFunc(func(string) (sink.Writer, error) {
		return sink.NewConsoleWriter(sink.ConsoleConfig{
			Writer:    w,
			Formatter: formatter.NewJSONFormatter(formatter.Config{}),
		}), nil
	})
	l, err := logger.NewBuilder().
		WithFactory(factory).
		WithVersion("bench").
		Build()
	if err != nil {
		b.Fatal(err)
	}
	if err := l.SetDestination("bench"); err != nil {
		b.Fatal(err)
	}
	// raised after open so the counter sampler is never started
	if err := l.SetLevel(level); err != nil {
		b.Fatal(err)
	}
	return l
}

// newZapLogger returns a zap.Logger that writes JSON to w.
func newZapLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	zc := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return zap.New(zc)
}

// newSlogLogger returns an slog.Logger that writes JSON to w.
func newSlogLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// newLogrusLogger returns a logrus.Logger that writes JSON to w.
func newLogrusLogger(w io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(level)
	return l
}

// newZerologLogger returns a zerolog.Logger that writes JSON to w.
func newZerologLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger().Level(level)
}

// ---------------------------------------------------------------------------
// Scenario 1 – Plain message
// ---------------------------------------------------------------------------

func BenchmarkCompetitive_Message(b *testing.B) {
	b.Run("tracelog", func(b *testing.B) {
		l := newTracelogLogger(b, io.Discard, core.BasicLevel)
		defer l.Close()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = l.WriteLine("info message")
		}
	})

	b.Run("tracelog-slog", func(b *testing.B) {
		tl := newTracelogLogger(b, io.Discard, core.BasicLevel)
		defer tl.Close()
		l := slog.New(logger.NewSlogHandler(tl))
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("info message")
		}
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger(io.Discard, zap.InfoLevel)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("info message")
		}
	})

	b.Run("slog", func(b *testing.B) {
		l := newSlogLogger(io.Discard, slog.LevelInfo)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("info message")
		}
	})

	b.Run("logrus", func(b *testing.B) {
		l := newLogrusLogger(io.Discard, logrus.InfoLevel)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("info message")
		}
	})

	b.Run("zerolog", func(b *testing.B) {
		l := newZerologLogger(io.Discard, zerolog.InfoLevel)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info().Msg("info message")
		}
	})
}

// ---------------------------------------------------------------------------
// Scenario 2 – Formatted message
// ---------------------------------------------------------------------------

func BenchmarkCompetitive_Formatted(b *testing.B) {
	b.Run("tracelog", func(b *testing.B) {
		l := newTracelogLogger(b, io.Discard, core.BasicLevel)
		defer l.Close()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = l.WriteLinef("request %s %s -> %d", "GET", "/api/users", 200)
		}
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger(io.Discard, zap.InfoLevel).Sugar()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Infof("request %s %s -> %d", "GET", "/api/users", 200)
		}
	})

	b.Run("logrus", func(b *testing.B) {
		l := newLogrusLogger(io.Discard, logrus.InfoLevel)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Infof("request %s %s -> %d", "GET", "/api/users", 200)
		}
	})

	b.Run("zerolog", func(b *testing.B) {
		l := newZerologLogger(io.Discard, zerolog.InfoLevel)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info().Msgf("request %s %s -> %d", "GET", "/api/users", 200)
		}
	})
}

// ---------------------------------------------------------------------------
// Scenario 3 – Disabled level (measure level-check overhead)
// ---------------------------------------------------------------------------

func BenchmarkCompetitive_DisabledLevel(b *testing.B) {
	b.Run("tracelog", func(b *testing.B) {
		l := newTracelogLogger(b, io.Discard, core.BasicLevel)
		defer l.Close()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = l.WriteLineAtLevel(core.VerboseLevel, "should be skipped %s", "value")
		}
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger(io.Discard, zap.ErrorLevel)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Debug("should be skipped", zap.String("key", "value"))
		}
	})

	b.Run("slog", func(b *testing.B) {
		l := newSlogLogger(io.Discard, slog.LevelError)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Debug("should be skipped", slog.String("key", "value"))
		}
	})

	b.Run("logrus", func(b *testing.B) {
		l := newLogrusLogger(io.Discard, logrus.ErrorLevel)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.WithField("key", "value").Debug("should be skipped")
		}
	})

	b.Run("zerolog", func(b *testing.B) {
		l := newZerologLogger(io.Discard, zerolog.ErrorLevel)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Debug().Str("key", "value").Msg("should be skipped")
		}
	})
}

// ---------------------------------------------------------------------------
// Scenario 4 – Nested context (scope vs child logger)
// ---------------------------------------------------------------------------

func BenchmarkCompetitive_NestedContext(b *testing.B) {
	b.Run("tracelog", func(b *testing.B) {
		l := newTracelogLogger(b, io.Discard, core.BasicLevel)
		defer l.Close()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			s := l.CreateScope("request")
			_ = l.WriteLine("handled")
			s.Release()
		}
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger(io.Discard, zap.InfoLevel)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.With(zap.String("scope", "request")).Info("handled")
		}
	})

	b.Run("slog", func(b *testing.B) {
		l := newSlogLogger(io.Discard, slog.LevelInfo)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.With(slog.String("scope", "request")).Info("handled")
		}
	})

	b.Run("logrus", func(b *testing.B) {
		l := newLogrusLogger(io.Discard, logrus.InfoLevel)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.WithField("scope", "request").Info("handled")
		}
	})

	b.Run("zerolog", func(b *testing.B) {
		l := newZerologLogger(io.Discard, zerolog.InfoLevel)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			cl := l.With().Str("scope", "request").Logger()
			cl.Info().Msg("handled")
		}
	})
}

// ---------------------------------------------------------------------------
// Scenario 5 – Parallel / high-concurrency logging
// ---------------------------------------------------------------------------

func BenchmarkCompetitive_Parallel(b *testing.B) {
	b.Run("tracelog", func(b *testing.B) {
		l := newTracelogLogger(b, io.Discard, core.BasicLevel)
		defer l.Close()
		b.ResetTimer()
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				_ = l.WriteLine("parallel log")
			}
		})
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger(io.Discard, zap.InfoLevel)
		b.ResetTimer()
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				l.Info("parallel log")
			}
		})
	})

	b.Run("slog", func(b *testing.B) {
		l := newSlogLogger(io.Discard, slog.LevelInfo)
		b.ResetTimer()
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				l.Info("parallel log")
			}
		})
	})

	b.Run("logrus", func(b *testing.B) {
		l := newLogrusLogger(io.Discard, logrus.InfoLevel)
		b.ResetTimer()
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				l.Info("parallel log")
			}
		})
	})

	b.Run("zerolog", func(b *testing.B) {
		l := newZerologLogger(io.Discard, zerolog.InfoLevel)
		b.ResetTimer()
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				l.Info().Msg("parallel log")
			}
		})
	})
}

// ---------------------------------------------------------------------------
// Scenario 6 – File output (real I/O, equal conditions)
// ---------------------------------------------------------------------------

func BenchmarkCompetitive_FileOutput(b *testing.B) {
	b.Run("tracelog", func(b *testing.B) {
		f, err := os.CreateTemp(b.TempDir(), "bench-tracelog-*.log")
		if err != nil {
			b.Fatal(err)
		}
		l := newTracelogLogger(b, f, core.BasicLevel)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = l.WriteLine("file log")
		}
		b.StopTimer()
		_ = l.Close()
		f.Close()
	})

	b.Run("zap", func(b *testing.B) {
		f, err := os.CreateTemp(b.TempDir(), "bench-zap-*.log")
		if err != nil {
			b.Fatal(err)
		}
		l := newZapLogger(f, zap.InfoLevel)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("file log")
		}
		b.StopTimer()
		_ = l.Sync()
		f.Close()
	})

	b.Run("slog", func(b *testing.B) {
		f, err := os.CreateTemp(b.TempDir(), "bench-slog-*.log")
		if err != nil {
			b.Fatal(err)
		}
		l := newSlogLogger(f, slog.LevelInfo)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("file log")
		}
		b.StopTimer()
		f.Close()
	})

	b.Run("logrus", func(b *testing.B) {
		f, err := os.CreateTemp(b.TempDir(), "bench-logrus-*.log")
		if err != nil {
			b.Fatal(err)
		}
		l := newLogrusLogger(f, logrus.InfoLevel)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("file log")
		}
		b.StopTimer()
		f.Close()
	})

	b.Run("zerolog", func(b *testing.B) {
		f, err := os.CreateTemp(b.TempDir(), "bench-zerolog-*.log")
		if err != nil {
			b.Fatal(err)
		}
		l := newZerologLogger(f, zerolog.InfoLevel)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info().Msg("file log")
		}
		b.StopTimer()
		f.Close()
	})
}
