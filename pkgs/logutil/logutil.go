package logutil

import (
	"fmt"
	"io"

	"github.com/lworkltd/jms-sender/service/profile"
	kitlog "github.com/lworkltd/jms-sender/utils/log"
	"github.com/sirupsen/logrus"
)

// InitLoggerWithProfile configures the standard logrus logger: output,
// formatter, level and the @app tag.
func InitLoggerWithProfile(cfg *profile.Logger, app string, out io.Writer) error {
	switch cfg.Format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: cfg.TimeFormat,
		})
	case "text", "":
		logrus.SetFormatter(&kitlog.TextFormatter{
			TimestampFormat: cfg.TimeFormat,
		})
	default:
		return fmt.Errorf("unsupport logrus formatter type %s", cfg.Format)
	}

	if cfg.Level != "" {
		logLevel, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return fmt.Errorf("cannot parse logger level %s", cfg.Level)
		}
		logrus.SetLevel(logLevel)
	}

	if out != nil {
		logrus.SetOutput(out)
	}
	logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	if app != "" {
		logrus.AddHook(kitlog.NewAppTagHook(app))
	}

	logrus.WithField("format", cfg.Format).Debug("Logger initialized")
	return nil
}
