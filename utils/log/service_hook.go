package log

import (
	"github.com/sirupsen/logrus"
)

// AppTagHook tags every entry with the program name.
type AppTagHook struct {
	app string
}

func NewAppTagHook(app string) logrus.Hook {
	return &AppTagHook{
		app: app,
	}
}

func (hook *AppTagHook) Fire(entry *logrus.Entry) error {
	entry.Data[AppTag] = hook.app
	return nil
}

func (hook *AppTagHook) Levels() []logrus.Level {
	return logrus.AllLevels
}
