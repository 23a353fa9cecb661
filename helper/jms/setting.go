package jms

const (
	queueSettingPrefix    = "queue/"
	bindSettingPrefix     = "bind/"
	exchangeSettingPrefix = "exchange/"
)

const (
	settingDurable    = "durable"
	settingExclusive  = "exclusive"
	settingInternal   = "internal"
	settingAutoDelete = "autodelete"
	settingNoWait     = "nowait"
)

// Queue destinations are declared the way the RabbitMQ JMS client declares them.
func defaultQueueSettings() map[string]bool {
	return map[string]bool{
		settingDurable:    true,
		settingAutoDelete: false,
		settingExclusive:  false,
		settingNoWait:     false,
	}
}

func defaultExchangeSettings() map[string]bool {
	return map[string]bool{
		settingDurable:    true,
		settingAutoDelete: false,
		settingInternal:   false,
		settingNoWait:     false,
	}
}

func defaultBindSettings() map[string]bool {
	return map[string]bool{
		settingNoWait: false,
	}
}

type QueueSettings map[string]bool

func NewQueueSettings() QueueSettings {
	return map[string]bool{}
}

func (settings QueueSettings) Durable(able bool) QueueSettings {
	settings[queueSettingPrefix+settingDurable] = able
	return settings
}

func (settings QueueSettings) AutoDelete(able bool) QueueSettings {
	settings[queueSettingPrefix+settingAutoDelete] = able
	return settings
}

func (settings QueueSettings) Exclusive(able bool) QueueSettings {
	settings[queueSettingPrefix+settingExclusive] = able
	return settings
}

type ExchangeSettings map[string]bool

func NewExchangeSettings() ExchangeSettings {
	return map[string]bool{}
}

func (settings ExchangeSettings) Durable(able bool) ExchangeSettings {
	settings[exchangeSettingPrefix+settingDurable] = able
	return settings
}

func (settings ExchangeSettings) AutoDelete(able bool) ExchangeSettings {
	settings[exchangeSettingPrefix+settingAutoDelete] = able
	return settings
}

type BindSettings map[string]bool

func NewBindSettings() BindSettings {
	return map[string]bool{}
}

func (settings BindSettings) NoWait(able bool) BindSettings {
	settings[bindSettingPrefix+settingNoWait] = able
	return settings
}

// MakeupSettings merges settings; later keys win.
func MakeupSettings(settings ...map[string]bool) map[string]bool {
	allSettings := make(map[string]bool, 10)
	for _, setting := range settings {
		for key, value := range setting {
			allSettings[key] = value
		}
	}
	return allSettings
}
