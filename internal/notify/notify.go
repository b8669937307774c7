package notify

import (
	"github.com/gen2brain/beeep"
)

func Info(title, message string) error {
	return beeep.Notify(title, message, "")
}

func Alert(title, message string) error {
	return beeep.Alert(title, message, "")
}

// Desktop raises store failures as desktop alerts. A disabled Desktop
// does nothing.
type Desktop struct {
	Enabled bool
	// send defaults to Alert; tests swap it.
	send func(title, message string) error
}

func NewDesktop(enabled bool) *Desktop {
	return &Desktop{Enabled: enabled, send: Alert}
}

func (d *Desktop) Warn(title, message string) error {
	if d == nil || !d.Enabled {
		return nil
	}
	send := d.send
	if send == nil {
		send = Alert
	}
	return send(title, message)
}
