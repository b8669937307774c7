package ui

import "unicode"

// EditLine reads key presses from events into a buffer until a key that is
// neither a letter, a digit nor Backspace arrives; that key is discarded.
// preview is called with the current buffer on every tick. The caller owns
// events again once EditLine returns.
func EditLine(events <-chan Event, preview func(buf string) error) (string, error) {
	var buf []rune
	for {
		ev, ok := <-events
		if !ok {
			return string(buf), ErrChannelClosed
		}
		switch ev.Kind {
		case EventFatal:
			return string(buf), ev.Err
		case EventTick:
			if preview == nil {
				continue
			}
			if err := preview(string(buf)); err != nil {
				return string(buf), err
			}
		case EventKey:
			switch {
			case ev.Key.Code == KeyBackspace:
				if len(buf) > 0 {
					buf = buf[:len(buf)-1]
				}
			case ev.Key.Code == KeyRune && isAlphanumeric(ev.Key.Rune):
				buf = append(buf, ev.Key.Rune)
			default:
				return string(buf), nil
			}
		}
	}
}

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsNumber(r)
}
