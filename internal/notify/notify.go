// Package notify raises desktop notifications for the background watcher.
package notify

import "github.com/gen2brain/beeep"

// Desktop sends notifications through the OS notification service.
type Desktop struct{}

func (Desktop) Notify(title, message string) error {
	return beeep.Notify(title, message, "")
}
