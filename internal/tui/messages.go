package tui

import (
	"time"

	"github.com/staggeredsix/catbreak/internal/news"
	"github.com/staggeredsix/catbreak/internal/settings"
)

type newsLoadedMsg struct {
	payload   *news.Payload
	fetchedAt time.Time
	fromCache bool
}

type fetchFailedMsg struct {
	err error
}

// setupNeededMsg is emitted when the cache is empty and no backend
// address is configured yet.
type setupNeededMsg struct{}

type settingsSavedMsg struct {
	saved settings.Settings
}

type errMsg struct {
	err error
}
