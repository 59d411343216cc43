package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/BetterRest/internal/predict"
)

// artifactEventMsg carries one model artifact change into Update
type artifactEventMsg struct {
	event predict.ArtifactEvent
}

// watcherClosedMsg is sent once the artifact watcher stops
type watcherClosedMsg struct{}

// waitForArtifact blocks on the next watcher event
func waitForArtifact(events <-chan predict.ArtifactEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return watcherClosedMsg{}
		}
		return artifactEventMsg{event: event}
	}
}
