//go:build windows

package app

import "github.com/soocke/voice-target-go/debug"

func (a *VoiceApp) startPlatformDebug() {
	debug.StartMemLogger(debugLogInterval, a.logger)
}
