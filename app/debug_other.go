//go:build !windows

package app

func (a *VoiceApp) startPlatformDebug() {}
