package view

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// SetClipboard replaces the system clipboard contents with text.
func SetClipboard(text string) {
	ClipboardClear()
	ClipboardAppend(text)
}
