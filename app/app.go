package app

import (
	"image"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/voice-target-go/config"
	"github.com/soocke/voice-target-go/debug"
	"github.com/soocke/voice-target-go/ui/images"
)

const debugLogInterval = 10 * time.Second

// VoiceApp is the small always-on control window. Every button mirrors a
// voice command, so the overlays stay reachable without a recognizer
// attached.
type VoiceApp struct {
	cfg     *config.Config
	logger  *slog.Logger
	session *Session
	status  *LabelWidget
	preview *LabelWidget // last saved template crop
}

// NewApp builds the control window and the session behind it.
func NewApp(title string, cfg *config.Config, logger *slog.Logger) *VoiceApp {
	a := &VoiceApp{cfg: cfg, logger: logger, session: NewSession(cfg, logger)}
	a.session.Notify = a.setStatus
	a.session.OnTemplateSaved = a.showPreview

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	return a
}

// Session exposes the voice-action surface for external dispatchers.
func (a *VoiceApp) Session() *Session { return a.session }

// Start builds the widgets and enters the Tk event loop. Blocks until the
// window closes.
func (a *VoiceApp) Start() {
	Pack(Button(Txt("Select Region"), Command(func() { a.run(a.session.RegionSelect) })),
		Padx("1m"), Pady("1m"))
	Pack(Button(Txt("Command Wizard"), Command(func() { a.run(a.session.CommandWizardShow) })),
		Padx("1m"), Pady("1m"))
	Pack(Button(Txt("Blob Markers"), Command(func() { a.run(a.session.BlobMarkersShow) })),
		Padx("1m"), Pady("1m"))
	Pack(Button(Txt("Hide Markers"), Command(func() { a.session.HideMarkers() })),
		Padx("1m"), Pady("1m"))
	Pack(Button(Txt("Exit"), Command(a.exitHandler)), Padx("1m"), Pady("1m"))

	a.status = Label(Txt("ready"), Borderwidth(1), Relief("ridge"))
	Pack(a.status, Padx("1m"), Pady("1m"))

	if a.cfg.Debug {
		debug.StartGoroutineLogger(debugLogInterval, a.logger)
		a.startPlatformDebug()
	}

	App.Wait()
}

func (a *VoiceApp) run(action func() error) {
	if err := action(); err != nil {
		a.logger.Error("action failed", "error", err)
		a.setStatus(err.Error())
	}
}

const previewMax = 96

// showPreview displays the last saved template crop, scaled down so large
// selections do not blow up the control window.
func (a *VoiceApp) showPreview(img image.Image) {
	scaled := images.ScaleToFit(img, previewMax, previewMax)
	data := images.EncodePNG(scaled)
	if len(data) == 0 {
		return
	}
	func() {
		defer func() { _ = recover() }()
		if a.preview == nil {
			a.preview = Label(Image(NewPhoto(Data(data))), Borderwidth(1), Relief("groove"))
			Pack(a.preview, Padx("1m"), Pady("1m"))
			return
		}
		a.preview.Configure(Image(NewPhoto(Data(data))))
	}()
}

func (a *VoiceApp) setStatus(msg string) {
	if a.status == nil {
		return
	}
	func() {
		defer func() { _ = recover() }()
		a.status.Configure(Txt(msg))
	}()
}

func (a *VoiceApp) exitHandler() {
	a.session.Close()
	Destroy(App)
}
