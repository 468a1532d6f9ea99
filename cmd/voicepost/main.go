// voicepost is an interactive client for the post-generation service:
// speak, type, or upload a photo; get platform-specific caption variants
// rendered next to a representative image.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"

	"github.com/pragadeeswaran254/voice-social-poster/pkg/clipboard"
	"github.com/pragadeeswaran254/voice-social-poster/pkg/config"
	"github.com/pragadeeswaran254/voice-social-poster/pkg/download"
	"github.com/pragadeeswaran254/voice-social-poster/pkg/identity"
	"github.com/pragadeeswaran254/voice-social-poster/pkg/imageref"
	"github.com/pragadeeswaran254/voice-social-poster/pkg/logger"
	"github.com/pragadeeswaran254/voice-social-poster/pkg/media"
	"github.com/pragadeeswaran254/voice-social-poster/pkg/metrics"
	"github.com/pragadeeswaran254/voice-social-poster/pkg/post"
	"github.com/pragadeeswaran254/voice-social-poster/pkg/postapi"
	"github.com/pragadeeswaran254/voice-social-poster/pkg/session"
	"github.com/pragadeeswaran254/voice-social-poster/pkg/state"
	"github.com/pragadeeswaran254/voice-social-poster/pkg/status"
	"github.com/pragadeeswaran254/voice-social-poster/pkg/voice"
	"github.com/pragadeeswaran254/voice-social-poster/pkg/voice/wsrecognizer"
)

type app struct {
	cfg        *config.Config
	controller *session.Controller
	resolver   *imageref.Resolver
	router     *download.Router
	voice      *voice.Controller
	statusLine *status.Line
	prefs      *state.PrefsStore

	mu sync.Mutex
	st session.State
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.New(os.Stderr, cfg.LogLevel)

	id, signedIn := identity.FromConfig(cfg)
	if cfg.AuthRequired && !signedIn {
		fmt.Fprintln(os.Stderr, "This build requires an identity. Set VOICEPOST_USER_ID (and VOICEPOST_ACCESS_TOKEN).")
		os.Exit(1)
	}

	httpClient := id.HTTPClient(context.Background())
	api := postapi.NewClient(cfg.ServiceURL, httpClient)

	tracker := metrics.NewTracker(cfg.WorkspacePath())
	prefs := state.NewPrefsStore(cfg.WorkspacePath())

	a := &app{
		cfg:      cfg,
		resolver: imageref.NewResolver(cfg.StockImageURL, cfg.StockImageSize),
		prefs:    prefs,
		st: session.State{
			Tone:   post.ToneProfessional,
			Status: status.ReadyText,
		},
	}
	if id != nil {
		a.st.UserID = id.UserID
	}
	if saved := prefs.Get().Tone; saved != "" {
		if t, err := post.ParseTone(saved); err == nil {
			a.st.Tone = t
		}
	}

	a.controller = session.NewController(session.ControllerOptions{
		API: api,
		Capabilities: session.Capabilities{
			ImageUploadEnabled: cfg.ImageUploadEnabled,
			AuthRequired:       cfg.AuthRequired,
		},
		Tracker: tracker,
		Log:     logger.For(log, "session"),
	})

	a.statusLine = status.NewLine(500*time.Millisecond, func(text string) {
		fmt.Printf("\r[status] %s\n", text)
	})
	defer a.statusLine.Close()

	recognizer := wsrecognizer.New(cfg.SpeechServiceURL, logger.For(log, "speech"))
	a.voice = voice.NewController(voice.ControllerOptions{
		Recognizer: recognizer,
		Locale:     cfg.SpeechLocale,
		OnTranscript: func(transcript string) {
			a.mu.Lock()
			a.st.Pending = transcript
			a.mu.Unlock()
			fmt.Printf("\n> %s\n", transcript)
		},
		OnStatus: a.statusLine.Set,
		Log:      logger.For(log, "voice"),
	})

	a.router = download.NewRouter(download.RouterOptions{
		Dir: cfg.DownloadDir,
		Log: logger.For(log, "download"),
	})

	// Initial fetch, same as the page load.
	a.apply(a.controller.ListPosts(context.Background(), a.snapshot()))

	rl, err := readline.New("voicepost> ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "readline:", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Println("Type your idea, or /help for commands.")
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			return
		}
		a.dispatch(line)
	}
}

func (a *app) snapshot() session.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.st
}

// apply installs the post-operation state and projects alerts and status.
func (a *app) apply(res session.Result) {
	a.mu.Lock()
	a.st = res.State
	a.mu.Unlock()

	if res.Alert != "" {
		fmt.Printf("!! %s\n", res.Alert)
	}
	a.statusLine.Set(res.State.Status)
}

func (a *app) dispatch(line string) {
	ctx := context.Background()

	if !strings.HasPrefix(line, "/") {
		a.mu.Lock()
		a.st.Pending = line
		a.mu.Unlock()
		fmt.Println("(pending text set; /send to generate)")
		return
	}

	cmd, arg, _ := strings.Cut(line[1:], " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "help":
		a.printHelp()
	case "voice":
		res := a.voice.Toggle(ctx)
		if res.Alert != "" {
			fmt.Printf("!! %s\n", res.Alert)
		}
		a.statusLine.Set(res.Status)
	case "tone":
		t, err := post.ParseTone(arg)
		if err != nil {
			fmt.Println("!!", err)
			return
		}
		a.mu.Lock()
		a.st.Tone = t
		userID := a.st.UserID
		a.mu.Unlock()
		a.prefs.Set(state.Prefs{Tone: string(t), UserID: userID})
		fmt.Printf("Tone set to %s\n", t)
	case "send":
		a.apply(a.controller.SubmitText(ctx, a.snapshot()))
	case "upload":
		if arg == "" {
			fmt.Println("!! usage: /upload <image-path>")
			return
		}
		part, err := media.LoadImage(arg)
		if err != nil {
			fmt.Println("!!", err)
			return
		}
		a.apply(a.controller.SubmitImage(ctx, a.snapshot(), part))
	case "list":
		a.apply(a.controller.ListPosts(ctx, a.snapshot()))
		a.renderPosts()
	case "download":
		a.downloadPost(ctx, arg)
	case "copy":
		a.copyCaption(arg)
	case "status":
		fmt.Printf("[status] %s\n", a.statusLine.Text())
	default:
		fmt.Printf("!! unknown command /%s (try /help)\n", cmd)
	}
}

func (a *app) printHelp() {
	fmt.Print(`Commands:
  <text>              set the pending post text
  /voice              toggle voice capture
  /tone <tone>        Professional | Funny | Sarcastic | Inspiring | "Gen Z"
  /send               generate captions from the pending text
  /upload <path>      generate captions from a photo
  /list               refresh and show the post list
  /download <n>       save post n's image locally
  /copy <n> ig|tw     copy post n's caption to the clipboard
  /status             show the current status line
  /quit               exit
`)
}

func (a *app) renderPosts() {
	st := a.snapshot()
	if len(st.Posts) == 0 {
		fmt.Println("(no posts yet)")
		return
	}
	for i, p := range st.Posts {
		ref := a.resolver.Resolve(p)
		fmt.Printf("\n[%d] %q — %s tone\n", i, p.Content, p.Tone)
		if ref.Kind == imageref.Embedded {
			fmt.Printf("    image: (embedded upload, %d bytes base64)\n", len(p.ImageData))
		} else {
			fmt.Printf("    image: %s\n", ref.URI)
		}
		fmt.Printf("    instagram: %s\n", p.InstagramVersion)
		fmt.Printf("    twitter:   %s\n", p.TwitterVersion)
	}
}

func (a *app) downloadPost(ctx context.Context, arg string) {
	p, ok := a.postAt(arg)
	if !ok {
		return
	}
	outcome := a.router.Download(ctx, a.resolver.Resolve(p))
	switch outcome.Status {
	case download.Success:
		fmt.Println("Saved:", outcome.Path)
		a.statusLine.Set(outcome.StatusLine)
	case download.Degraded:
		fmt.Println("Download failed; opened in browser:", outcome.FallbackURL)
	default:
		fmt.Println("!!", outcome.Err)
	}
}

func (a *app) copyCaption(arg string) {
	idx, platform, _ := strings.Cut(arg, " ")
	p, ok := a.postAt(idx)
	if !ok {
		return
	}
	var text string
	switch strings.TrimSpace(platform) {
	case "ig", "instagram":
		text = p.InstagramVersion
	case "tw", "twitter":
		text = p.TwitterVersion
	default:
		fmt.Println("!! usage: /copy <n> ig|tw")
		return
	}
	if err := clipboard.Copy(text); err != nil {
		fmt.Println("!!", err)
		return
	}
	a.statusLine.SetWithReset("Copied to clipboard!", 2*time.Second)
}

func (a *app) postAt(arg string) (post.Post, bool) {
	st := a.snapshot()
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 0 || n >= len(st.Posts) {
		fmt.Println("!! no such post (use /list to see indices)")
		return post.Post{}, false
	}
	return st.Posts[n], true
}
