package platform

import (
	"bytes"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/glabrego/resh-cli/internal/reddit"
)

const permalinkHost = "https://www.reddit.com"

// ItemURL picks the address an item points at: a link post's target, else
// the reddit page for the item.
func ItemURL(item reddit.Item) (string, error) {
	switch v := item.(type) {
	case *reddit.Submission:
		if v.URL != "" {
			return ValidateURL(v.URL)
		}
		return permalink(v.Permalink)
	case *reddit.Subreddit:
		return ValidateURL(permalinkHost + "/r/" + v.DisplayName + "/")
	case *reddit.User:
		return ValidateURL(permalinkHost + "/user/" + v.Name + "/")
	case *reddit.Comment:
		if v.LinkID == "" {
			return "", fmt.Errorf("comment has no URL")
		}
		return ValidateURL(permalinkHost + "/comments/" + strings.TrimPrefix(v.LinkID, "t3_") + "/_/" + v.ID + "/")
	default:
		return "", fmt.Errorf("%s has no URL", reddit.KindOf(item))
	}
}

func permalink(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("item has no URL")
	}
	return ValidateURL(permalinkHost + path)
}

func ValidateURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("item has no URL")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid URL format")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme: %s", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("invalid URL host")
	}
	return trimmed, nil
}

// Opener launches URLs. Run and LookPath are swappable for tests.
type Opener struct {
	GOOS     string
	Run      func(name string, args []string, stdin string) error
	LookPath func(string) (string, error)
}

func NewOpener() *Opener {
	return &Opener{GOOS: runtime.GOOS, Run: runCommand, LookPath: exec.LookPath}
}

// Open tries the browser first and falls back to the clipboard. The returned
// status line tells the user which one happened.
func (o *Opener) Open(rawURL string) (string, error) {
	u, err := ValidateURL(rawURL)
	if err != nil {
		return "", err
	}
	name, args := browserCommand(o.GOOS, u)
	if err := o.Run(name, args, ""); err == nil {
		return "Opened " + u, nil
	}
	clip, err := selectClipboardCommand(o.LookPath)
	if err != nil {
		return "", fmt.Errorf("could not open browser: %w", err)
	}
	if err := o.Run(clip[0], clip[1:], u); err != nil {
		return "", fmt.Errorf("copy URL to clipboard: %w", err)
	}
	return "Copied " + u + " to clipboard", nil
}

func browserCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}

func selectClipboardCommand(lookPath func(string) (string, error)) ([]string, error) {
	commands := [][]string{
		{"pbcopy"},
		{"xclip", "-selection", "clipboard"},
		{"wl-copy"},
	}
	for _, c := range commands {
		if _, err := lookPath(c[0]); err == nil {
			return c, nil
		}
	}
	return nil, fmt.Errorf("no clipboard command available")
}

func runCommand(name string, args []string, stdin string) error {
	cmd := exec.Command(name, args...)
	if stdin != "" {
		cmd.Stdin = bytes.NewBufferString(stdin)
	}
	return cmd.Run()
}
