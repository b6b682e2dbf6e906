package ui

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

// Typewriter prints assistant replies one rune at a time.
type Typewriter struct {
	Out   io.Writer
	Delay time.Duration
}

var defaultTypewriter = Typewriter{Out: os.Stdout, Delay: 10 * time.Millisecond}

func PrintTypewriter(text string) {
	defaultTypewriter.Print(text)
}

// Print writes text without markdown markup, prefixed with "AI: ".
func (tw Typewriter) Print(text string) {
	text = strings.TrimSpace(stripMarkdown(text))
	if text == "" {
		return
	}

	fmt.Fprintln(tw.Out)
	fmt.Fprint(tw.Out, pterm.FgMagenta.Sprint("AI: "))
	for _, ch := range text {
		fmt.Fprint(tw.Out, string(ch))
		if tw.Delay > 0 {
			time.Sleep(tw.Delay)
		}
	}
	fmt.Fprint(tw.Out, "\n\n")
}

var (
	reFence      = regexp.MustCompile("(?m)^```[a-z]*[ \t]*\n?")
	reBold       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic     = regexp.MustCompile(`\*(.+?)\*`)
	reInlineCode = regexp.MustCompile("`([^`]+)`")
	reHeading    = regexp.MustCompile(`(?m)^#{1,3}\s+`)
	reBullet     = regexp.MustCompile(`(?m)^(\s*)[*+]\s+`)
)

func stripMarkdown(text string) string {
	text = reFence.ReplaceAllString(text, "")
	text = reBullet.ReplaceAllString(text, "$1- ")
	text = reBold.ReplaceAllString(text, "$1")
	text = reItalic.ReplaceAllString(text, "$1")
	text = reInlineCode.ReplaceAllString(text, "$1")
	text = reHeading.ReplaceAllString(text, "")
	return text
}
