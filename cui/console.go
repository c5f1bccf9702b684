package cui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const bannerWidth = 42

// Console prints check progress in a human readable
// form and reads answers from its input
type Console struct {
	output   io.Writer
	input    *bufio.Reader
	sections int
}

func New(output io.Writer, input io.Reader) *Console {
	if output == nil {
		output = os.Stdout
	}
	if input == nil {
		input = os.Stdin
	}
	return &Console{
		output: output,
		input:  bufio.NewReader(input),
	}
}

func (c *Console) Output() io.Writer {
	return c.output
}

// Banner frames title between two rulers; an opening banner
// indents the title and leaves an empty line after it
func (c *Console) Banner(title string, opening bool) {
	ruler := strings.Repeat("=", bannerWidth)
	if !opening {
		fmt.Fprintln(c.output)
	}
	styleBanner.Fprintln(c.output, ruler)
	if opening {
		title = strings.Repeat(" ", 8) + title
	}
	styleBanner.Fprintln(c.output, title)
	styleBanner.Fprintln(c.output, ruler)
	if opening {
		fmt.Fprintln(c.output)
	}
}

// Section announces a group of checks, spaced out
// from the previous one
func (c *Console) Section(title string) {
	if c.sections > 0 {
		fmt.Fprintln(c.output)
	}
	c.sections++
	fmt.Fprintln(c.output, title)
}

// Status prints a single check outcome
func (c *Console) Status(passed bool, message string) {
	style, icon := statusStyle(passed)
	style.Fprintf(c.output, "%s %s\n", icon, message)
}

func (c *Console) Println(message string) {
	fmt.Fprintln(c.output, message)
}
