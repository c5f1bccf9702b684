package cui

import (
	"fmt"
	"strings"
)

// Confirm asks message and returns true only if the answer
// is a lone "y", whatever its case
func (c *Console) Confirm(message string) bool {
	fmt.Fprintf(c.output, "\n%s", message)
	response, err := c.input.ReadString('\n')
	if err != nil && len(response) == 0 {
		return false
	}
	return strings.EqualFold(strings.TrimRight(response, "\r\n"), "y")
}
