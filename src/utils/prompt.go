package utils

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// PromptLine prints the prompt and reads one line from stdin, trimmed of
// the trailing newline.
func PromptLine(prompt string) (string, error) {
	fmt.Print(prompt)

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("PromptLine: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}
