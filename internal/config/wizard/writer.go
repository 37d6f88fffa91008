package wizard

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/imamik/topocheck/internal/request"
)

// ErrAborted is returned when the user declines to overwrite a file.
var ErrAborted = errors.New("aborted: file exists")

// Function variable for dependency injection in tests.
var confirmOverwrite = defaultConfirmOverwrite

// WriteRequest writes the request to a YAML file with a descriptive header.
// An existing file is only replaced after confirmation.
func WriteRequest(req *request.Request, outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		ok, err := confirmOverwrite(outputPath)
		if err != nil {
			return fmt.Errorf("failed to confirm overwrite: %w", err)
		}
		if !ok {
			return ErrAborted
		}
	}

	yamlBytes, err := req.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(generateHeader(req))
	sb.WriteString("\n")
	sb.Write(yamlBytes)

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func generateHeader(req *request.Request) string {
	var sb strings.Builder
	sb.WriteString("# topocheck topology request\n")
	fmt.Fprintf(&sb, "# Stack: %s\n", req.Blueprint.Stack)
	fmt.Fprintf(&sb, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	sb.WriteString("#\n")
	sb.WriteString("# Fill in properties, then run: topocheck validate <this file>\n")
	return sb.String()
}

// defaultConfirmOverwrite is the default implementation that prompts via stdin.
func defaultConfirmOverwrite(path string) (bool, error) {
	fmt.Printf("\nFile already exists: %s\n", path)
	fmt.Print("Overwrite? (y/n): ")

	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false, err
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}
