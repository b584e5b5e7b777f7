package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	tempDir := t.TempDir()

	// cfs-hello prints the environment it received.
	helloCmdSource := fmt.Sprintf(`
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("args=%%v\n", os.Args[1:])
}
`, EnvConfigFile, EnvConfigFile, EnvDataDir, EnvDataDir, EnvVerbose, EnvVerbose)

	helloCmdPath := filepath.Join(tempDir, "cfs-hello")
	srcFile := helloCmdPath + ".go"
	if err := os.WriteFile(srcFile, []byte(helloCmdSource), 0644); err != nil {
		t.Fatalf("Failed to write cfs-hello source: %v", err)
	}
	cmd := exec.Command("go", "build", "-o", helloCmdPath, srcFile)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to compile cfs-hello: %v", err)
	}

	cfsBinaryPath := filepath.Join(tempDir, "cfs")
	cmd = exec.Command("go", "build", "-o", cfsBinaryPath, "../cfs")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to compile cfs binary: %v", err)
	}

	expectedConfig := filepath.Join(tempDir, "other.yaml")
	expectedDataDir := filepath.Join(tempDir, "data")
	args := []string{
		"-config", expectedConfig,
		"-data-dir", expectedDataDir,
		"-v",
		"hello", "world",
	}

	cfsCmd := exec.Command(cfsBinaryPath, args...)
	cfsCmd.Env = []string{"PATH=" + tempDir + string(os.PathListSeparator) + os.Getenv("PATH")}
	var stdout, stderr bytes.Buffer
	cfsCmd.Stdout = &stdout
	cfsCmd.Stderr = &stderr
	if err := cfsCmd.Run(); err != nil {
		t.Fatalf("cfs command failed: %v\nStdout: %s\nStderr: %s", err, stdout.String(), stderr.String())
	}

	output := stdout.String()
	expected := []string{
		EnvConfigFile + "=" + expectedConfig,
		EnvDataDir + "=" + expectedDataDir,
		EnvVerbose + "=" + strconv.FormatBool(true),
		"args=[world]",
	}
	for _, line := range expected {
		if !strings.Contains(output, line) {
			t.Errorf("Expected output to contain %q, but got:\n%s", line, output)
		}
	}
}

func TestUnknownSubcommand(t *testing.T) {
	if found, _ := RunExtension("does-not-exist-anywhere", nil); found {
		t.Errorf("RunExtension(unknown) found = true, want false")
	}
}
