// Package open hands posters and stream URLs to the system's default
// handler.
package open

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/vhls-cli/vhls/constant"
)

// Start launches the handler for target without waiting for it.
func Start(target string) error {
	cmd, err := command(target)
	if err != nil {
		return err
	}
	return cmd.Start()
}

// Run launches the handler for target and waits for it to exit.
func Run(target string) error {
	cmd, err := command(target)
	if err != nil {
		return err
	}
	return cmd.Run()
}

func command(target string) (*exec.Cmd, error) {
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("refusing to open %q: not an http(s) url", target)
	}

	switch runtime.GOOS {
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", target), nil
	case constant.Darwin:
		return exec.Command("open", target), nil
	case constant.Linux:
		return exec.Command("xdg-open", target), nil
	case constant.Android:
		return exec.Command("termux-open", target), nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
}
