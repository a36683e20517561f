package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/envira/envira-cli/internal/constants"
	"github.com/envira/envira-cli/internal/session"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	loggedIn := false

	// Check 1: config dir writable
	if err := checkConfigDir(ctx); err != nil {
		fmt.Printf("❌ Config directory: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Config directory: OK (%s)\n", ctx.ConfigDir)
	}

	// Check 2: token storage backend
	if ctx.Session.UsingKeyring() {
		fmt.Printf("✓ Token storage: OK (system keyring)\n")
	} else {
		fmt.Printf("⚠ Token storage: WARNING\n")
		fmt.Printf("   No usable keyring; falling back to a file under the config dir.\n")
	}

	// Check 3: session present
	if _, err := ctx.Session.Get(); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			fmt.Printf("⚠ Session: WARNING\n")
			fmt.Printf("   Not logged in - run `envira login`.\n")
		} else {
			fmt.Printf("❌ Session: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	} else {
		fmt.Printf("✓ Session: OK (token stored)\n")
		loggedIn = true
	}

	// Check 4: backend reachable (needs a token for an authenticated probe)
	if loggedIn {
		if err := checkBackend(ctx); err != nil {
			fmt.Printf("❌ Backend reachable: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Backend reachable: OK (%s)\n", ctx.Config.BaseURL)
		}
	} else {
		fmt.Printf("⊘ Backend reachable: SKIPPED (not logged in)\n")
	}

	// Check 5: duplicate envira processes (warning only)
	if n, err := countEnviraProcesses(); err == nil && n > 1 {
		fmt.Printf("⚠ Processes: WARNING\n")
		fmt.Printf("   %d envira processes running; the dashboard poll may double up.\n", n)
	} else {
		fmt.Printf("✓ Processes: OK\n")
	}

	// Check 6: clock sanity
	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

func checkConfigDir(ctx *Context) error {
	probe := filepath.Join(ctx.ConfigDir, ".doctor-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0600); err != nil {
		return fmt.Errorf("config dir not writable: %w", err)
	}
	return os.Remove(probe)
}

func checkBackend(ctx *Context) error {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := ctx.Client.Profile(c); err != nil {
		return fmt.Errorf("backend probe failed: %w", err)
	}
	return nil
}

func countEnviraProcesses() (int, error) {
	procs, err := ps.Processes()
	if err != nil {
		return 0, err
	}
	count := 0
	for _, p := range procs {
		name := strings.TrimSuffix(p.Executable(), ".exe")
		if name == constants.AppName {
			count++
		}
	}
	return count, nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
