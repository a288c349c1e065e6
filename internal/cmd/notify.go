package cmd

import (
	"errors"
	"fmt"

	"threadline/internal/core"
)

// notify renders a failure as a transient message instead of aborting the
// screen, mirroring how the web client surfaces toasts. Authentication
// failures point at the login flow.
func notify(err error) {
	if errors.Is(err, core.ErrNotAuthenticated) {
		fmt.Println("! please log in first: threadline login --token <token>")
		return
	}
	fmt.Printf("! %s\n", err)
}
