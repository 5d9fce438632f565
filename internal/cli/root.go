package cli

import (
	"bufio"
	"context"
	"os"
)

// Root prints the greeting and runs the interactive loop.
func (a *App) Root(ctx context.Context) {
	_, _ = printlnFn("SalesPro training client")
	if a.isLoggedIn() {
		_, _ = printlnFn("Welcome back,", a.profile.Name)
	} else {
		_, _ = printlnFn("Not signed in. Use login or register to begin.")
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, scanner)
}
