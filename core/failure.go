package core

import (
	"fmt"
	"os"
	"time"
)

// defaultFailureHandler writes a timestamped line to stderr. It must not
// itself be able to fail catastrophically (spec §7, WorkerFailure): no
// allocation-heavy formatting libraries, no recursion into the logger it is
// reporting a fault in.
func defaultFailureHandler(err error) {
	fmt.Fprintf(os.Stderr, "ember: %s fatal worker error: %v\n", time.Now().UTC().Format(time.RFC3339), err)
}
