package errortracker_test

import (
	"fmt"
	"os"
	"path/filepath"

	. "github.com/monopole/errortracker"
	"github.com/monopole/errortracker/cleanups"
)

func assertNoErr(err error) {
	if err != nil {
		panic(err)
	}
}

func exampleLogFile() string {
	dir, err := os.MkdirTemp("", "errortracker")
	assertNoErr(err)
	return filepath.Join(dir, "errors.log")
}

func Example_reportError() {
	tracker, _ := New[string](&Parameters{
		LogFilename: exampleLogFile(),
		ExitOnError: true,
	})
	tracker.SetCleanup(cleanups.NewPrinting[string](os.Stdout))

	err := tracker.ReportErrorWithContext(
		"readConfig", "config file is empty", 3, "/etc/app.yaml")
	if code, ok := ExitCode(err); ok {
		// A real program would os.Exit(code) here.
		fmt.Println("exit status", code)
	}

	// Output:
	//
	// ***** ERROR *****
	// Function: readConfig
	// Error Flag: 3
	// Message:
	// config file is empty
	//
	// cleanup after readConfig (flag 3): /etc/app.yaml
	// exit status 3
}

func Example_checkTimeout() {
	tracker, _ := New[any](&Parameters{
		LogFilename:    exampleLogFile(),
		TimeoutIsError: false,
		TimeoutCode:    17,
	})
	// A negative threshold fires on the first check.
	tracker.SetTimeoutThreshold(0, 0, -1)
	tracker.StartTiming()
	assertNoErr(tracker.CheckTimeout("longLoop"))
	fmt.Println(tracker.HasWarningOccurred(), tracker.WarningFlag())

	// Output:
	//
	// ***** WARNING *****
	// Function: longLoop
	// Warning Flag: 17
	// Message:
	// Timeout threshold exceeded
	//
	// true 17
}
