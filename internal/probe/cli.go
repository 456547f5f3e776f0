package probe

import "os"

// ShowHelp prints usage information for the probe tool.
func ShowHelp() {
	os.Stdout.WriteString(`Mergington Roster Probe
=======================

Exercises a running activities server: lists activities, signs a fresh
email up, repeats the sign-up, cancels twice and checks unknown activities.
Optionally runs parallel round trips and a duplicate sign-up race.

Usage:
  roster-probe [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8000")
  -activity string
        Activity to probe (default "Programming Class")
  -domain string
        Domain of generated probe emails (default "example.com")
  -concurrent int
        Distinct emails to sign up and cancel in parallel (default 0)
  -race int
        Goroutines racing to sign up the same email (default 0)
  -timeout duration
        HTTP request timeout (default 10s)
  -json
        Log as JSON
  -verbose
        Log every request
  -help
        Show this help message

Examples:
  roster-probe
  roster-probe -url http://localhost:8080 -concurrent 200 -race 20
`)
}
