// Package cli provides the interactive Psychic Star terminal client.
//
// The REPL reads one command per line, forwards it to the application
// controller and prints the resulting view. Every line the user enters,
// including answers to prompts, counts as activity for the inactivity timer.
//
// Commands depend on the current state:
//   - signed out: signup, login
//   - awaiting verification: verify, resend, cancel
//   - onboarding: consent, quiz
//   - signed in: ask, readings, show, mood, dashboard, logout
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// input ends.
package cli
