package cmd

import (
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// startInlineSpinner draws frames followed by text on one line of w until the
// returned stop function is called. Stopping clears the line.
func startInlineSpinner(w io.Writer, text string, frames []string, interval time.Duration) func() {
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			line := fmt.Sprintf("%s %s", frames[i%len(frames)], text)
			select {
			case <-stop:
				fmt.Fprintf(w, "\r%*s\r", len(line), "")
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s", line)
				i++
			}
		}
	}()
	return func() {
		close(stop)
		wg.Wait()
	}
}

// withSpinner runs fn while a spinner with text is shown on w.
func withSpinner[T any](w io.Writer, text string, fn func() (T, error)) (T, error) {
	stop := startInlineSpinner(w, text, spinnerFrames, 120*time.Millisecond)
	defer stop()
	return fn()
}

// loginGreeting returns a friendly greeting for identifier.
func loginGreeting(identifier string) string {
	greetings := []string{
		"🎉 Welcome back, %s!",
		"✨ Great to see you, %s!",
		"🚀 You're all set, %s!",
		"👋 Hello %s!",
		"✅ Signed in as %s",
	}
	return fmt.Sprintf(greetings[rand.Intn(len(greetings))], identifier)
}
