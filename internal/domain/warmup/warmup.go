// Package warmup holds the day -1 warmup puzzles.
package warmup

// Greeting is the body served at the root path.
const Greeting = "Hello, world!"

// HelloWorld returns the fixed greeting.
func HelloWorld() string {
	return Greeting
}

// Fault always fails. Callers surface it as a server error.
func Fault() error {
	return ErrFault
}
